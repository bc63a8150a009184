package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// GameState is the snapshot after a resolved turn. The roster is shared with
// the previous state and mutated in place; a state is owned by one trial.
type GameState struct {
	WhoseTurn int // Roster index of the last mover, -1 before the first turn
	Turns     int
	Players   []*Player
	Finished  bool
	Winner    Winner
}

// NewGameState returns the initial state: nobody has moved yet.
func NewGameState(players []*Player) *GameState {
	return &GameState{
		WhoseTurn: -1,
		Players:   players,
	}
}

// RingBearer returns the player holding the ring, nil if the roster has none.
func (gs *GameState) RingBearer() *Player {
	for _, p := range gs.Players {
		if p.Ring {
			return p
		}
	}
	return nil
}

func (gs *GameState) goodPlayers() []*Player {
	var good []*Player
	for _, p := range gs.Players {
		if p.Good {
			good = append(good, p)
		}
	}
	return good
}

// Advance resolves the next player's turn: chase assignment, movement, cut
// taking, cohabitation and the win checks. Advancing a finished game panics.
func (gs *GameState) Advance(rng Rand, board *Board, dieFaces int) *GameState {
	if gs.Finished {
		panic(fmt.Errorf("turn %d: %w", gs.Turns, ErrInvalidTurnAdvance))
	}

	players := gs.Players
	before := make([]int, len(players))
	for i, p := range players {
		before[i] = p.Tile
	}

	turn := (gs.WhoseTurn + 1) % len(players)
	mover := players[turn]

	// An evil player already on a chase keeps its target
	if !mover.Good && mover.Chasing == nil {
		maybeChase(rng, mover, gs.goodPlayers())
	}

	moveToken(rng, mover, board, dieFaces)

	c := findCohabitants(players, before, turn)
	winner, finished := resolve(rng, players, turn, c, board.MaxTile())

	return &GameState{
		WhoseTurn: turn,
		Turns:     gs.Turns + 1,
		Players:   players,
		Finished:  finished,
		Winner:    winner,
	}
}

// maybeChase starts a chase with probability crossers/good players, the
// target drawn uniformly among the good players that have passed the mover.
func maybeChase(rng Rand, mover *Player, good []*Player) {
	var crossers []*Player
	for _, p := range good {
		if p.Tile > mover.Tile {
			crossers = append(crossers, p)
		}
	}
	if len(crossers) == 0 {
		return
	}

	pick := rng.Intn(len(good))
	if pick < len(crossers) {
		mover.Chasing = &Chase{Target: crossers[pick].Name}
		mover.Vector = TowardGoal
	}
}

// moveToken rolls a die in [0, dieFaces), keeps the token on the board and
// takes a cut on a coin flip when landing on one of its ends.
func moveToken(rng Rand, mover *Player, board *Board, dieFaces int) {
	steps := rng.Intn(dieFaces)
	tile := min(max(mover.Tile+mover.Vector*steps, 0), board.MaxTile())

	if other, ok := board.OtherEnd(tile); ok && rng.Intn(2) == 1 {
		tile = other
	}
	mover.Tile = tile
}

type cohabitants struct {
	indices []int // Roster indices on the landing tile, mover included
	names   []string
	allGood bool
	bearer  int // Roster index of the ring bearer among them, -1 if absent or alone
}

func (c cohabitants) crowded() bool {
	return len(c.indices) > 1
}

// findCohabitants reads the other players' pre-move tiles; only the mover has
// moved this turn.
func findCohabitants(players []*Player, before []int, turn int) cohabitants {
	landing := players[turn].Tile
	c := cohabitants{allGood: true, bearer: -1}
	for i, tile := range before {
		if i != turn && tile != landing {
			continue
		}
		c.indices = append(c.indices, i)
		c.names = append(c.names, players[i].Name)
		if !players[i].Good {
			c.allGood = false
		}
	}
	if !c.crowded() {
		return c
	}
	for _, i := range c.indices {
		if players[i].Ring {
			c.bearer = i
			break
		}
	}
	return c
}

// resolve applies the first matching outcome, in priority order.
func resolve(rng Rand, players []*Player, turn int, c cohabitants, maxTile int) (Winner, bool) {
	mover := players[turn]
	switch {
	case mover.Ring && mover.Tile == maxTile:
		return Good, true

	case mover.Ring && c.crowded() && !c.allGood:
		// An evil player shares the bearer's tile
		return Evil, true

	case mover.Ring && c.crowded():
		maybeGiveAwayRing(rng, players, turn, c)

	case mover.Good && c.bearer >= 0 && c.bearer != turn:
		maybeTakeRing(rng, players[c.bearer], mover)

	case !mover.Good && (mover.Tile == maxTile ||
		(c.crowded() && c.bearer < 0 && mover.Chasing != nil && slices.Contains(c.names, mover.Chasing.Target))):
		// Wrong target or nothing left to chase: head back toward tile 0
		mover.Chasing = nil
		mover.Vector = TowardStart

	case !mover.Good && c.bearer >= 0:
		return Evil, true
	}
	return Undecided, false
}

// maybeGiveAwayRing keeps the ring half of the time, otherwise passes it to
// one of the other good players on the tile.
func maybeGiveAwayRing(rng Rand, players []*Player, turn int, c cohabitants) {
	others := slices.DeleteFunc(slices.Clone(c.indices), func(i int) bool { return i == turn })
	if len(others) == 0 {
		return
	}
	pick := rng.Intn(2 * len(others))
	if pick < len(others) {
		players[turn].Ring = false
		players[others[pick]].Ring = true
	}
}

// maybeTakeRing lets a good player take the ring from the bearer on a coin flip.
func maybeTakeRing(rng Rand, bearer, mover *Player) {
	if rng.Intn(2) == 1 {
		bearer.Ring = false
		mover.Ring = true
	}
}
