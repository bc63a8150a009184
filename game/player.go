package game

import "fmt"

var (
	GoodNames = []string{"Frodo", "Sam", "Merry", "Pippin"}
	EvilNames = []string{"Sauron", "Witch-king", "Gothmog", "Shelob"}
)

// Player is a token on the track. Good players walk toward the max tile,
// evil players start there and walk back until they give chase.
type Player struct {
	Name    string
	Good    bool
	Tile    int
	Vector  int // +1 toward the max tile, -1 toward tile 0
	Ring    bool
	Chasing *Chase // nil when not pursuing anyone
}

// Chase names the good player an evil player is pursuing.
type Chase struct {
	Target string
}

func (p *Player) IsChasing(name string) bool {
	return p.Chasing != nil && p.Chasing.Target == name
}

// TeamSizes splits a roster: good players get the odd one out.
func TeamSizes(numPlayers int) (good, evil int) {
	good = (numPlayers + 1) / 2
	return good, numPlayers - good
}

// CheckRosterSize reports whether both teams fit their identity pools.
func CheckRosterSize(numPlayers int) error {
	if numPlayers < 2 {
		return fmt.Errorf("need at least 2 players, got %d", numPlayers)
	}
	good, evil := TeamSizes(numPlayers)
	if good > len(GoodNames) || evil > len(EvilNames) {
		return fmt.Errorf("%d players need %d good and %d evil names, have %d and %d: %w",
			numPlayers, good, evil, len(GoodNames), len(EvilNames), ErrRosterSizeExceeded)
	}
	return nil
}

// CreatePlayers builds the starting roster, good players first, and hands the
// ring to one good player chosen uniformly.
func CreatePlayers(rng Rand, boardSize, numPlayers int) ([]*Player, error) {
	if err := CheckRosterSize(numPlayers); err != nil {
		return nil, err
	}
	numGood, numEvil := TeamSizes(numPlayers)

	players := make([]*Player, 0, numPlayers)
	for _, name := range GoodNames[:numGood] {
		players = append(players, &Player{Name: name, Good: true, Tile: 0, Vector: TowardGoal})
	}
	for _, name := range EvilNames[:numEvil] {
		players = append(players, &Player{Name: name, Good: false, Tile: boardSize - 1, Vector: TowardStart})
	}

	players[rng.Intn(numGood)].Ring = true
	return players, nil
}
