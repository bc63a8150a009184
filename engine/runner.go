package engine

import "ringchase/game"

type Option func(r *Runner)

// Runner drives the turn engine over one board with a fixed die.
type Runner struct {
	rng      game.Rand
	board    *game.Board
	dieFaces int
	maxMoves int
	observe  func(*game.GameState)
}

func WithMaxMoves(moves int) Option {
	return func(r *Runner) {
		if moves > 0 {
			r.maxMoves = moves
		}
	}
}

// WithObserver registers a callback invoked with every state, the initial one included.
func WithObserver(observe func(*game.GameState)) Option {
	return func(r *Runner) {
		if observe != nil {
			r.observe = observe
		}
	}
}

func NewRunner(rng game.Rand, board *game.Board, dieFaces int, options ...Option) *Runner {
	if dieFaces <= 0 {
		panic("die needs at least one face")
	}
	r := &Runner{ // Default values
		rng:      rng,
		board:    board,
		dieFaces: dieFaces,
		maxMoves: MaxMoves,
		observe:  func(*game.GameState) {},
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run plays turns until the game finishes or the move budget runs out. An
// exhausted budget returns an unfinished, undecided state.
func (r *Runner) Run(players []*game.Player) *game.GameState {
	state := game.NewGameState(players)
	r.observe(state)

	for !state.Finished && state.Turns < r.maxMoves {
		state = state.Advance(r.rng, r.board, r.dieFaces)
		r.observe(state)
	}
	return state
}

// RunGame plays one game on board with the given roster.
func RunGame(rng game.Rand, maxMoves int, players []*game.Player, board *game.Board, dieFaces int) *game.GameState {
	if maxMoves <= 0 {
		return game.NewGameState(players)
	}
	return NewRunner(rng, board, dieFaces, WithMaxMoves(maxMoves)).Run(players)
}
