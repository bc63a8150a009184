package engine

import "ringchase/game"

// MaxMoves bounds a single game when no budget is given.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game till there's a winner or the move budget is spent
	Run(players []*game.Player) *game.GameState
}
