package game

import (
	"errors"

	"golang.org/x/exp/rand"
)

var (
	// ErrCutPlacementExhausted is returned when a cut cannot find a partner tile
	// in the remaining pool. Regenerating the board usually succeeds.
	ErrCutPlacementExhausted = errors.New("cut placement exhausted")
	// ErrRosterSizeExceeded is returned when a team needs more identities than its pool holds.
	ErrRosterSizeExceeded = errors.New("roster size exceeded")
	// ErrInvalidTurnAdvance is the panic value (wrapped) when advancing a finished game.
	ErrInvalidTurnAdvance = errors.New("advance called on a finished game")
)

// Rand is the random stream threaded through board generation, roster
// creation and turn resolution. Intn returns a value in [0, n).
type Rand interface {
	Intn(n int) int
}

// NewRand returns a seeded stream. Streams are not safe for concurrent use,
// give every worker its own.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

type Winner int

const (
	Undecided Winner = iota
	Good
	Evil
)

func (w Winner) String() string {
	switch w {
	case Good:
		return "good"
	case Evil:
		return "evil"
	default:
		return "undecided"
	}
}

const (
	TowardGoal  = 1
	TowardStart = -1
)
