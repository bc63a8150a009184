package experiments

import (
	"fmt"

	"ringchase/game"
	"ringchase/meta"
)

// Range is an inclusive integer range walked with Step (1 when unset).
type Range struct {
	From int `json:"from"`
	To   int `json:"to"`
	Step int `json:"step,omitempty"`
}

func Span(from, to int) Range {
	return Range{From: from, To: to, Step: 1}
}

func (r Range) Values() []int {
	step := r.Step
	if step <= 0 {
		step = 1
	}
	var values []int
	for v := r.From; v <= r.To; v += step {
		values = append(values, v)
	}
	return values
}

// SweepConfig describes the parameter grid and the acceptance thresholds.
type SweepConfig struct {
	BoardSizes     Range         `json:"boardSizes"`
	DieFaces       Range         `json:"dieFaces"`
	PlayerCounts   Range         `json:"playerCounts"`
	BoardsPerCombo int           `json:"boardsPerCombo"` // Board instances per (size, faces)
	TrialsPerCell  int           `json:"trialsPerCell"`  // Games per (board, player count)
	MovesPerPlayer int           `json:"movesPerPlayer"` // Move budget is this times the player count
	WinBand        float64       `json:"winBand"`        // Accepted good-win fraction is 0.5 ± WinBand
	MinFinish      float64       `json:"minFinish"`
	CutNames       game.CutNames `json:"cutNames"`
	Seed           uint64        `json:"seed"`
}

// DefaultSweepConfig sweeps the ranges in meta.
func DefaultSweepConfig() SweepConfig {
	return SweepConfig{
		BoardSizes:     Span(meta.MIN_BOARD_SIZE, meta.MAX_BOARD_SIZE),
		DieFaces:       Span(meta.MIN_DIE_FACES, meta.MAX_DIE_FACES),
		PlayerCounts:   Range{From: meta.MIN_PLAYERS, To: meta.MAX_PLAYERS, Step: meta.PLAYERS_STEP},
		BoardsPerCombo: meta.BOARDS_PER_COMBO,
		TrialsPerCell:  meta.GAMES_PER_BOARD,
		MovesPerPlayer: meta.MOVES_PER_PLAYER,
		WinBand:        meta.WIN_BAND,
		MinFinish:      meta.MIN_FINISH_FRACTION,
		CutNames:       game.DefaultCutNames(),
		Seed:           meta.SEED,
	}
}

// Validate rejects a grid before any game is simulated.
func (c SweepConfig) Validate() error {
	for name, r := range map[string]Range{"board sizes": c.BoardSizes, "die faces": c.DieFaces, "player counts": c.PlayerCounts} {
		if len(r.Values()) == 0 {
			return fmt.Errorf("empty range of %s: %+v", name, r)
		}
	}
	if c.BoardSizes.From < 3 {
		return fmt.Errorf("board size %d leaves no interior tile", c.BoardSizes.From)
	}
	if c.DieFaces.From < 1 {
		return fmt.Errorf("die needs at least one face, got %d", c.DieFaces.From)
	}
	for _, n := range c.PlayerCounts.Values() {
		if err := game.CheckRosterSize(n); err != nil {
			return fmt.Errorf("invalid player count: %w", err)
		}
	}
	if c.BoardsPerCombo <= 0 || c.TrialsPerCell <= 0 || c.MovesPerPlayer <= 0 {
		return fmt.Errorf("boards (%d), trials (%d) and moves per player (%d) must be positive",
			c.BoardsPerCombo, c.TrialsPerCell, c.MovesPerPlayer)
	}
	if c.WinBand < 0 || c.WinBand > 0.5 {
		return fmt.Errorf("win band %g outside [0, 0.5]", c.WinBand)
	}
	if c.MinFinish < 0 || c.MinFinish > 1 {
		return fmt.Errorf("minimum finish fraction %g outside [0, 1]", c.MinFinish)
	}
	return nil
}

// Accepts reports whether one cell's statistics are balanced and timely.
func (c SweepConfig) Accepts(goodWinFraction, finishFraction float64) bool {
	return goodWinFraction >= 0.5-c.WinBand &&
		goodWinFraction <= 0.5+c.WinBand &&
		finishFraction >= c.MinFinish
}
