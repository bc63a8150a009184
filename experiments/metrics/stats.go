package metrics

import (
	"ringchase/game"

	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// GameStatistics accumulates the final states of many games played on one
// board with one player count.
type GameStatistics struct {
	Games    int
	Finished int
	GoodWins int
	Turns    []int         // Turn counts of finished games
	Winners  []game.Winner // Outcome of every game, unfinished ones undecided
}

// Add folds one final state into s.
func (s *GameStatistics) Add(final *game.GameState) {
	s.Games++
	if final.Finished {
		s.Finished++
		s.Turns = append(s.Turns, final.Turns)
	}
	if final.Winner == game.Good {
		s.GoodWins++
	}
	s.Winners = append(s.Winners, final.Winner)
}

// Fold returns stats with final folded in, leaving stats untouched.
func Fold(stats GameStatistics, final *game.GameState) GameStatistics {
	stats.Turns = slices.Clone(stats.Turns)
	stats.Winners = slices.Clone(stats.Winners)
	stats.Add(final)
	return stats
}

func (s GameStatistics) EvilWins() int {
	return s.Finished - s.GoodWins
}

// GoodWinFraction is good wins over finished games; undefined (false) when no
// game finished.
func (s GameStatistics) GoodWinFraction() (float64, bool) {
	if s.Finished == 0 {
		return 0, false
	}
	return float64(s.GoodWins) / float64(s.Finished), true
}

// FinishFraction is finished games over games played; undefined (false) when
// nothing was played.
func (s GameStatistics) FinishFraction() (float64, bool) {
	if s.Games == 0 {
		return 0, false
	}
	return float64(s.Finished) / float64(s.Games), true
}

// TurnSummary describes the distribution of turns needed to finish.
type TurnSummary struct {
	Count  int
	Min    float64
	Max    float64
	Mean   float64
	StdDev float64
	Q1     float64
	Median float64
	Q3     float64
}

func Summarize(turns []int) TurnSummary {
	if len(turns) == 0 {
		return TurnSummary{}
	}
	x := make([]float64, len(turns))
	for i, t := range turns {
		x[i] = float64(t)
	}
	slices.Sort(x)

	summary := TurnSummary{
		Count:  len(x),
		Min:    floats.Min(x),
		Max:    floats.Max(x),
		Mean:   stat.Mean(x, nil),
		Q1:     stat.Quantile(0.25, stat.Empirical, x, nil),
		Median: stat.Quantile(0.5, stat.Empirical, x, nil),
		Q3:     stat.Quantile(0.75, stat.Empirical, x, nil),
	}
	if len(x) > 1 {
		summary.StdDev = stat.StdDev(x, nil)
	}
	return summary
}
