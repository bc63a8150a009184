package metrics

import (
	"testing"

	"ringchase/game"

	"github.com/stretchr/testify/require"
)

func finals() []*game.GameState {
	return []*game.GameState{
		{Turns: 12, Finished: true, Winner: game.Good},
		{Turns: 7, Finished: true, Winner: game.Evil},
		{Turns: 60, Finished: false, Winner: game.Undecided},
		{Turns: 31, Finished: true, Winner: game.Good},
		{Turns: 5, Finished: true, Winner: game.Evil},
	}
}

func TestFold(t *testing.T) {
	t.Run("counting games, finishes and good wins", func(t *testing.T) {
		var stats GameStatistics
		for _, final := range finals() {
			stats = Fold(stats, final)
		}

		require.Equal(t, 5, stats.Games)
		require.Equal(t, 4, stats.Finished)
		require.Equal(t, 2, stats.GoodWins)
		require.Equal(t, 2, stats.EvilWins())
		require.Equal(t, []int{12, 7, 31, 5}, stats.Turns, "Only finished games record turns")
		require.Len(t, stats.Winners, 5)
	})

	t.Run("folding in any order", func(t *testing.T) {
		forward := GameStatistics{}
		backward := GameStatistics{}
		all := finals()
		for i := range all {
			forward = Fold(forward, all[i])
			backward = Fold(backward, all[len(all)-1-i])
		}

		require.Equal(t, forward.Games, backward.Games)
		require.Equal(t, forward.Finished, backward.Finished)
		require.Equal(t, forward.GoodWins, backward.GoodWins)
		require.ElementsMatch(t, forward.Turns, backward.Turns)
		require.ElementsMatch(t, forward.Winners, backward.Winners)
	})

	t.Run("leaving the input untouched", func(t *testing.T) {
		stats := Fold(GameStatistics{}, finals()[0])

		folded := Fold(stats, finals()[1])
		folded.Turns[0] = 99

		require.Equal(t, 1, stats.Games)
		require.Equal(t, []int{12}, stats.Turns)
		require.Equal(t, []int{99, 7}, folded.Turns)
	})
}

func TestFractions(t *testing.T) {
	t.Run("undefined without finished games", func(t *testing.T) {
		stats := Fold(GameStatistics{}, &game.GameState{Turns: 60})

		_, ok := stats.GoodWinFraction()
		require.False(t, ok)
		finish, ok := stats.FinishFraction()
		require.True(t, ok)
		require.Zero(t, finish)

		_, ok = GameStatistics{}.FinishFraction()
		require.False(t, ok)
	})

	t.Run("staying within the unit interval", func(t *testing.T) {
		var stats GameStatistics
		for _, final := range finals() {
			stats.Add(final)
			win, ok := stats.GoodWinFraction()
			if ok {
				require.GreaterOrEqual(t, win, 0.0)
				require.LessOrEqual(t, win, 1.0)
			}
			finish, ok := stats.FinishFraction()
			require.True(t, ok)
			require.GreaterOrEqual(t, finish, 0.0)
			require.LessOrEqual(t, finish, 1.0)
		}

		win, _ := stats.GoodWinFraction()
		finish, _ := stats.FinishFraction()
		require.InDelta(t, 0.5, win, 1e-9)
		require.InDelta(t, 0.8, finish, 1e-9)
	})
}

func TestSummarize(t *testing.T) {
	t.Run("describing the turn distribution", func(t *testing.T) {
		summary := Summarize([]int{12, 7, 31, 5})

		require.Equal(t, 4, summary.Count)
		require.Equal(t, 5.0, summary.Min)
		require.Equal(t, 31.0, summary.Max)
		require.InDelta(t, 13.75, summary.Mean, 1e-9)
		require.Equal(t, 7.0, summary.Median)
		require.Greater(t, summary.StdDev, 0.0)
	})

	t.Run("empty and single series", func(t *testing.T) {
		require.Equal(t, TurnSummary{}, Summarize(nil))

		single := Summarize([]int{9})
		require.Equal(t, 9.0, single.Median)
		require.Zero(t, single.StdDev)
	})
}
