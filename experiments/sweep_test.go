package experiments

import (
	"context"
	"testing"

	"ringchase/game"

	"github.com/stretchr/testify/require"
)

// highRand always draws the largest value, so every trial replays the same game.
type highRand struct{}

func (highRand) Intn(n int) int { return n - 1 }

func highSource(uint64) game.Rand { return highRand{} }

func testConfig() SweepConfig {
	config := DefaultSweepConfig()
	config.BoardSizes = Span(30, 30)
	config.DieFaces = Span(4, 4)
	config.PlayerCounts = Span(2, 2)
	config.BoardsPerCombo = 2
	config.TrialsPerCell = 20
	config.CutNames = game.CutNames{Long: []string{"L1"}, Medium: []string{"M1"}, Short: []string{"S1", "S2"}}
	config.Seed = 5
	return config
}

func TestEvaluateBoard(t *testing.T) {
	for name, tc := range map[string]struct {
		cut    game.Cut
		winner game.Winner
		sample map[int][]string
	}{
		// Frodo takes the cut to tile 8 and overshoots to the goal on turn 3
		"cut favoring good": {
			cut:    game.Cut{Name: "L1", Tiles: [2]int{3, 8}},
			winner: game.Good,
			sample: map[int][]string{3: {"L1"}, 6: {"Sauron"}, 8: {"L1"}, 9: {"Frodo"}},
		},
		// Sauron takes the cut to tile 1 and Frodo follows it there on turn 3
		"cut favoring evil": {
			cut:    game.Cut{Name: "L1", Tiles: [2]int{1, 6}},
			winner: game.Evil,
			sample: map[int][]string{1: {"L1", "Frodo", "Sauron"}, 6: {"L1"}},
		},
	} {
		t.Run(name, func(t *testing.T) {
			board, err := game.NewBoard(10, []game.Cut{tc.cut})
			require.NoError(t, err)
			s, err := NewSweeper(testConfig(), WithRandSource(highSource), WithWorkers(3))
			require.NoError(t, err)

			cells, preferred, err := s.EvaluateBoard(context.Background(), board, 4)
			require.NoError(t, err)

			require.False(t, preferred, "Skewed board must not be preferred")
			require.Len(t, cells, 1)
			stats := cells[0].Stats
			require.Equal(t, 20, stats.Games)
			require.Equal(t, 20, stats.Finished)
			for i, winner := range stats.Winners {
				require.Equal(t, tc.winner, winner, "game %d", i)
				require.Equal(t, 3, stats.Turns[i])
			}
			require.False(t, cells[0].Accepted)
			require.False(t, cells[0].BoardPreferred)

			require.Len(t, cells[0].Sample, 10)
			for tile, labels := range cells[0].Sample {
				if want, ok := tc.sample[tile]; ok {
					require.Equal(t, want, labels, "tile %d", tile)
				} else {
					require.Empty(t, labels, "tile %d", tile)
				}
			}
		})
	}

	t.Run("preferring a skewed board under a full band", func(t *testing.T) {
		board, err := game.NewBoard(10, []game.Cut{{Name: "L1", Tiles: [2]int{3, 8}}})
		require.NoError(t, err)
		config := testConfig()
		config.WinBand = 0.5
		config.MinFinish = 0
		s, err := NewSweeper(config, WithRandSource(highSource))
		require.NoError(t, err)

		cells, preferred, err := s.EvaluateBoard(context.Background(), board, 4)
		require.NoError(t, err)
		require.True(t, preferred)
		require.True(t, cells[0].Accepted)
		require.True(t, cells[0].BoardPreferred)
	})
}

func TestSweep(t *testing.T) {
	t.Run("rejecting an invalid grid before playing", func(t *testing.T) {
		config := testConfig()
		config.PlayerCounts = Span(2, 10)

		_, err := Sweep(context.Background(), config)
		require.ErrorIs(t, err, game.ErrRosterSizeExceeded)
	})

	t.Run("reproducing results for any worker count", func(t *testing.T) {
		config := testConfig()
		config.PlayerCounts = Range{From: 2, To: 4, Step: 2}

		one, err := Sweep(context.Background(), config, WithWorkers(1), WithMetrics())
		require.NoError(t, err)
		many, err := Sweep(context.Background(), config, WithWorkers(4), WithMetrics())
		require.NoError(t, err)

		require.Len(t, one.All, 4, "Two boards with two player counts each")
		require.Len(t, many.All, len(one.All))
		for i := range one.All {
			require.Equal(t, one.All[i].Board, many.All[i].Board)
			require.Equal(t, one.All[i].Players, many.All[i].Players)
			require.Equal(t, one.All[i].Layout.Cuts, many.All[i].Layout.Cuts)
			require.Equal(t, one.All[i].Stats, many.All[i].Stats)
		}
		require.Len(t, many.Preferred, len(one.Preferred))

		require.Equal(t, 2, one.Metric.Boards)
		require.Equal(t, 4, one.Metric.Cells)
		require.Equal(t, 80, one.Metric.Games)
		require.Equal(t, 4, many.Metric.Workers)
	})

	t.Run("keeping whole boards only", func(t *testing.T) {
		config := testConfig()
		config.PlayerCounts = Range{From: 2, To: 4, Step: 2}
		config.BoardsPerCombo = 6
		config.WinBand = 0.5
		config.MinFinish = 0.2

		result, err := Sweep(context.Background(), config)
		require.NoError(t, err)

		perBoard := map[int]int{}
		for _, cell := range result.Preferred {
			require.True(t, cell.Accepted)
			require.True(t, cell.BoardPreferred)
			perBoard[cell.Board]++
		}
		for board, cells := range perBoard {
			require.Equal(t, 2, cells, "Board %d must keep every player count", board)
		}

		flagged := 0
		accepted := map[int]int{}
		for _, cell := range result.All {
			if cell.BoardPreferred {
				flagged++
			}
			if cell.Accepted {
				accepted[cell.Board]++
			}
		}
		require.Equal(t, len(result.Preferred), flagged, "Board flag marks exactly the kept cells")
		for _, cell := range result.All {
			require.Equal(t, accepted[cell.Board] == 2, cell.BoardPreferred, "board %d", cell.Board)
		}
	})

	t.Run("skipping boards whose cuts never fit", func(t *testing.T) {
		config := testConfig()
		config.BoardSizes = Span(5, 5)
		config.CutNames = game.DefaultCutNames()

		result, err := Sweep(context.Background(), config, WithMaxBoardAttempts(3), WithMetrics())
		require.NoError(t, err)

		require.Empty(t, result.All)
		require.Zero(t, result.Metric.Boards)
		require.Equal(t, 2, result.Metric.SkippedBoards)
		require.Equal(t, 6, result.Metric.BoardRetries)
	})

	t.Run("stopping on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := Sweep(ctx, testConfig())
		require.ErrorIs(t, err, context.Canceled)
	})
}
