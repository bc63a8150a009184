package experiments

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"ringchase/engine"
	"ringchase/experiments/metrics"
	"ringchase/game"
	"ringchase/meta"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Cell holds the games played on one board instance with one player count.
type Cell struct {
	Board          int // Board instance ID within the sweep
	Players        int
	DieFaces       int
	Layout         *game.Board
	Stats          metrics.GameStatistics
	Sample         [][]string // Board occupancy at the end of the cell's first trial
	Accepted       bool       // This cell alone meets the thresholds
	BoardPreferred bool       // Every cell of this board instance is accepted
}

// Record flattens the cell for the result writer.
func (c Cell) Record() metrics.CellRecord {
	return metrics.CellRecord{
		Board:          c.Board,
		BoardSize:      c.Layout.Size,
		DieFaces:       c.DieFaces,
		Players:        c.Players,
		Accepted:       c.Accepted,
		BoardPreferred: c.BoardPreferred,
		Tiles:          c.Layout.Tiles,
		SampleTiles:    c.Sample,
		GameStatistics: c.Stats,
	}
}

type Result struct {
	All       []Cell
	Preferred []Cell // Every cell of the board instances preferred for all player counts
	Metric    metrics.SweepMetric
}

type SweepOption func(s *Sweeper)

// WithWorkers sets the goroutines playing the trials of a cell.
func WithWorkers(workers int) SweepOption {
	return func(s *Sweeper) {
		if workers > 0 {
			s.workers = workers
		}
	}
}

func WithMaxBoardAttempts(attempts int) SweepOption {
	return func(s *Sweeper) {
		if attempts > 0 {
			s.maxBoardAttempts = attempts
		}
	}
}

// WithRandSource replaces the seeded stream each trial and board instance draws from.
func WithRandSource(source func(seed uint64) game.Rand) SweepOption {
	return func(s *Sweeper) {
		if source != nil {
			s.newRand = source
		}
	}
}

func WithMetrics() SweepOption {
	return func(s *Sweeper) {
		s.metrics = metrics.NewCollector()
	}
}

type Sweeper struct {
	config           SweepConfig
	workers          int
	maxBoardAttempts int
	newRand          func(seed uint64) game.Rand
	metrics          metrics.Collector
}

func NewSweeper(config SweepConfig, options ...SweepOption) (*Sweeper, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	s := &Sweeper{ // Default values
		config:           config,
		workers:          runtime.NumCPU(),
		maxBoardAttempts: meta.MAX_BOARD_ATTEMPTS,
		newRand:          func(seed uint64) game.Rand { return game.NewRand(seed) },
		metrics:          metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	return s, nil
}

// Sweep validates config and runs it.
func Sweep(ctx context.Context, config SweepConfig, options ...SweepOption) (Result, error) {
	s, err := NewSweeper(config, options...)
	if err != nil {
		return Result{}, err
	}
	return s.Run(ctx)
}

// Run walks every (board size, die faces) pair, generates its board
// instances and keeps those balanced for every player count.
func (s *Sweeper) Run(ctx context.Context) (Result, error) {
	var result Result
	seeds := game.NewRand(s.config.Seed)
	combos := len(s.config.BoardSizes.Values()) * len(s.config.DieFaces.Values())
	boardID := 0

	log.Info().Msgf("starting sweep over %d combinations with %d workers...", combos, s.workers)
	s.metrics.Start(s.workers)

	for _, size := range s.config.BoardSizes.Values() {
		for _, faces := range s.config.DieFaces.Values() {
			log.Info().Int("boardSize", size).Int("dieFaces", faces).Msg("starting combination")

			for b := 0; b < s.config.BoardsPerCombo; b++ {
				if err := ctx.Err(); err != nil {
					return result, err
				}
				boardID++
				rng := s.newRand(seeds.Uint64())

				board, err := s.generateBoard(rng, size)
				if errors.Is(err, game.ErrCutPlacementExhausted) {
					log.Warn().Err(err).Int("board", boardID).Msg("skipping board instance")
					s.metrics.AddSkipped()
					continue
				}
				if err != nil {
					return result, err
				}

				cells, preferred, err := s.evaluate(ctx, rng, boardID, board, faces)
				if err != nil {
					return result, err
				}
				result.All = append(result.All, cells...)
				if preferred {
					log.Info().Int("board", boardID).Int("boardSize", size).Int("dieFaces", faces).Msg("found preferred board")
					result.Preferred = append(result.Preferred, cells...)
				}
			}
			log.Info().Int("boardSize", size).Int("dieFaces", faces).Msg("completed combination")
		}
	}

	result.Metric = s.metrics.Complete()
	log.Info().Msgf("completed sweep: %d cells, %d preferred", len(result.All), len(result.Preferred))
	return result, nil
}

// EvaluateBoard plays every player count on a fixed board. The board is
// preferred only if every player count is accepted.
func (s *Sweeper) EvaluateBoard(ctx context.Context, board *game.Board, dieFaces int) ([]Cell, bool, error) {
	return s.evaluate(ctx, s.newRand(s.config.Seed), 0, board, dieFaces)
}

func (s *Sweeper) evaluate(ctx context.Context, rng game.Rand, boardID int, board *game.Board, dieFaces int) ([]Cell, bool, error) {
	var cells []Cell
	preferred := true
	for _, players := range s.config.PlayerCounts.Values() {
		seeds := make([]uint64, s.config.TrialsPerCell)
		for i := range seeds {
			seeds[i] = uint64(rng.Intn(math.MaxInt))
		}

		stats, sample, err := s.playCell(ctx, board, dieFaces, players, seeds)
		if err != nil {
			return nil, false, fmt.Errorf("board %d with %d players: %w", boardID, players, err)
		}
		s.metrics.AddCell()
		s.metrics.AddGames(stats.Games)

		cell := Cell{
			Board:    boardID,
			Players:  players,
			DieFaces: dieFaces,
			Layout:   board,
			Stats:    stats,
			Sample:   sample,
		}
		if win, ok := stats.GoodWinFraction(); ok {
			finish, _ := stats.FinishFraction()
			cell.Accepted = s.config.Accepts(win, finish)
		}
		if !cell.Accepted {
			preferred = false
		}
		cells = append(cells, cell)
	}
	for i := range cells {
		cells[i].BoardPreferred = preferred
	}
	return cells, preferred, nil
}

// playCell runs one trial per seed across the workers. Each trial owns its
// roster and random stream; final states are folded in seed order. The
// occupancy of the first trial's final board is returned as a sample.
func (s *Sweeper) playCell(ctx context.Context, board *game.Board, dieFaces, players int, seeds []uint64) (metrics.GameStatistics, [][]string, error) {
	maxMoves := s.config.MovesPerPlayer * players
	finals := make([]*game.GameState, len(seeds))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, seed := range seeds {
		i, seed := i, seed
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rng := s.newRand(seed)
			roster, err := game.CreatePlayers(rng, board.Size, players)
			if err != nil {
				return err
			}
			finals[i] = engine.RunGame(rng, maxMoves, roster, board, dieFaces)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return metrics.GameStatistics{}, nil, err
	}

	var stats metrics.GameStatistics
	for _, final := range finals {
		stats.Add(final)
	}
	return stats, board.Occupied(finals[0].Players), nil
}

// generateBoard retries with fresh draws until every cut fits.
func (s *Sweeper) generateBoard(rng game.Rand, size int) (*game.Board, error) {
	for attempt := 1; attempt <= s.maxBoardAttempts; attempt++ {
		board, err := game.GenerateBoard(rng, size, s.config.CutNames)
		if err == nil {
			s.metrics.AddBoard()
			return board, nil
		}
		if !errors.Is(err, game.ErrCutPlacementExhausted) {
			return nil, err
		}
		s.metrics.AddRetry()
		log.Debug().Err(err).Int("attempt", attempt).Int("boardSize", size).Msg("regenerating board")
	}
	return nil, fmt.Errorf("board of size %d not placed in %d attempts: %w", size, s.maxBoardAttempts, game.ErrCutPlacementExhausted)
}
