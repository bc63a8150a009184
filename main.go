package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"ringchase/experiments"
	"ringchase/experiments/metrics"
	"ringchase/meta"
	"ringchase/store"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type setup struct {
	Config experiments.SweepConfig `json:"config"`
	Metric metrics.SweepMetric     `json:"metric"`
}

func main() {
	_ = godotenv.Load()

	config := experiments.DefaultSweepConfig()
	flag.IntVar(&config.BoardSizes.From, "min-size", envInt("RINGCHASE_MIN_SIZE", meta.MIN_BOARD_SIZE), "Smallest board size")
	flag.IntVar(&config.BoardSizes.To, "max-size", envInt("RINGCHASE_MAX_SIZE", meta.MAX_BOARD_SIZE), "Largest board size")
	flag.IntVar(&config.DieFaces.From, "min-faces", envInt("RINGCHASE_MIN_FACES", meta.MIN_DIE_FACES), "Fewest die faces")
	flag.IntVar(&config.DieFaces.To, "max-faces", envInt("RINGCHASE_MAX_FACES", meta.MAX_DIE_FACES), "Most die faces")
	flag.IntVar(&config.PlayerCounts.From, "min-players", envInt("RINGCHASE_MIN_PLAYERS", meta.MIN_PLAYERS), "Fewest players")
	flag.IntVar(&config.PlayerCounts.To, "max-players", envInt("RINGCHASE_MAX_PLAYERS", meta.MAX_PLAYERS), "Most players")
	flag.IntVar(&config.PlayerCounts.Step, "players-step", envInt("RINGCHASE_PLAYERS_STEP", meta.PLAYERS_STEP), "Player count increment")
	flag.IntVar(&config.BoardsPerCombo, "boards", envInt("RINGCHASE_BOARDS", meta.BOARDS_PER_COMBO), "Board instances per size and die")
	flag.IntVar(&config.TrialsPerCell, "games", envInt("RINGCHASE_GAMES", meta.GAMES_PER_BOARD), "Games per board and player count")
	flag.IntVar(&config.MovesPerPlayer, "moves-per-player", envInt("RINGCHASE_MOVES_PER_PLAYER", meta.MOVES_PER_PLAYER), "Move cap per player")
	flag.Float64Var(&config.WinBand, "win-band", envFloat("RINGCHASE_WIN_BAND", meta.WIN_BAND), "Accepted distance of the good-win fraction from 0.5")
	flag.Float64Var(&config.MinFinish, "min-finish", envFloat("RINGCHASE_MIN_FINISH", meta.MIN_FINISH_FRACTION), "Least fraction of games finishing under the cap")
	flag.Uint64Var(&config.Seed, "seed", uint64(envInt("RINGCHASE_SEED", meta.SEED)), "Master random seed")
	workers := flag.Int("workers", envInt("RINGCHASE_WORKERS", 0), "Goroutines per cell (0 = CPU count)")
	outDir := flag.String("out", envString("RINGCHASE_OUT", "results"), "Output folder for CSV results")
	dbPath := flag.String("db", envString("RINGCHASE_DB", ""), "SQLite file to record the run in (empty = skip)")
	level := flag.String("log-level", envString("RINGCHASE_LOG_LEVEL", "info"), "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	if lvl, err := zerolog.ParseLevel(*level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	} else {
		log.Warn().Err(err).Msg("unknown log level, keeping info")
	}

	if err := run(config, *workers, *outDir, *dbPath); err != nil {
		log.Fatal().Err(err).Msg("sweep failed")
	}
}

func run(config experiments.SweepConfig, workers int, outDir, dbPath string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := experiments.Sweep(ctx, config, experiments.WithWorkers(workers), experiments.WithMetrics())
	if err != nil {
		return err
	}
	log.Info().Msgf("played %d games on %d boards in %s (%d boards regenerated, %d skipped)",
		result.Metric.Games, result.Metric.Boards, result.Metric.Duration, result.Metric.BoardRetries, result.Metric.SkippedBoards)

	all := records(result.All)
	preferred := records(result.Preferred)

	writer, err := metrics.NewWriter(outDir)
	if err != nil {
		return fmt.Errorf("failed to create result writer: %w", err)
	}
	if err := writer.WriteSetup(setup{Config: config, Metric: result.Metric}); err != nil {
		return err
	}
	if err := writer.WriteCells("all", all); err != nil {
		return err
	}
	if err := writer.WriteCells("preferred", preferred); err != nil {
		return err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored results")

	if dbPath != "" {
		if err := record(ctx, dbPath, config, all, len(preferred)); err != nil {
			return fmt.Errorf("failed to record run: %w", err)
		}
	}

	for i, cell := range result.Preferred {
		win, _ := cell.Stats.GoodWinFraction()
		finish, _ := cell.Stats.FinishFraction()
		log.Info().
			Int("board", cell.Board).
			Int("players", cell.Players).
			Int("dieFaces", cell.DieFaces).
			Float64("goodWinFraction", win).
			Float64("finishFraction", finish).
			Str("sample", metrics.FormatTiles(cell.Sample)).
			Msgf("preferred game %d of %d", i+1, len(result.Preferred))
	}
	return nil
}

func records(cells []experiments.Cell) []metrics.CellRecord {
	out := make([]metrics.CellRecord, len(cells))
	for i, cell := range cells {
		out[i] = cell.Record()
	}
	return out
}

func record(ctx context.Context, path string, config experiments.SweepConfig, cells []metrics.CellRecord, preferred int) error {
	db, err := store.NewSQLiteDB(path)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		return err
	}

	encoded, err := json.Marshal(config)
	if err != nil {
		return err
	}
	entry := &store.Run{Seed: config.Seed, Config: string(encoded), Cells: len(cells), Preferred: preferred}
	if err := db.SaveRun(ctx, entry); err != nil {
		return err
	}
	if err := db.SaveCells(ctx, entry.ID, cells); err != nil {
		return err
	}
	log.Info().Str("run", entry.ID).Str("db", path).Msg("recorded run")
	return nil
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}

func envFloat(key string, def float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return def
	}
	return v
}
