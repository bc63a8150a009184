package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"ringchase/experiments/metrics"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteDB implements the DB interface using SQLite
type SQLiteDB struct {
	db *sql.DB
}

// NewSQLiteDB opens (or creates) the database file at path.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Migrate creates the tables when missing.
func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			seed TEXT NOT NULL,
			config TEXT NOT NULL,
			cells INTEGER NOT NULL DEFAULT 0,
			preferred INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS cells (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			board INTEGER NOT NULL,
			board_size INTEGER NOT NULL,
			die_faces INTEGER NOT NULL,
			players INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			board_preferred INTEGER NOT NULL,
			games INTEGER NOT NULL,
			finished INTEGER NOT NULL,
			good_wins INTEGER NOT NULL,
			turns TEXT NOT NULL,
			winners TEXT NOT NULL,
			tiles TEXT NOT NULL,
			sample_tiles TEXT NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cells_run_id ON cells(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_cells_board_preferred ON cells(run_id, board_preferred)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveRun inserts run, assigning an ID and creation time when unset.
func (s *SQLiteDB) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO runs (id, seed, config, cells, preferred, created_at) VALUES (?, ?, ?, ?, ?, ?)`
	_, err := s.db.ExecContext(ctx, query,
		run.ID, strconv.FormatUint(run.Seed, 10), run.Config, run.Cells, run.Preferred,
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// SaveCells inserts every cell of a run in one transaction.
func (s *SQLiteDB) SaveCells(ctx context.Context, runID string, cells []metrics.CellRecord) error {
	if len(cells) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO cells (
		run_id, board, board_size, die_faces, players, accepted, board_preferred,
		games, finished, good_wins, turns, winners, tiles, sample_tiles
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, cell := range cells {
		turns, err := json.Marshal(cell.Turns)
		if err != nil {
			return fmt.Errorf("failed to encode turns: %w", err)
		}
		winners, err := json.Marshal(cell.Winners)
		if err != nil {
			return fmt.Errorf("failed to encode winners: %w", err)
		}
		tiles, err := json.Marshal(cell.Tiles)
		if err != nil {
			return fmt.Errorf("failed to encode tiles: %w", err)
		}
		sample, err := json.Marshal(cell.SampleTiles)
		if err != nil {
			return fmt.Errorf("failed to encode sample tiles: %w", err)
		}

		_, err = stmt.ExecContext(ctx, runID, cell.Board, cell.BoardSize, cell.DieFaces, cell.Players,
			cell.Accepted, cell.BoardPreferred, cell.Games, cell.Finished, cell.GoodWins,
			string(turns), string(winners), string(tiles), string(sample))
		if err != nil {
			return fmt.Errorf("failed to save cell of board %d: %w", cell.Board, err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run by ID
func (s *SQLiteDB) GetRun(ctx context.Context, id string) (*Run, error) {
	query := `SELECT id, seed, config, cells, preferred, created_at FROM runs WHERE id = ?`

	var run Run
	var seed, createdAt string
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &seed, &run.Config, &run.Cells, &run.Preferred, &createdAt,
	)
	if err != nil {
		return nil, err
	}

	if run.Seed, err = strconv.ParseUint(seed, 10, 64); err != nil {
		return nil, fmt.Errorf("corrupt seed %q: %w", seed, err)
	}
	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return nil, fmt.Errorf("corrupt creation time %q: %w", createdAt, err)
	}
	return &run, nil
}

// GetCells retrieves a run's cells in insertion order. With preferredOnly
// it keeps the cells of board instances accepted for every player count.
func (s *SQLiteDB) GetCells(ctx context.Context, runID string, preferredOnly bool) ([]metrics.CellRecord, error) {
	query := `SELECT board, board_size, die_faces, players, accepted, board_preferred,
		games, finished, good_wins, turns, winners, tiles, sample_tiles
		FROM cells WHERE run_id = ? AND (board_preferred = 1 OR ? = 0)
		ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, runID, preferredOnly)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cells []metrics.CellRecord
	for rows.Next() {
		var cell metrics.CellRecord
		var turns, winners, tiles, sample string

		err := rows.Scan(&cell.Board, &cell.BoardSize, &cell.DieFaces, &cell.Players, &cell.Accepted, &cell.BoardPreferred,
			&cell.Games, &cell.Finished, &cell.GoodWins, &turns, &winners, &tiles, &sample)
		if err != nil {
			return nil, err
		}

		if err := json.Unmarshal([]byte(turns), &cell.Turns); err != nil {
			return nil, fmt.Errorf("corrupt turns of board %d: %w", cell.Board, err)
		}
		if err := json.Unmarshal([]byte(winners), &cell.Winners); err != nil {
			return nil, fmt.Errorf("corrupt winners of board %d: %w", cell.Board, err)
		}
		if err := json.Unmarshal([]byte(tiles), &cell.Tiles); err != nil {
			return nil, fmt.Errorf("corrupt tiles of board %d: %w", cell.Board, err)
		}
		if err := json.Unmarshal([]byte(sample), &cell.SampleTiles); err != nil {
			return nil, fmt.Errorf("corrupt sample tiles of board %d: %w", cell.Board, err)
		}

		cells = append(cells, cell)
	}

	return cells, rows.Err()
}
