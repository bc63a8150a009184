package store

import (
	"context"
	"time"

	"ringchase/experiments/metrics"
)

// DB persists sweep runs and their cells.
type DB interface {
	Close() error
	Migrate() error
	SaveRun(ctx context.Context, run *Run) error
	SaveCells(ctx context.Context, runID string, cells []metrics.CellRecord) error
	GetRun(ctx context.Context, id string) (*Run, error)
	GetCells(ctx context.Context, runID string, preferredOnly bool) ([]metrics.CellRecord, error)
}

// Run is one sweep invocation.
type Run struct {
	ID        string    `json:"id"`
	Seed      uint64    `json:"seed"`
	Config    string    `json:"config"` // JSON encoded sweep configuration
	Cells     int       `json:"cells"`
	Preferred int       `json:"preferred"` // Cells on board instances accepted for every player count
	CreatedAt time.Time `json:"created_at"`
}
