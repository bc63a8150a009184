package metrics

import (
	"sync/atomic"
	"time"
)

type SweepMetric struct {
	Workers       int
	Boards        int // Board instances generated
	BoardRetries  int // Generation attempts that could not place every cut
	SkippedBoards int // Instances given up after too many attempts
	Cells         int // (board, player count) combinations simulated
	Games         int
	Duration      time.Duration
}

type Collector interface {
	Start(workers int)
	AddBoard()
	AddRetry()
	AddSkipped()
	AddCell()
	AddGames(n int)
	Complete() SweepMetric
}

type collector struct {
	workers   int
	startTime time.Time
	boards    atomic.Int32
	retries   atomic.Int32
	skipped   atomic.Int32
	cells     atomic.Int32
	games     atomic.Int64
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(workers int) {
	m.startTime = time.Now()
	m.workers = workers
}

func (m *collector) AddBoard() {
	m.boards.Add(1)
}

func (m *collector) AddRetry() {
	m.retries.Add(1)
}

func (m *collector) AddSkipped() {
	m.skipped.Add(1)
}

func (m *collector) AddCell() {
	m.cells.Add(1)
}

func (m *collector) AddGames(n int) {
	m.games.Add(int64(n))
}

func (m *collector) Complete() SweepMetric {
	return SweepMetric{
		Workers:       m.workers,
		Boards:        int(m.boards.Load()),
		BoardRetries:  int(m.retries.Load()),
		SkippedBoards: int(m.skipped.Load()),
		Cells:         int(m.cells.Load()),
		Games:         int(m.games.Load()),
		Duration:      time.Since(m.startTime),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(workers int)     {}
func (m *dummyCollector) AddBoard()             {}
func (m *dummyCollector) AddRetry()             {}
func (m *dummyCollector) AddSkipped()           {}
func (m *dummyCollector) AddCell()              {}
func (m *dummyCollector) AddGames(n int)        {}
func (m *dummyCollector) Complete() SweepMetric { return SweepMetric{} }
