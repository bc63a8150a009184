package metrics

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// CellRecord is one (board instance, player count) result of a sweep.
type CellRecord struct {
	Board          int // Board instance ID within the sweep
	BoardSize      int
	DieFaces       int
	Players        int
	Accepted       bool // The cell alone meets the thresholds
	BoardPreferred bool // Every cell of the board instance is accepted
	Tiles          [][]string
	SampleTiles    [][]string // Tiles with player names after a sample game
	GameStatistics
}

type Writer struct {
	baseDir string
}

// NewWriter creates a timestamped folder under root for one sweep's output.
func NewWriter(root string) (*Writer, error) {
	timestamp := time.Now().UTC().Format("20060102T150405Z")
	baseDir := filepath.Join(root, "sweeps", timestamp)
	err := os.MkdirAll(baseDir, 0755)
	if err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	return &Writer{
		baseDir: baseDir,
	}, nil
}

func (w *Writer) Dir() string {
	return w.baseDir
}

// WriteSetup stores the sweep configuration and its run metrics as JSON.
func (w *Writer) WriteSetup(setup any) error {
	path := filepath.Join(w.baseDir, "setup.json")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create setup file: %w", err)
	}

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(setup); err != nil {
		f.Close()
		return fmt.Errorf("failed to write setup: %w", err)
	}
	return f.Close()
}

// WriteCells writes one CSV row per cell to name.csv.
func (w *Writer) WriteCells(name string, records []CellRecord) error {
	path := filepath.Join(w.baseDir, name+".csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s file: %w", name, err)
	}

	if err := writeCells(f, records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return f.Close()
}

func writeCells(out io.Writer, records []CellRecord) error {
	writer := csv.NewWriter(out)

	header := []string{
		"board", "board_size", "die_faces", "players", "accepted", "board_preferred",
		"games", "finished", "good_wins", "good_win_fraction", "finish_fraction",
		"mean_turns", "median_turns", "board_tiles", "sample_tiles",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("header: %w", err)
	}

	for _, record := range records {
		summary := Summarize(record.Turns)
		row := []string{
			strconv.Itoa(record.Board),
			strconv.Itoa(record.BoardSize),
			strconv.Itoa(record.DieFaces),
			strconv.Itoa(record.Players),
			strconv.FormatBool(record.Accepted),
			strconv.FormatBool(record.BoardPreferred),
			strconv.Itoa(record.Games),
			strconv.Itoa(record.Finished),
			strconv.Itoa(record.GoodWins),
			formatFraction(record.GoodWinFraction()),
			formatFraction(record.FinishFraction()),
			strconv.FormatFloat(summary.Mean, 'f', 2, 64),
			strconv.FormatFloat(summary.Median, 'f', 1, 64),
			FormatTiles(record.Tiles),
			FormatTiles(record.SampleTiles),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("board %d row: %w", record.Board, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// formatFraction leaves undefined fractions empty.
func formatFraction(fraction float64, ok bool) string {
	if !ok {
		return ""
	}
	return strconv.FormatFloat(fraction, 'f', 4, 64)
}

// FormatTiles renders occupied tiles only, e.g. "3:L1 17:L1,Frodo".
func FormatTiles(tiles [][]string) string {
	var parts []string
	for i, labels := range tiles {
		if len(labels) > 0 {
			parts = append(parts, strconv.Itoa(i)+":"+strings.Join(labels, ","))
		}
	}
	return strings.Join(parts, " ")
}
