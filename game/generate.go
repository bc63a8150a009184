package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// CutNames groups cut names by length class.
type CutNames struct {
	Long   []string
	Medium []string
	Short  []string
}

func DefaultCutNames() CutNames {
	return CutNames{
		Long:   []string{"L1", "L2", "L3"},
		Medium: []string{"M1", "M2", "M3", "M4", "M5"},
		Short:  []string{"S1", "S2", "S3", "S4", "S5", "S6", "S7"},
	}
}

// lengthClass is a base length (a fraction of the board) plus a uniform offset in [0, spread).
type lengthClass struct {
	divisor int
	spread  int
}

var (
	longCuts   = lengthClass{divisor: 3, spread: 20}
	mediumCuts = lengthClass{divisor: 6, spread: 10}
	shortCuts  = lengthClass{divisor: 20, spread: 5}
)

func (c lengthClass) lengths(rng Rand, boardSize, count int) []int {
	lengths := make([]int, count)
	for i := range lengths {
		// Zero-length cuts would join a tile to itself
		lengths[i] = max(1, boardSize/c.divisor+rng.Intn(c.spread))
	}
	return lengths
}

// GenerateBoard places every named cut on a fresh board of the given size.
func GenerateBoard(rng Rand, boardSize int, names CutNames) (*Board, error) {
	cuts, err := GenerateCuts(rng, boardSize, names)
	if err != nil {
		return nil, err
	}
	return NewBoard(boardSize, cuts)
}

// GenerateCuts draws a length for every cut, then places the cuts one by one
// over a shrinking pool of interior tiles so that no tile anchors two cuts.
func GenerateCuts(rng Rand, boardSize int, names CutNames) ([]Cut, error) {
	lengths := longCuts.lengths(rng, boardSize, len(names.Long))
	lengths = append(lengths, mediumCuts.lengths(rng, boardSize, len(names.Medium))...)
	lengths = append(lengths, shortCuts.lengths(rng, boardSize, len(names.Short))...)

	all := make([]string, 0, len(lengths))
	all = append(all, names.Long...)
	all = append(all, names.Medium...)
	all = append(all, names.Short...)

	pool := make([]int, 0, max(0, boardSize-2))
	for tile := 1; tile < boardSize-1; tile++ {
		pool = append(pool, tile)
	}

	cuts := make([]Cut, 0, len(all))
	for i, name := range all {
		cut, err := placeCut(rng, name, lengths[i], pool)
		if err != nil {
			return nil, err
		}
		pool = slices.DeleteFunc(pool, func(tile int) bool {
			return tile == cut.Tiles[0] || tile == cut.Tiles[1]
		})
		cuts = append(cuts, cut)
	}
	return cuts, nil
}

// placeCut searches a private copy of the pool: endpoints that cannot be
// paired are dropped from the copy only, so the shared pool is untouched.
func placeCut(rng Rand, name string, length int, pool []int) (Cut, error) {
	candidates := slices.Clone(pool)
	for len(candidates) > 0 {
		ind := rng.Intn(len(candidates))
		end := candidates[ind]
		if slices.Contains(candidates, end-length) {
			return Cut{Name: name, Tiles: [2]int{end - length, end}}, nil
		}
		if slices.Contains(candidates, end+length) {
			return Cut{Name: name, Tiles: [2]int{end, end + length}}, nil
		}
		candidates = slices.Delete(candidates, ind, ind+1)
	}
	return Cut{}, fmt.Errorf("cut %s of length %d: %w", name, length, ErrCutPlacementExhausted)
}
