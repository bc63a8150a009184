package game

import (
	"fmt"

	"golang.org/x/exp/slices"
)

// Cut is a bidirectional shortcut between two interior tiles, stored low tile first.
type Cut struct {
	Name  string
	Tiles [2]int
}

// Board is the static track shared by every trial played on it. It must not
// be modified after construction.
type Board struct {
	Size  int
	Cuts  []Cut
	Tiles [][]string // Occupant labels per tile, cut names only
	ends  map[int]int
}

// NewBoard seeds every tile with an empty occupant set and anchors each cut's
// name on both of its endpoints.
func NewBoard(size int, cuts []Cut) (*Board, error) {
	if size < 2 {
		return nil, fmt.Errorf("board needs at least 2 tiles, got %d", size)
	}
	b := &Board{
		Size:  size,
		Cuts:  slices.Clone(cuts),
		Tiles: make([][]string, size),
		ends:  make(map[int]int, 2*len(cuts)),
	}
	for i := range b.Tiles {
		b.Tiles[i] = []string{}
	}
	for _, cut := range cuts {
		one, other := cut.Tiles[0], cut.Tiles[1]
		if one == other {
			return nil, fmt.Errorf("cut %s links tile %d to itself", cut.Name, one)
		}
		for _, tile := range cut.Tiles {
			if tile <= 0 || tile >= size-1 {
				return nil, fmt.Errorf("cut %s endpoint %d is not interior to a %d-tile board", cut.Name, tile, size)
			}
			if _, taken := b.ends[tile]; taken {
				return nil, fmt.Errorf("cut %s reuses tile %d", cut.Name, tile)
			}
		}
		b.ends[one] = other
		b.ends[other] = one
		b.Tiles[one] = append(b.Tiles[one], cut.Name)
		b.Tiles[other] = append(b.Tiles[other], cut.Name)
	}
	return b, nil
}

// MaxTile is the goal tile for good players and the starting tile for evil ones.
func (b *Board) MaxTile() int {
	return b.Size - 1
}

// OtherEnd returns the opposite endpoint when tile anchors a cut.
func (b *Board) OtherEnd(tile int) (int, bool) {
	other, ok := b.ends[tile]
	return other, ok
}

// Occupied returns a copy of the tile mapping with every player's name added
// to the tile it stands on.
func (b *Board) Occupied(players []*Player) [][]string {
	tiles := make([][]string, len(b.Tiles))
	for i, labels := range b.Tiles {
		tiles[i] = slices.Clone(labels)
	}
	for _, p := range players {
		tiles[p.Tile] = append(tiles[p.Tile], p.Name)
	}
	return tiles
}
