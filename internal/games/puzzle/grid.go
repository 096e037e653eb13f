package puzzle

import (
	"image"
	"math/rand"

	"github.com/vovakirdan/avocash/internal/core"
)

// Tile is one image piece. CorrectPos is its slot in the solved grid.
type Tile struct {
	CorrectPos int
	Fragment   image.Image // nil when the asset is unavailable
}

// Grid is a size×size board stored row-major. A nil cell is the empty slot.
// Tiles only ever trade places with the empty slot.
type Grid struct {
	Size  int
	Cells []*Tile
	Empty int
}

// NewSolvedGrid builds a solved grid with the empty slot last.
// fragments may be shorter than the tile count; missing entries stay nil.
func NewSolvedGrid(size int, fragments []image.Image) Grid {
	n := size * size
	g := Grid{Size: size, Cells: make([]*Tile, n), Empty: n - 1}
	for i := 0; i < n-1; i++ {
		t := &Tile{CorrectPos: i}
		if i < len(fragments) {
			t.Fragment = fragments[i]
		}
		g.Cells[i] = t
	}
	return g
}

// Len returns the number of slots.
func (g Grid) Len() int {
	return len(g.Cells)
}

// RowCol converts a slot index to its row and column.
func (g Grid) RowCol(i int) (row, col int) {
	return i / g.Size, i % g.Size
}

// Neighbors returns the slots orthogonally adjacent to i.
func (g Grid) Neighbors(i int) []int {
	row, col := g.RowCol(i)
	out := make([]int, 0, 4)
	if col > 0 {
		out = append(out, i-1)
	}
	if col < g.Size-1 {
		out = append(out, i+1)
	}
	if row > 0 {
		out = append(out, i-g.Size)
	}
	if row < g.Size-1 {
		out = append(out, i+g.Size)
	}
	return out
}

// IsMovable reports whether the tile at slot i is next to the empty slot.
func (g Grid) IsMovable(i int) bool {
	if i < 0 || i >= len(g.Cells) || i == g.Empty {
		return false
	}
	er, ec := g.RowCol(g.Empty)
	tr, tc := g.RowCol(i)
	dr, dc := er-tr, ec-tc
	return (dr == 0 && (dc == 1 || dc == -1)) || (dc == 0 && (dr == 1 || dr == -1))
}

// Move slides the tile at slot i into the empty slot. Illegal moves are no-ops.
func (g *Grid) Move(i int) bool {
	if !g.IsMovable(i) {
		return false
	}
	g.Cells[g.Empty], g.Cells[i] = g.Cells[i], nil
	g.Empty = i
	return true
}

// Shuffle applies n random legal moves from the current state.
// Every result is reachable from the start, so a solved start stays solvable.
func (g *Grid) Shuffle(rng *rand.Rand, n int) {
	for i := 0; i < n; i++ {
		nb := g.Neighbors(g.Empty)
		g.Move(nb[rng.Intn(len(nb))])
	}
}

// Solved reports whether every slot but the last holds its own tile.
func (g Grid) Solved() bool {
	for i := 0; i < len(g.Cells)-1; i++ {
		t := g.Cells[i]
		if t == nil || t.CorrectPos != i {
			return false
		}
	}
	return true
}

// Clone returns a grid with its own cell slice. Tiles are shared; they are immutable.
func (g Grid) Clone() Grid {
	c := g
	c.Cells = append([]*Tile(nil), g.Cells...)
	return c
}

// Solvable reports whether the arrangement can reach the solved grid.
// Odd widths need an even inversion count. Even widths need the inversion
// count plus the empty slot's row, counted from the bottom starting at 1,
// to be odd.
func (g Grid) Solvable() bool {
	inv := 0
	for i := 0; i < len(g.Cells); i++ {
		if g.Cells[i] == nil {
			continue
		}
		for j := i + 1; j < len(g.Cells); j++ {
			if g.Cells[j] != nil && g.Cells[j].CorrectPos < g.Cells[i].CorrectPos {
				inv++
			}
		}
	}
	if g.Size%2 == 1 {
		return inv%2 == 0
	}
	row, _ := g.RowCol(g.Empty)
	fromBottom := g.Size - row
	return (inv+fromBottom)%2 == 1
}

// Manhattan returns the summed grid distance of every tile from its slot.
func (g Grid) Manhattan() int {
	d := 0
	for i, t := range g.Cells {
		if t != nil {
			d += g.dist(t.CorrectPos, i)
		}
	}
	return d
}

func (g Grid) dist(a, b int) int {
	ar, ac := g.RowCol(a)
	br, bc := g.RowCol(b)
	return core.Abs(ar-br) + core.Abs(ac-bc)
}

// SizeForLevel returns the grid width for a level: it starts at minSize and
// grows by one every two levels up to maxSize.
func SizeForLevel(level, minSize, maxSize int) int {
	if level < 1 {
		level = 1
	}
	return min(maxSize, minSize+(level-1)/2)
}
