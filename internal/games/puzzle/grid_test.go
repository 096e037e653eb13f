package puzzle

import (
	"math/rand"
	"testing"
)

func TestSizeForLevel(t *testing.T) {
	tests := []struct {
		level, want int
	}{
		{0, 3}, {1, 3}, {2, 3}, {3, 4}, {4, 4}, {5, 5}, {6, 5}, {7, 6}, {10, 6}, {50, 6},
	}
	for _, tc := range tests {
		if got := SizeForLevel(tc.level, 3, 6); got != tc.want {
			t.Errorf("SizeForLevel(%d) = %d, expected %d", tc.level, got, tc.want)
		}
	}
}

func TestWinDetectionExact(t *testing.T) {
	g := NewSolvedGrid(3, nil)
	if !g.Solved() {
		t.Fatal("fresh grid should be solved")
	}
	if g.Cells[8] != nil || g.Empty != 8 {
		t.Fatal("empty slot should be last")
	}

	for a := 0; a < 8; a++ {
		for b := a + 1; b < 8; b++ {
			c := g.Clone()
			c.Cells[a], c.Cells[b] = c.Cells[b], c.Cells[a]
			if c.Solved() {
				t.Errorf("swapping %d and %d should not be solved", a, b)
			}
		}
	}
	if !g.Solved() {
		t.Error("Clone must not share the cell slice")
	}
}

func TestMoveLegality(t *testing.T) {
	g := NewSolvedGrid(3, nil)

	if g.Move(0) {
		t.Error("non-neighbour move should be rejected")
	}
	if g.Move(8) {
		t.Error("moving the empty slot should be rejected")
	}
	if !g.Move(5) {
		t.Fatal("tile above the empty slot should move")
	}
	if g.Empty != 5 || g.Cells[8].CorrectPos != 5 {
		t.Errorf("after move: empty=%d cell8=%v", g.Empty, g.Cells[8])
	}

	// Row wrap: slot 3 is not a neighbour of slot 2
	g = NewSolvedGrid(3, nil)
	g.Move(5)
	g.Move(2)
	if g.IsMovable(3) {
		t.Error("slots on different rows must not be neighbours")
	}
}

func TestShuffleKeepsTilesAndSolvability(t *testing.T) {
	for size := 3; size <= 6; size++ {
		for seed := int64(1); seed <= 20; seed++ {
			g := NewSolvedGrid(size, nil)
			g.Shuffle(rand.New(rand.NewSource(seed)), 100)

			seen := make(map[int]bool)
			empties := 0
			for i, c := range g.Cells {
				if c == nil {
					empties++
					if g.Empty != i {
						t.Fatalf("Empty=%d but nil cell at %d", g.Empty, i)
					}
					continue
				}
				seen[c.CorrectPos] = true
			}
			if empties != 1 || len(seen) != size*size-1 {
				t.Fatalf("size %d seed %d: tiles changed (%d empties, %d tiles)", size, seed, empties, len(seen))
			}
			if !g.Solvable() {
				t.Fatalf("size %d seed %d: shuffle produced an unsolvable grid", size, seed)
			}
		}
	}
}

func TestSolverReachesSolved(t *testing.T) {
	for seed := int64(1); seed <= 25; seed++ {
		g := NewSolvedGrid(3, nil)
		g.Shuffle(rand.New(rand.NewSource(seed)), 100)

		path, err := Solve(g, 0)
		if err != nil {
			t.Fatalf("seed %d: Solve() failed: %v", seed, err)
		}
		for _, slot := range path {
			if !g.Move(slot) {
				t.Fatalf("seed %d: solver produced illegal move %d", seed, slot)
			}
		}
		if !g.Solved() {
			t.Fatalf("seed %d: path did not solve the grid", seed)
		}
	}
}

func TestSolverRejectsUnsolvable(t *testing.T) {
	for _, size := range []int{3, 4} {
		g := NewSolvedGrid(size, nil)
		g.Cells[0], g.Cells[1] = g.Cells[1], g.Cells[0]
		if g.Solvable() {
			t.Errorf("size %d: single swap should be unsolvable", size)
		}
		if _, err := Solve(g, 1000); err != ErrUnsolvable {
			t.Errorf("size %d: Solve() error = %v, expected ErrUnsolvable", size, err)
		}
	}
}

func TestSolverBudget(t *testing.T) {
	g := NewSolvedGrid(5, nil)
	g.Shuffle(rand.New(rand.NewSource(4)), 400)
	if g.Manhattan() < 20 {
		t.Skip("shuffle too shallow for a budget test")
	}
	if _, err := Solve(g, 10); err != ErrSolveBudget {
		t.Errorf("Solve() error = %v, expected ErrSolveBudget", err)
	}
}

func TestGreedyMove(t *testing.T) {
	g := NewSolvedGrid(3, nil)
	g.Move(7) // empty at 7, tile 7 sits in slot 8
	if got := GreedyMove(g, -1); got != 8 {
		t.Errorf("GreedyMove = %d, expected 8", got)
	}
}
