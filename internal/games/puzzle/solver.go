package puzzle

import (
	"errors"
	"math"
)

var (
	// ErrUnsolvable is returned for arrangements outside the solved grid's parity class.
	ErrUnsolvable = errors.New("puzzle: arrangement is not solvable")
	// ErrSolveBudget is returned when the search visits more nodes than allowed.
	ErrSolveBudget = errors.New("puzzle: solve budget exhausted")
)

// DefaultSolveBudget bounds hint searches so a tick never stalls on a big grid.
const DefaultSolveBudget = 200000

// Solve finds a shortest sequence of moves from g to the solved grid using
// IDA* with the Manhattan heuristic. Each entry is the slot of the tile to
// slide into the empty slot at that point. g is not modified.
func Solve(g Grid, budget int) ([]int, error) {
	if !g.Solvable() {
		return nil, ErrUnsolvable
	}
	s := newSolver(g, budget)
	bound := s.h
	for {
		t, found := s.search(0, bound, -1)
		if found {
			return append([]int(nil), s.path...), nil
		}
		if s.exhausted {
			return nil, ErrSolveBudget
		}
		if t == math.MaxInt {
			return nil, ErrUnsolvable
		}
		bound = t
	}
}

type solver struct {
	g         Grid
	board     []int // correct position per slot, empty holds len-1
	empty     int
	h         int
	path      []int
	nodes     int
	budget    int
	exhausted bool
}

func newSolver(g Grid, budget int) *solver {
	n := g.Len()
	s := &solver{g: g, board: make([]int, n), empty: g.Empty, budget: budget}
	for i, t := range g.Cells {
		if t == nil {
			s.board[i] = n - 1
			continue
		}
		s.board[i] = t.CorrectPos
	}
	s.h = g.Manhattan()
	return s
}

func (s *solver) search(depth, bound, prev int) (int, bool) {
	f := depth + s.h
	if f > bound {
		return f, false
	}
	if s.h == 0 {
		return f, true
	}
	next := math.MaxInt
	for _, nb := range s.g.Neighbors(s.empty) {
		if nb == prev {
			continue
		}
		s.nodes++
		if s.budget > 0 && s.nodes > s.budget {
			s.exhausted = true
			return math.MaxInt, false
		}

		v := s.board[nb]
		delta := s.g.dist(v, s.empty) - s.g.dist(v, nb)
		oldEmpty := s.empty
		s.board[oldEmpty], s.board[nb] = v, len(s.board)-1
		s.empty = nb
		s.h += delta
		s.path = append(s.path, nb)

		t, found := s.search(depth+1, bound, oldEmpty)
		if found {
			return t, true
		}

		s.path = s.path[:len(s.path)-1]
		s.h -= delta
		s.empty = oldEmpty
		s.board[nb], s.board[oldEmpty] = v, len(s.board)-1
		if s.exhausted {
			return math.MaxInt, false
		}
		next = min(next, t)
	}
	return next, false
}

// GreedyMove returns the movable slot whose move lowers the Manhattan
// distance most, avoiding an immediate undo of avoid. Used when a full
// solve is too expensive.
func GreedyMove(g Grid, avoid int) int {
	best, bestDelta := -1, math.MaxInt
	for _, nb := range g.Neighbors(g.Empty) {
		if nb == avoid {
			continue
		}
		v := g.Cells[nb].CorrectPos
		delta := g.dist(v, g.Empty) - g.dist(v, nb)
		if delta < bestDelta {
			best, bestDelta = nb, delta
		}
	}
	return best
}
