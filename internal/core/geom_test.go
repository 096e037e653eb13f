package core

import "testing"

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 || r.Bottom() != 25 {
		t.Errorf("Right/Bottom = %d/%d, want 25/25", r.Right(), r.Bottom())
	}
	if cx, cy := r.Center(); cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), want (15, 17)", cx, cy)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		v, lo, hi, want float64
	}{
		{5.5, 0, 10, 5.5},
		{-5.5, 0, 10, 0},
		{15.5, 0, 10, 10},
		{3, 3, 3, 3},
	}
	for _, tc := range tests {
		if got := ClampF(tc.v, tc.lo, tc.hi); got != tc.want {
			t.Errorf("ClampF(%v, %v, %v) = %v, want %v", tc.v, tc.lo, tc.hi, got, tc.want)
		}
	}
}

func TestAbs(t *testing.T) {
	for in, want := range map[int]int{5: 5, -5: 5, 0: 0} {
		if got := Abs(in); got != want {
			t.Errorf("Abs(%d) = %d, want %d", in, got, want)
		}
	}
}

func TestRectFInsetIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		pad      float64
		expected bool
	}{
		{"overlap survives padding", RectF{0, 0, 100, 100}, RectF{50, 50, 100, 100}, 20, true},
		{"overlap removed by padding", RectF{0, 0, 100, 100}, RectF{70, 0, 100, 100}, 20, false},
		{"touching edges", RectF{0, 0, 10, 10}, RectF{10, 0, 10, 10}, 0, false},
		{"padding larger than box", RectF{0, 0, 30, 30}, RectF{0, 0, 30, 30}, 20, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := tc.a.Inset(tc.pad)
			b := tc.b.Inset(tc.pad)
			if got := a.Intersects(b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := b.Intersects(a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFInset(t *testing.T) {
	r := RectF{X: 10, Y: 20, W: 100, H: 50}.Inset(20)
	if r.X != 30 || r.Y != 40 || r.W != 60 || r.H != 10 {
		t.Errorf("Inset(20) = %+v", r)
	}
	if r.Right() != 90 || r.Bottom() != 50 {
		t.Errorf("Right/Bottom = %v/%v", r.Right(), r.Bottom())
	}
}
