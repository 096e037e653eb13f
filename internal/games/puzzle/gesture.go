package puzzle

import (
	"math"
	"time"

	"github.com/vovakirdan/avocash/internal/config"
	"github.com/vovakirdan/avocash/internal/core"
)

// Axis is the direction a dragged tile may travel.
type Axis int

const (
	AxisHorizontal Axis = iota
	AxisVertical
)

// String returns the snapshot name of the axis.
func (a Axis) String() string {
	if a == AxisVertical {
		return "vertical"
	}
	return "horizontal"
}

// drag is the state of the one active pointer gesture.
type drag struct {
	tile   int
	startX float64
	startY float64
	start  time.Duration
	axis   Axis
	dir    float64 // +1 toward increasing x/y, -1 otherwise
	offset float64 // Clamped displacement along axis
}

// newDrag starts a gesture on a tile next to the empty slot.
func newDrag(g Grid, tile int, x, y float64, at time.Duration) *drag {
	er, ec := g.RowCol(g.Empty)
	tr, tc := g.RowCol(tile)
	d := &drag{tile: tile, startX: x, startY: y, start: at}
	if er == tr {
		d.axis = AxisHorizontal
		d.dir = sign(float64(ec - tc))
	} else {
		d.axis = AxisVertical
		d.dir = sign(float64(er - tr))
	}
	return d
}

// displacement clamps pointer movement to the legal axis and direction:
// [0, tileSize] toward positive, [-tileSize, 0] toward negative.
func (d *drag) displacement(x, y, tileSize float64) float64 {
	delta := x - d.startX
	if d.axis == AxisVertical {
		delta = y - d.startY
	}
	if d.dir > 0 {
		return core.ClampF(delta, 0, tileSize)
	}
	return core.ClampF(delta, -tileSize, 0)
}

// move records the current clamped offset.
func (d *drag) move(x, y, tileSize float64) {
	d.offset = d.displacement(x, y, tileSize)
}

// commits decides the gesture outcome on release: a drag past the commit
// ratio of the tile size, or a short quick tap.
func (d *drag) commits(x, y float64, at time.Duration, tileSize float64, cfg config.PuzzleGesture) bool {
	dist := math.Hypot(x-d.startX, y-d.startY)
	held := at - d.start
	if dist < cfg.TapDistance && held < time.Duration(cfg.TapMillis)*time.Millisecond {
		return true
	}
	return math.Abs(d.displacement(x, y, tileSize)) > cfg.CommitRatio*tileSize
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}
