package puzzle

import "image"

// TileView is one slot of the grid snapshot.
type TileView struct {
	Empty      bool        `json:"empty"`
	CorrectPos int         `json:"correctPos"`
	Fragment   image.Image `json:"-"` // nil means no image; draw a label instead
}

// DragView describes the tile being dragged.
type DragView struct {
	Tile   int     `json:"tile"`
	Axis   string  `json:"axis"`
	Offset float64 `json:"offset"`
}

// Snapshot is a read-only copy of the puzzle state.
type Snapshot struct {
	Phase         string     `json:"phase"`
	Level         int        `json:"level"`
	GridSize      int        `json:"gridSize"`
	Image         string     `json:"image"`
	Tiles         []TileView `json:"tiles"`
	EmptyIndex    int        `json:"emptyIndex"`
	Countdown     int        `json:"countdown"`
	TimeRemaining int        `json:"timeRemaining"`
	Clock         string     `json:"clock"`
	TimeWarning   bool       `json:"timeWarning"`
	Elapsed       float64    `json:"elapsed"`
	Moves         int        `json:"moves"`
	Drag          *DragView  `json:"drag,omitempty"`
	LastOutcome   string     `json:"lastOutcome,omitempty"`
}

// Snapshot copies the current state.
func (e *Engine) Snapshot() Snapshot {
	s := Snapshot{
		Phase:         e.phase.String(),
		Level:         e.level,
		GridSize:      e.grid.Size,
		Image:         e.image,
		Tiles:         make([]TileView, e.grid.Len()),
		EmptyIndex:    e.grid.Empty,
		TimeRemaining: e.remaining,
		Clock:         FormatClock(e.remaining),
		TimeWarning:   e.phase == PhasePlaying && e.remaining <= e.cfg.Timer.WarningSeconds,
		Elapsed:       e.elapsed,
		Moves:         e.moves,
		LastOutcome:   e.outcome.String(),
	}
	switch e.phase {
	case PhaseCountdown:
		s.Countdown = e.countdown
	case PhasePreviewing:
		s.Countdown = e.preview
	}
	for i, t := range e.grid.Cells {
		if t == nil {
			s.Tiles[i] = TileView{Empty: true, CorrectPos: e.grid.Len() - 1}
			continue
		}
		s.Tiles[i] = TileView{CorrectPos: t.CorrectPos, Fragment: t.Fragment}
	}
	if e.drag != nil {
		s.Drag = &DragView{Tile: e.drag.tile, Axis: e.drag.axis.String(), Offset: e.drag.offset}
	}
	return s
}
