package puzzle

import (
	"errors"
	"image"
	"reflect"
	"testing"
	"time"

	"github.com/vovakirdan/avocash/internal/config"
	"github.com/vovakirdan/avocash/internal/core"
)

type completion struct {
	level   int
	elapsed float64
}

type fakeProgress struct {
	completed []completion
}

func (f *fakeProgress) LevelCompleted(level int, elapsedSeconds float64) {
	f.completed = append(f.completed, completion{level, elapsedSeconds})
}

type fakeLevels struct {
	level int
	saved []int
}

func (f *fakeLevels) LoadLevel() int { return f.level }

func (f *fakeLevels) SaveLevel(level int) {
	f.level = level
	f.saved = append(f.saved, level)
}

type fakeFragments struct {
	err      error
	requests []string
}

func (f *fakeFragments) Fragments(name string, size int) ([]image.Image, error) {
	f.requests = append(f.requests, name)
	if f.err != nil {
		return nil, f.err
	}
	out := make([]image.Image, size*size)
	for i := range out {
		out[i] = image.NewRGBA(image.Rect(0, 0, 1, 1))
	}
	return out, nil
}

func newTestEngine(t *testing.T) (*Engine, *fakeProgress, *fakeLevels) {
	t.Helper()
	prog := &fakeProgress{}
	levels := &fakeLevels{}
	e := New(config.DefaultPuzzleConfig(), 7, core.Collaborators{Progress: prog, Levels: levels}, nil)
	return e, prog, levels
}

// startPlaying runs the countdown and clears its events.
func startPlaying(t *testing.T, e *Engine) {
	t.Helper()
	e.Start()
	for i := 0; i < 3; i++ {
		e.Tick(1)
	}
	if e.Phase() != PhasePlaying {
		t.Fatalf("phase = %v after countdown, expected playing", e.Phase())
	}
	e.DrainEvents()
}

// setGrid replaces the board with a solved 3x3 grid after the given moves.
func setGrid(e *Engine, moves ...int) {
	e.grid = NewSolvedGrid(3, nil)
	for _, m := range moves {
		e.grid.Move(m)
	}
}

func TestStartSequence(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Start()

	if e.Phase() != PhaseCountdown {
		t.Fatalf("phase = %v, expected countdown", e.Phase())
	}
	if !e.grid.Solved() {
		t.Error("grid should be shown solved before the shuffle")
	}
	if snap := e.Snapshot(); snap.Countdown != 3 || snap.Image != "nivel1" || snap.GridSize != 3 {
		t.Errorf("snapshot = %+v", snap)
	}

	e.Tick(1)
	e.Tick(1)
	if e.Phase() != PhaseCountdown {
		t.Fatal("countdown ended early")
	}
	e.Tick(1)
	if e.Phase() != PhasePlaying {
		t.Fatalf("phase = %v, expected playing", e.Phase())
	}
	if e.grid.Solved() {
		t.Error("grid should be shuffled when play starts")
	}
	if e.TimeRemaining() != 75 {
		t.Errorf("time remaining = %d, expected 60 + 15*1", e.TimeRemaining())
	}

	want := []core.Event{core.EventTick, core.EventTick, core.EventTick, core.EventStart}
	if ev := e.DrainEvents(); !reflect.DeepEqual(ev, want) {
		t.Errorf("events = %v, expected %v", ev, want)
	}
}

func TestPreviewPhase(t *testing.T) {
	cfg := config.DefaultPuzzleConfig()
	cfg.PreviewSeconds = 2
	e := New(cfg, 1, core.Collaborators{}, nil)
	e.Start()

	if e.Phase() != PhasePreviewing {
		t.Fatalf("phase = %v, expected previewing", e.Phase())
	}
	e.Tick(1)
	if e.Phase() != PhasePreviewing {
		t.Fatal("preview ended early")
	}
	e.Tick(1)
	if e.Phase() != PhaseCountdown {
		t.Errorf("phase = %v, expected countdown", e.Phase())
	}
}

func TestStoredLevelAndImageCycle(t *testing.T) {
	levels := &fakeLevels{level: 11}
	frags := &fakeFragments{}
	e := New(config.DefaultPuzzleConfig(), 1, core.Collaborators{Levels: levels}, frags)
	e.Start()

	if e.Level() != 11 {
		t.Fatalf("level = %d, expected stored 11", e.Level())
	}
	snap := e.Snapshot()
	if snap.Image != "nivel1" {
		t.Errorf("image = %q, expected images to cycle back to nivel1", snap.Image)
	}
	if snap.GridSize != 6 {
		t.Errorf("grid size = %d, expected 6", snap.GridSize)
	}
	if snap.Tiles[0].Fragment == nil {
		t.Error("tiles should carry fragments from the source")
	}
	if !reflect.DeepEqual(frags.requests, []string{"nivel1"}) {
		t.Errorf("requests = %v", frags.requests)
	}
}

func TestMissingFragmentsAllowed(t *testing.T) {
	frags := &fakeFragments{err: errors.New("offline")}
	e := New(config.DefaultPuzzleConfig(), 1, core.Collaborators{}, frags)
	e.Start()

	for i, tv := range e.Snapshot().Tiles {
		if tv.Fragment != nil {
			t.Errorf("tile %d has a fragment despite the load failure", i)
		}
	}
	if e.Phase() != PhaseCountdown {
		t.Error("a failed asset load must not block the level")
	}
}

func TestDragThresholds(t *testing.T) {
	tests := []struct {
		name   string
		tile   int
		upX    float64
		upY    float64
		upAt   time.Duration
		commit bool
	}{
		{"horizontal 29 stays", 3, 29, 0, 500 * time.Millisecond, false},
		{"horizontal 31 commits", 3, 31, 0, 500 * time.Millisecond, true},
		{"away from empty", 3, -60, 0, 500 * time.Millisecond, false},
		{"off axis", 3, 0, 80, 500 * time.Millisecond, false},
		{"vertical 31 commits", 1, 0, 31, 500 * time.Millisecond, true},
		{"vertical upward 31 commits", 7, 0, -31, 500 * time.Millisecond, true},
		{"left tile moving left 31 commits", 5, -31, 0, 500 * time.Millisecond, true},
		{"overshoot clamps but commits", 3, 250, 0, time.Second, true},
		{"tap commits regardless of axis", 5, 3, 4, 100 * time.Millisecond, true},
		{"slow tap stays", 5, 3, 4, 400 * time.Millisecond, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			e, _, _ := newTestEngine(t)
			startPlaying(t, e)
			setGrid(e, 7, 4) // empty in the centre

			e.PointerDown(tc.tile, 0, 0, 0)
			if e.drag == nil {
				t.Fatal("pointer down on a neighbour should start a drag")
			}
			e.PointerMove(tc.upX, tc.upY, tc.upAt)
			e.PointerUp(tc.upX, tc.upY, tc.upAt)

			moved := e.grid.Empty == tc.tile
			if moved != tc.commit {
				t.Errorf("committed = %v, expected %v", moved, tc.commit)
			}
			if e.drag != nil {
				t.Error("drag should end on pointer up")
			}
		})
	}
}

func TestDragOffsetClamped(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startPlaying(t, e)
	setGrid(e, 7, 4)

	e.PointerDown(3, 10, 10, 0)
	e.PointerMove(500, 10, time.Millisecond)
	if d := e.Snapshot().Drag; d == nil || d.Offset != 100 || d.Axis != "horizontal" {
		t.Errorf("drag = %+v, expected offset clamped to tile size", d)
	}
	e.PointerMove(-500, 10, time.Millisecond)
	if d := e.Snapshot().Drag; d.Offset != 0 {
		t.Errorf("offset = %v, expected 0 away from empty", d.Offset)
	}
}

func TestIllegalPointerDown(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startPlaying(t, e)
	setGrid(e, 7, 4)

	e.PointerDown(0, 0, 0, 0) // corner, not adjacent
	if e.drag != nil {
		t.Error("non-neighbour should not start a drag")
	}
	e.PointerDown(4, 0, 0, 0) // the empty slot itself
	if e.drag != nil {
		t.Error("empty slot should not start a drag")
	}
	e.PointerDown(-1, 0, 0, 0)
	if e.drag != nil {
		t.Error("out of range tile should not start a drag")
	}
}

func TestSingleDrag(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startPlaying(t, e)
	setGrid(e, 7, 4)

	e.PointerDown(3, 0, 0, 0)
	e.PointerDown(5, 0, 0, 0)
	if e.drag.tile != 3 {
		t.Errorf("second pointer down replaced the drag: tile %d", e.drag.tile)
	}
}

func TestPointerCancelSnapsBack(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startPlaying(t, e)
	setGrid(e, 7, 4)
	before := e.grid.Clone()

	e.HandlePointer(core.PointerEvent{Kind: core.PointerDown, Tile: 3})
	e.HandlePointer(core.PointerEvent{Kind: core.PointerMove, X: 90})
	e.HandlePointer(core.PointerEvent{Kind: core.PointerCancel})
	e.HandlePointer(core.PointerEvent{Kind: core.PointerUp, X: 90, At: time.Second})

	if !reflect.DeepEqual(before, e.grid) {
		t.Error("cancel should leave the grid unchanged")
	}
}

func TestInputDisabledOutsidePlay(t *testing.T) {
	e, _, _ := newTestEngine(t)
	e.Start() // countdown
	e.PointerDown(5, 0, 0, 0)
	if e.drag != nil {
		t.Error("input should be disabled during the countdown")
	}
	if e.MoveTile(5) {
		t.Error("MoveTile should be rejected during the countdown")
	}
}

func TestWinProgression(t *testing.T) {
	e, prog, levels := newTestEngine(t)
	startPlaying(t, e)
	e.Tick(2.5)
	setGrid(e, 7) // one move from solved

	if !e.MoveTile(8) {
		t.Fatal("MoveTile(8) should be legal")
	}

	if !reflect.DeepEqual(prog.completed, []completion{{1, 2.5}}) {
		t.Errorf("completions = %v, expected [{1 2.5}]", prog.completed)
	}
	if !reflect.DeepEqual(levels.saved, []int{2}) {
		t.Errorf("saved levels = %v, expected [2]", levels.saved)
	}
	if e.Level() != 2 || e.Phase() != PhaseCountdown {
		t.Errorf("level=%d phase=%v, expected the next level loading", e.Level(), e.Phase())
	}
	snap := e.Snapshot()
	if snap.LastOutcome != "win" || snap.Image != "nivel2" {
		t.Errorf("snapshot outcome=%q image=%q", snap.LastOutcome, snap.Image)
	}

	ev := e.DrainEvents()
	if len(ev) < 1 || ev[0] != core.EventWin {
		t.Errorf("events = %v, expected win first", ev)
	}
}

func TestWinByDrag(t *testing.T) {
	e, prog, _ := newTestEngine(t)
	startPlaying(t, e)
	setGrid(e, 7)

	e.PointerDown(8, 200, 0, 0)
	e.PointerUp(150, 0, time.Second) // 50 toward the empty slot
	if len(prog.completed) != 1 {
		t.Errorf("drag completing the picture should win")
	}
}

func TestTimeout(t *testing.T) {
	e, prog, levels := newTestEngine(t)
	startPlaying(t, e)

	e.Tick(74)
	if e.Phase() != PhasePlaying || e.TimeRemaining() != 1 {
		t.Fatalf("phase=%v remaining=%d", e.Phase(), e.TimeRemaining())
	}
	if !e.Snapshot().TimeWarning {
		t.Error("one second left should warn")
	}

	e.Tick(1)
	if e.Level() != 1 || e.Phase() != PhaseCountdown {
		t.Errorf("level=%d phase=%v, expected the same level reloading", e.Level(), e.Phase())
	}
	if len(prog.completed) != 0 || len(levels.saved) != 0 {
		t.Error("timeout must not report progress")
	}
	if e.Snapshot().LastOutcome != "timeout" {
		t.Error("outcome should be timeout")
	}
	ev := e.DrainEvents()
	if len(ev) == 0 || ev[0] != core.EventTimeout {
		t.Errorf("events = %v, expected timeout first", ev)
	}
}

func TestPauseResumeIdempotent(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startPlaying(t, e)
	e.Tick(10.5)
	before := e.Snapshot()

	e.Pause()
	e.Resume()
	if !reflect.DeepEqual(before, e.Snapshot()) {
		t.Error("pause then resume should not change state")
	}

	e.Pause()
	e.Tick(30)
	if e.TimeRemaining() != before.TimeRemaining {
		t.Errorf("timer ran while paused: %d -> %d", before.TimeRemaining, e.TimeRemaining())
	}
	if e.MoveTile(e.grid.Neighbors(e.grid.Empty)[0]) {
		t.Error("moves should be rejected while paused")
	}
	e.Resume()

	// The half second carried from before the pause completes one step
	e.Tick(0.5)
	if e.TimeRemaining() != before.TimeRemaining-1 {
		t.Errorf("remaining = %d, expected %d", e.TimeRemaining(), before.TimeRemaining-1)
	}
}

func TestPauseCancelsDrag(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startPlaying(t, e)
	setGrid(e, 7, 4)

	e.PointerDown(3, 0, 0, 0)
	e.Pause()
	if e.drag != nil {
		t.Error("pause should cancel the drag")
	}
	e.Resume()
	e.PointerUp(80, 0, time.Second)
	if e.grid.Empty != 4 {
		t.Error("pointer up after a cancelled drag should do nothing")
	}
}

func TestSlide(t *testing.T) {
	e, _, _ := newTestEngine(t)
	startPlaying(t, e)
	setGrid(e, 7, 4)

	if !e.Slide(core.ActionUp) || e.grid.Empty != 7 {
		t.Errorf("up should move the tile below the gap: empty=%d", e.grid.Empty)
	}
	if e.Slide(core.ActionUp) {
		t.Error("nothing below the bottom row")
	}
	if !e.Slide(core.ActionRight) || e.grid.Empty != 6 {
		t.Errorf("right should move the tile left of the gap: empty=%d", e.grid.Empty)
	}
}

func TestHintSolves(t *testing.T) {
	e, prog, _ := newTestEngine(t)
	startPlaying(t, e)

	for i := 0; i < 60 && len(prog.completed) == 0; i++ {
		tile, ok := e.Hint()
		if !ok {
			t.Fatal("Hint() should return a move while playing")
		}
		if !e.MoveTile(tile) {
			t.Fatalf("hint %d is not a legal move", tile)
		}
	}
	if len(prog.completed) != 1 {
		t.Error("following hints should solve the level")
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{75, "01:15"}, {5, "00:05"}, {600, "10:00"}, {0, "00:00"}, {-3, "00:00"},
	}
	for _, tc := range tests {
		if got := FormatClock(tc.in); got != tc.want {
			t.Errorf("FormatClock(%d) = %q, expected %q", tc.in, got, tc.want)
		}
	}
}
