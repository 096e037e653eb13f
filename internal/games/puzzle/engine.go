// Package puzzle implements the sliding-picture puzzle. Each level cuts an
// image into a square grid, shows it solved, counts down, shuffles with
// random legal moves and then races a per-level timer. Tiles move by drag
// gestures constrained toward the empty slot.
package puzzle

import (
	"image"
	"math/rand"
	"time"

	"github.com/vovakirdan/avocash/internal/config"
	"github.com/vovakirdan/avocash/internal/core"
)

// Phase is the level state.
type Phase int

const (
	PhaseLoading Phase = iota
	PhasePreviewing
	PhaseCountdown
	PhasePlaying
	PhasePaused
)

// String returns the snapshot name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseLoading:
		return "loading"
	case PhasePreviewing:
		return "previewing"
	case PhaseCountdown:
		return "countdown"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	default:
		return "unknown"
	}
}

// Outcome is how the previous level ended.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeWin
	OutcomeTimeout
)

// String returns the snapshot name of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeWin:
		return "win"
	case OutcomeTimeout:
		return "timeout"
	default:
		return ""
	}
}

// FragmentSource cuts a named level image into size×size pieces in
// row-major order. Missing or short results leave tiles without images.
type FragmentSource interface {
	Fragments(name string, size int) ([]image.Image, error)
}

// Engine owns one puzzle session. It is not safe for concurrent use.
type Engine struct {
	cfg       config.PuzzleConfig
	rng       *rand.Rand
	progress  core.Progression
	levels    core.LevelStore
	fragments FragmentSource

	level    int
	phase    Phase
	grid     Grid
	image    string
	tileSize float64

	preview   int     // Preview seconds left
	countdown int     // Countdown steps left
	remaining int     // Level timer seconds left
	clock     float64 // Sub-second remainder carried between ticks
	elapsed   float64 // Play time this level, pauses excluded
	moves     int

	drag    *drag
	outcome Outcome
	events  []core.Event
}

// New creates an engine positioned at the stored level. Call Start to load it.
// Collaborators and fragments may be nil.
func New(cfg config.PuzzleConfig, seed int64, collab core.Collaborators, fragments FragmentSource) *Engine {
	if len(cfg.Images) == 0 {
		cfg.Images = config.DefaultPuzzleConfig().Images
	}
	e := &Engine{
		cfg:       cfg,
		rng:       rand.New(rand.NewSource(seed)),
		progress:  collab.Progress,
		levels:    collab.Levels,
		fragments: fragments,
		level:     1,
		tileSize:  cfg.Gesture.TileSize,
	}
	if e.tileSize <= 0 {
		e.tileSize = config.DefaultPuzzleConfig().Gesture.TileSize
	}
	if e.levels != nil {
		if l := e.levels.LoadLevel(); l >= 1 {
			e.level = l
		}
	}
	e.grid = NewSolvedGrid(e.gridSize(e.level), nil)
	return e
}

// Start loads the current level.
func (e *Engine) Start() {
	e.StartLevel(e.level)
}

// StartLevel builds the solved grid for level and begins the preview.
func (e *Engine) StartLevel(level int) {
	if level < 1 {
		level = 1
	}
	e.level = level
	e.phase = PhaseLoading
	e.drag = nil
	e.clock = 0
	e.elapsed = 0
	e.moves = 0
	e.remaining = e.LevelSeconds(level)

	size := e.gridSize(level)
	e.image = e.cfg.Images[(level-1)%len(e.cfg.Images)]
	var frags []image.Image
	if e.fragments != nil {
		// A failed load leaves every tile without an image.
		frags, _ = e.fragments.Fragments(e.image, size)
	}
	e.grid = NewSolvedGrid(size, frags)

	if e.cfg.PreviewSeconds > 0 {
		e.phase = PhasePreviewing
		e.preview = e.cfg.PreviewSeconds
		return
	}
	e.enterCountdown()
}

func (e *Engine) enterCountdown() {
	if e.cfg.CountdownSteps <= 0 {
		e.beginPlay()
		return
	}
	e.phase = PhaseCountdown
	e.countdown = e.cfg.CountdownSteps
	e.emit(core.EventTick)
}

func (e *Engine) beginPlay() {
	// A short shuffle can land back on the solved grid; reshuffle a few times.
	for i := 0; i < 8; i++ {
		e.grid.Shuffle(e.rng, e.cfg.ShuffleMoves)
		if !e.grid.Solved() {
			break
		}
	}
	e.remaining = e.LevelSeconds(e.level)
	e.elapsed = 0
	e.moves = 0
	e.phase = PhasePlaying
	e.emit(core.EventStart)
}

// Tick advances timers by dt seconds. Previews, countdowns and the level
// timer step once per whole second of accumulated dt.
func (e *Engine) Tick(dt float64) {
	if dt <= 0 {
		return
	}
	switch e.phase {
	case PhasePreviewing, PhaseCountdown, PhasePlaying:
	default:
		return
	}
	if e.phase == PhasePlaying {
		e.elapsed += dt
	}
	e.clock += dt
	for e.clock >= 1 {
		e.clock--
		if !e.second() {
			// Phase changed; the new phase starts on a fresh second.
			e.clock = 0
			return
		}
	}
}

// second runs one timer step and reports whether the phase is unchanged.
func (e *Engine) second() bool {
	switch e.phase {
	case PhasePreviewing:
		e.preview--
		if e.preview <= 0 {
			e.enterCountdown()
			return false
		}
	case PhaseCountdown:
		e.countdown--
		if e.countdown <= 0 {
			e.beginPlay()
			return false
		}
		e.emit(core.EventTick)
	case PhasePlaying:
		e.remaining--
		if e.remaining <= 0 {
			e.remaining = 0
			e.timeout()
			return false
		}
	}
	return true
}

// HandlePointer dispatches a normalized pointer sample.
func (e *Engine) HandlePointer(ev core.PointerEvent) {
	switch ev.Kind {
	case core.PointerDown:
		e.PointerDown(ev.Tile, ev.X, ev.Y, ev.At)
	case core.PointerMove:
		e.PointerMove(ev.X, ev.Y, ev.At)
	case core.PointerUp:
		e.PointerUp(ev.X, ev.Y, ev.At)
	case core.PointerCancel:
		e.PointerCancel()
	}
}

// PointerDown starts a drag on tile if it is next to the empty slot.
// It is ignored while another drag is active or input is disabled.
func (e *Engine) PointerDown(tile int, x, y float64, at time.Duration) {
	if e.phase != PhasePlaying || e.drag != nil || !e.grid.IsMovable(tile) {
		return
	}
	e.drag = newDrag(e.grid, tile, x, y, at)
}

// PointerMove updates the visual offset of the dragged tile.
func (e *Engine) PointerMove(x, y float64, _ time.Duration) {
	if e.drag == nil {
		return
	}
	e.drag.move(x, y, e.tileSize)
}

// PointerUp ends the drag, committing the move past the threshold or on a tap.
func (e *Engine) PointerUp(x, y float64, at time.Duration) {
	d := e.drag
	if d == nil {
		return
	}
	e.drag = nil
	if e.phase != PhasePlaying {
		return
	}
	if d.commits(x, y, at, e.tileSize, e.cfg.Gesture) {
		e.commit(d.tile)
	}
}

// PointerCancel drops the drag; the tile snaps back.
func (e *Engine) PointerCancel() {
	e.drag = nil
}

// MoveTile moves the tile at slot i directly, as a completed tap would.
func (e *Engine) MoveTile(i int) bool {
	if e.phase != PhasePlaying || e.drag != nil || !e.grid.IsMovable(i) {
		return false
	}
	e.commit(i)
	return true
}

// Slide moves the tile that sits opposite dir from the empty slot, so that
// ActionUp slides the tile below the gap upward.
func (e *Engine) Slide(dir core.Action) bool {
	row, col := e.grid.RowCol(e.grid.Empty)
	switch dir {
	case core.ActionUp:
		row++
	case core.ActionDown:
		row--
	case core.ActionLeft:
		col++
	case core.ActionRight:
		col--
	default:
		return false
	}
	if row < 0 || col < 0 || row >= e.grid.Size || col >= e.grid.Size {
		return false
	}
	return e.MoveTile(row*e.grid.Size + col)
}

func (e *Engine) commit(tile int) {
	if !e.grid.Move(tile) {
		return
	}
	e.moves++
	if e.grid.Solved() {
		e.win()
	}
}

func (e *Engine) win() {
	e.outcome = OutcomeWin
	e.emit(core.EventWin)
	if e.progress != nil {
		e.progress.LevelCompleted(e.level, e.elapsed)
	}
	next := e.level + 1
	if e.levels != nil {
		e.levels.SaveLevel(next)
	}
	e.StartLevel(next)
}

func (e *Engine) timeout() {
	e.outcome = OutcomeTimeout
	e.emit(core.EventTimeout)
	e.StartLevel(e.level)
}

// Pause stops the level timer and input, keeping the remaining time.
func (e *Engine) Pause() {
	if e.phase != PhasePlaying {
		return
	}
	e.drag = nil
	e.phase = PhasePaused
	e.emit(core.EventPause)
}

// Resume restarts the timer from the stored remaining time.
func (e *Engine) Resume() {
	if e.phase != PhasePaused {
		return
	}
	e.phase = PhasePlaying
	e.emit(core.EventResume)
}

// TogglePause flips between playing and paused.
func (e *Engine) TogglePause() {
	switch e.phase {
	case PhasePlaying:
		e.Pause()
	case PhasePaused:
		e.Resume()
	}
}

// Hint returns the slot of the tile to move next toward the solution.
func (e *Engine) Hint() (int, bool) {
	if e.phase != PhasePlaying {
		return -1, false
	}
	path, err := Solve(e.grid, DefaultSolveBudget)
	if err == nil && len(path) > 0 {
		return path[0], true
	}
	if tile := GreedyMove(e.grid, -1); tile >= 0 {
		return tile, true
	}
	return -1, false
}

// SetTileSize sets the on-screen tile size used for drag thresholds.
func (e *Engine) SetTileSize(size float64) {
	if size > 0 {
		e.tileSize = size
	}
}

// LevelSeconds returns the time limit for a level.
func (e *Engine) LevelSeconds(level int) int {
	return e.cfg.Timer.BaseSeconds + level*e.cfg.Timer.PerLevelSeconds
}

func (e *Engine) gridSize(level int) int {
	lo, hi := e.cfg.Grid.Min, e.cfg.Grid.Max
	if lo < 2 {
		lo = 3
	}
	if hi < lo {
		hi = lo
	}
	return SizeForLevel(level, lo, hi)
}

func (e *Engine) emit(ev core.Event) {
	e.events = append(e.events, ev)
}

// DrainEvents returns the events emitted since the last call.
func (e *Engine) DrainEvents() []core.Event {
	if len(e.events) == 0 {
		return nil
	}
	out := e.events
	e.events = nil
	return out
}

// Level returns the current level.
func (e *Engine) Level() int {
	return e.level
}

// Phase returns the current phase.
func (e *Engine) Phase() Phase {
	return e.phase
}

// TimeRemaining returns the level timer in whole seconds.
func (e *Engine) TimeRemaining() int {
	return e.remaining
}
