package puzzle

import (
	"fmt"
	"image"
	"math"
	"time"

	"github.com/vovakirdan/avocash/internal/assets"
	"github.com/vovakirdan/avocash/internal/config"
	"github.com/vovakirdan/avocash/internal/core"
	"github.com/vovakirdan/avocash/internal/registry"
)

// hintTicks is how long a hint stays highlighted.
const hintTicks = 120

// Game adapts the engine to the terminal hosts. Pointer samples arrive in
// screen cells and are rescaled so one tile spans the engine's tile size
// on both axes.
type Game struct {
	opts    registry.Options
	runtime core.RuntimeConfig
	engine  *Engine
	source  FragmentSource

	layout  core.Rect // Grid area on screen
	tileW   int
	tileH   int
	hint    int
	hintFor int
	colors  map[image.Image]core.Color
}

// NewGame creates a puzzle game instance. source may be nil.
func NewGame(opts registry.Options, source FragmentSource) *Game {
	return &Game{opts: opts, source: source, hint: -1}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "puzzle"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Sliding Puzzle"
}

// Reset loads config and starts the stored level.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadPuzzle(g.opts.ConfigPath)
	if err != nil {
		cfg = config.DefaultPuzzleConfig()
	}
	config.ApplyPuzzlePreset(&cfg, config.ParsePreset(g.opts.Difficulty))

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.engine = New(cfg, seed, g.opts.Collaborators, g.source)
	g.colors = make(map[image.Image]core.Color)
	g.hint, g.hintFor = -1, 0
	g.engine.Start()
	g.relayout()
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// relayout sizes tiles to fit below the HUD for the current grid.
func (g *Game) relayout() {
	size := g.engine.grid.Size
	w, h := g.runtime.ScreenW, g.runtime.ScreenH-3
	g.tileW = max(3, min(14, (w-2)/size))
	g.tileH = max(1, min(6, h/size))
	gw, gh := g.tileW*size, g.tileH*size
	g.layout = core.NewRect((w-gw)/2, 2+(h-gh)/2, gw, gh)
}

// tileAt returns the slot under a screen cell, or -1.
func (g *Game) tileAt(x, y float64) int {
	cx := int(math.Floor(x)) - g.layout.X
	cy := int(math.Floor(y)) - g.layout.Y
	if cx < 0 || cy < 0 || cx >= g.layout.W || cy >= g.layout.H {
		return -1
	}
	return (cy/g.tileH)*g.engine.grid.Size + cx/g.tileW
}

// toTileUnits rescales a screen cell position to engine units.
func (g *Game) toTileUnits(x, y float64) (float64, float64) {
	ts := g.engine.tileSize
	return x / float64(g.tileW) * ts, y / float64(g.tileH) * ts
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	e := g.engine
	size := e.grid.Size

	if in.Has(core.ActionPause) {
		e.TogglePause()
	}
	if in.Has(core.ActionRestart) && e.Phase() != PhasePaused {
		e.StartLevel(e.Level())
	}

	for _, dir := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		if in.Has(dir) {
			e.Slide(dir)
		}
	}
	if in.Has(core.ActionHint) {
		if tile, ok := e.Hint(); ok {
			g.hint, g.hintFor = tile, hintTicks
		}
	}
	if in.Has(core.ActionConfirm) && g.hint >= 0 {
		e.MoveTile(g.hint)
		g.hint, g.hintFor = -1, 0
	}

	for _, p := range in.Pointers {
		x, y := g.toTileUnits(p.X, p.Y)
		ev := p
		ev.X, ev.Y = x, y
		if p.Kind == core.PointerDown {
			ev.Tile = g.tileAt(p.X, p.Y)
		}
		e.HandlePointer(ev)
	}

	e.Tick(g.runtime.TickSeconds())

	if g.hintFor > 0 {
		g.hintFor--
		if g.hintFor == 0 {
			g.hint = -1
		}
	}
	if e.grid.Size != size {
		g.relayout()
	}

	events := e.DrainEvents()
	for _, ev := range events {
		if ev == core.EventWin || ev == core.EventTimeout {
			g.hint, g.hintFor = -1, 0
		}
	}
	return core.StepResult{State: g.State(), Events: events}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.engine.Snapshot()

	// Draw HUD
	dst.DrawText(1, 0, fmt.Sprintf(" Level %d  %dx%d  Moves: %d ", snap.Level, snap.GridSize, snap.GridSize, snap.Moves))
	clockColor := core.ColorDefault
	if snap.TimeWarning {
		clockColor = core.ColorBrightRed
	}
	clock := fmt.Sprintf(" %s ", snap.Clock)
	dst.DrawTextColored(dst.Width()-len(clock)-1, 0, clock, clockColor)

	for i, t := range snap.Tiles {
		if t.Empty {
			continue
		}
		g.drawTile(dst, snap, i, t)
	}
	dst.DrawBoxColored(core.NewRect(g.layout.X-1, g.layout.Y-1, g.layout.W+2, g.layout.H+2), core.ColorGray)

	switch snap.Phase {
	case PhasePaused.String():
		dst.DrawMessage("PAUSED", "Press P to resume")
	case PhaseCountdown.String(), PhasePreviewing.String():
		title := fmt.Sprintf("Level %d", snap.Level)
		switch snap.LastOutcome {
		case OutcomeWin.String():
			title = fmt.Sprintf("Solved! Level %d", snap.Level)
		case OutcomeTimeout.String():
			title = fmt.Sprintf("Time's up! Level %d", snap.Level)
		}
		dst.DrawMessage(title, fmt.Sprintf("Starting in %d", snap.Countdown))
	}
}

func (g *Game) drawTile(dst *core.Screen, snap Snapshot, slot int, t TileView) {
	size := snap.GridSize
	r := core.NewRect(g.layout.X+(slot%size)*g.tileW, g.layout.Y+(slot/size)*g.tileH, g.tileW, g.tileH)

	if snap.Drag != nil && snap.Drag.Tile == slot {
		ts := g.engine.tileSize
		if snap.Drag.Axis == AxisVertical.String() {
			r.Y += int(math.Round(snap.Drag.Offset / ts * float64(g.tileH)))
		} else {
			r.X += int(math.Round(snap.Drag.Offset / ts * float64(g.tileW)))
		}
	}

	color := g.tileColor(t.Fragment)
	if slot == g.hint {
		color = core.ColorBrightYellow
	}
	dst.DrawRectColored(r, '░', color)
	if r.W >= 2 && r.H >= 2 {
		dst.DrawBoxColored(r, color)
	}
	label := fmt.Sprintf("%d", t.CorrectPos+1)
	cx, cy := r.Center()
	dst.DrawTextColored(cx-len(label)/2, cy, label, core.ColorBrightWhite)
}

// tileColor approximates a fragment with one terminal color.
func (g *Game) tileColor(frag image.Image) core.Color {
	if frag == nil {
		return core.ColorGreen
	}
	if c, ok := g.colors[frag]; ok {
		return c
	}
	r, gr, b := assets.AverageColor(frag)
	c := core.NearestColor(r, gr, b)
	g.colors[frag] = c
	return c
}

// State returns the current game state. Score carries the level.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:  g.engine.Level(),
		Paused: g.engine.Phase() == PhasePaused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("puzzle", func(opts registry.Options) registry.Game {
		if opts.AssetsDir != "" {
			return NewGame(opts, assets.NewDir(opts.AssetsDir))
		}
		return NewGame(opts, assets.Default())
	})
}
