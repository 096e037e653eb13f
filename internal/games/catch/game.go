package catch

import (
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/avocash/internal/config"
	"github.com/vovakirdan/avocash/internal/core"
	"github.com/vovakirdan/avocash/internal/entity"
	"github.com/vovakirdan/avocash/internal/registry"
)

// Visual characters for rendering
const (
	ItemChar   = '●'
	BonusChar  = '★'
	PlayerChar = '▄'
	GroundChar = '▔'
)

// keyStepRatio is the fraction of the world width one arrow press moves the player.
const keyStepRatio = 0.06

// Game adapts the engine to the terminal hosts. World coordinates are
// scaled onto the screen below a one-line HUD.
type Game struct {
	opts    registry.Options
	runtime core.RuntimeConfig
	engine  *Engine
	scaleX  float64 // Cells per world unit
	scaleY  float64
}

// NewGame creates a catch game instance.
func NewGame(opts registry.Options) *Game {
	return &Game{opts: opts}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "catch"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Avocado Catch"
}

// Reset loads config and starts a new session sized to the screen.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadCatch(g.opts.ConfigPath)
	if err != nil {
		cfg = config.DefaultCatchConfig()
	}
	config.ApplyCatchPreset(&cfg, config.ParsePreset(g.opts.Difficulty))

	seed := runtime.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	var high int
	if g.engine != nil {
		high = g.engine.highScore
	}
	g.engine = New(cfg, seed, g.opts.Collaborators.Scores)
	if high > g.engine.highScore {
		g.engine.SetHighScore(high)
	}

	// Terminal cells are about twice as tall as wide; widen the world so
	// sprites keep their proportions.
	fieldH := max(1, runtime.ScreenH-1)
	worldH := cfg.World.Height
	worldW := worldH * float64(runtime.ScreenW) / (2 * float64(fieldH))
	g.engine.SetWorldSize(worldW, worldH)
	g.scaleX = float64(runtime.ScreenW) / worldW
	g.scaleY = float64(fieldH) / worldH

	g.engine.InitSession()
}

// Engine exposes the underlying engine.
func (g *Game) Engine() *Engine {
	return g.engine
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	e := g.engine

	if in.Has(core.ActionRestart) && e.Phase() == PhaseGameOver {
		e.Restart()
	}
	if in.Has(core.ActionPause) {
		e.TogglePause()
	}

	if e.Phase() == PhaseRunning {
		step := e.worldW * keyStepRatio
		if in.Has(core.ActionLeft) {
			e.SetPointerX(e.PointerX() - step)
		}
		if in.Has(core.ActionRight) {
			e.SetPointerX(e.PointerX() + step)
		}
		for _, p := range in.Pointers {
			if p.Kind == core.PointerCancel {
				continue
			}
			e.SetPointerX(p.X / g.scaleX)
		}
	}

	e.Tick(g.runtime.TickSeconds())

	return core.StepResult{State: g.State(), Events: e.DrainEvents()}
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	snap := g.engine.Snapshot()

	dst.DrawHLine(0, dst.Height()-1, dst.Width(), GroundChar)

	for _, it := range snap.Items {
		g.drawItem(dst, it)
	}
	g.drawPlayer(dst, snap.Player)
	for _, m := range snap.Markers {
		g.drawMarker(dst, m)
	}

	// Draw HUD
	hud := fmt.Sprintf(" Score: %d  Best: %d ", snap.Score, snap.DisplayHigh)
	dst.DrawText(1, 0, hud)
	if snap.Combo >= 2 {
		combo := fmt.Sprintf(" Combo x%d ", snap.Combo)
		dst.DrawTextColored(dst.Width()-len(combo)-1, 0, combo, core.ColorBrightYellow)
	}

	switch g.engine.Phase() {
	case PhasePaused:
		dst.DrawMessage("PAUSED", "Press P to resume")
	case PhaseGameOver:
		dst.DrawMessage("GAME OVER", fmt.Sprintf("Max: %d  Best: %d  |  Press R to restart", snap.MaxScore, snap.HighScore))
	}
}

// toScreen converts a world rectangle to cells, keeping at least one cell.
func (g *Game) toScreen(v entity.View) core.Rect {
	x := int(math.Round(v.X * g.scaleX))
	y := 1 + int(math.Round(v.Y*g.scaleY))
	w := max(1, int(math.Round(v.W*g.scaleX)))
	h := max(1, int(math.Round(v.H*g.scaleY)))
	return core.NewRect(x, y, w, h)
}

func (g *Game) drawItem(dst *core.Screen, v entity.View) {
	r := g.toScreen(v)
	ch, color := ItemChar, core.ColorGreen
	if v.Bonus {
		ch, color = BonusChar, core.ColorBrightYellow
	}
	cx, cy := r.Center()
	dst.SetColored(cx, cy, ch, color)
	if r.W >= 3 {
		dst.SetColored(cx-1, cy, '(', color)
		dst.SetColored(cx+1, cy, ')', color)
	}
}

func (g *Game) drawPlayer(dst *core.Screen, v entity.View) {
	r := g.toScreen(v)
	// Only the bottom part: a basket is wider than tall
	h := max(1, r.H/2)
	r = core.NewRect(r.X, r.Bottom()-h, r.W, h)
	dst.DrawRectColored(core.NewRect(r.X, r.Y, r.W, 1), PlayerChar, core.ColorOrange)
	if h > 1 {
		dst.DrawRectColored(core.NewRect(r.X, r.Y+1, 1, h-1), '█', core.ColorOrange)
		dst.DrawRectColored(core.NewRect(r.Right()-1, r.Y+1, 1, h-1), '█', core.ColorOrange)
		dst.DrawRectColored(core.NewRect(r.X, r.Bottom()-1, r.W, 1), '▀', core.ColorOrange)
	}
}

func (g *Game) drawMarker(dst *core.Screen, v entity.View) {
	r := g.toScreen(v)
	color := core.ColorBrightRed
	if v.Label != "" && v.Label[0] == '+' {
		color = core.ColorBrightGreen
	}
	if v.Alpha < 0.4 {
		color = core.ColorGray
	}
	cx, cy := r.Center()
	dst.DrawTextColored(cx-len(v.Label)/2, cy, v.Label, color)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.engine == nil {
		return core.GameState{}
	}
	return core.GameState{
		Score:    g.engine.Score(),
		GameOver: g.engine.Phase() == PhaseGameOver,
		Paused:   g.engine.Phase() == PhasePaused,
	}
}

// Register the game with the registry
func init() {
	registry.Register("catch", func(opts registry.Options) registry.Game {
		return NewGame(opts)
	})
}
