package puzzle

import (
	"strings"
	"testing"

	"github.com/vovakirdan/avocash/internal/core"
	"github.com/vovakirdan/avocash/internal/registry"
)

func newTestGame(t *testing.T) *Game {
	t.Helper()
	g := NewGame(registry.Options{}, nil)
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 10, Seed: 5})
	return g
}

// playThroughCountdown steps the game until the shuffle has happened.
func playThroughCountdown(t *testing.T, g *Game) {
	t.Helper()
	for i := 0; i < 40 && g.engine.Phase() != PhasePlaying; i++ {
		g.Step(core.NewInputFrame())
	}
	if g.engine.Phase() != PhasePlaying {
		t.Fatal("countdown did not finish")
	}
}

func TestPuzzleRegistered(t *testing.T) {
	g, err := registry.Create("puzzle", registry.Options{})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if g.Title() != "Sliding Puzzle" {
		t.Errorf("Title() = %q", g.Title())
	}
}

func TestGameMouseTap(t *testing.T) {
	g := newTestGame(t)
	playThroughCountdown(t, g)

	e := g.engine
	tile := e.grid.Neighbors(e.grid.Empty)[0]
	size := e.grid.Size
	x := float64(g.layout.X + (tile%size)*g.tileW + 1)
	y := float64(g.layout.Y + (tile/size)*g.tileH)

	in := core.NewInputFrame()
	in.AddPointer(core.PointerEvent{Kind: core.PointerDown, Tile: -1, X: x, Y: y, At: 0})
	in.AddPointer(core.PointerEvent{Kind: core.PointerUp, X: x, Y: y, At: 50_000_000})
	g.Step(in)

	if e.grid.Empty != tile && e.Phase() == PhasePlaying {
		t.Errorf("a click on a neighbour should move it: empty=%d tile=%d", e.grid.Empty, tile)
	}
}

func TestGameArrowKeys(t *testing.T) {
	g := newTestGame(t)
	playThroughCountdown(t, g)
	e := g.engine
	before := e.grid.Empty

	for _, dir := range []core.Action{core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight} {
		in := core.NewInputFrame()
		in.Set(dir)
		g.Step(in)
		if e.grid.Empty != before || e.Phase() != PhasePlaying {
			return
		}
	}
	t.Error("no arrow key moved a tile")
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	out := screen.String()
	if !strings.Contains(screen.Row(0), "Level 1") {
		t.Errorf("HUD row = %q", screen.Row(0))
	}
	if !strings.Contains(out, "Starting in 3") {
		t.Error("countdown message missing")
	}
	if !strings.Contains(screen.Row(0), "01:15") {
		t.Errorf("clock missing from HUD: %q", screen.Row(0))
	}
}

func TestGameHint(t *testing.T) {
	g := newTestGame(t)
	playThroughCountdown(t, g)

	in := core.NewInputFrame()
	in.Set(core.ActionHint)
	g.Step(in)
	if g.hint < 0 {
		t.Fatal("hint should highlight a tile")
	}

	hinted := g.hint
	in = core.NewInputFrame()
	in.Set(core.ActionConfirm)
	g.Step(in)
	if g.engine.Phase() == PhasePlaying && g.engine.grid.Empty != hinted {
		t.Errorf("confirm should move the hinted tile %d", hinted)
	}
}
