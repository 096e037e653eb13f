package web

import (
	"fmt"

	"github.com/vovakirdan/avocash/internal/config"
	"github.com/vovakirdan/avocash/internal/core"
	"github.com/vovakirdan/avocash/internal/games/catch"
	"github.com/vovakirdan/avocash/internal/games/puzzle"
	"github.com/vovakirdan/avocash/internal/registry"
)

// driver runs one engine in world units for a browser session. The browser
// draws from snapshots, so no terminal layout is involved.
type driver interface {
	apply(msg Inbound) error
	step(dt float64) []core.Event
	snapshot() any
}

// newDriver creates the engine for gameID.
func newDriver(gameID string, opts registry.Options, seed int64) (driver, error) {
	preset := config.ParsePreset(opts.Difficulty)

	switch gameID {
	case "catch":
		cfg, err := config.LoadCatch(opts.ConfigPath)
		if err != nil {
			cfg = config.DefaultCatchConfig()
		}
		config.ApplyCatchPreset(&cfg, preset)
		e := catch.New(cfg, seed, opts.Collaborators.Scores)
		e.InitSession()
		return &catchDriver{e: e}, nil

	case "puzzle":
		cfg, err := config.LoadPuzzle(opts.ConfigPath)
		if err != nil {
			cfg = config.DefaultPuzzleConfig()
		}
		config.ApplyPuzzlePreset(&cfg, preset)
		// The browser loads level images by name; no fragments server side.
		e := puzzle.New(cfg, seed, opts.Collaborators, nil)
		e.Start()
		return &puzzleDriver{e: e}, nil
	}
	return nil, fmt.Errorf("unknown game %q", gameID)
}

type catchDriver struct {
	e *catch.Engine
}

func (d *catchDriver) apply(msg Inbound) error {
	switch msg.Type {
	case TypePointer:
		ev, err := msg.Pointer()
		if err != nil {
			return err
		}
		if ev.Kind != core.PointerCancel && d.e.Phase() == catch.PhaseRunning {
			d.e.SetPointerX(ev.X)
		}
	case TypeResize:
		d.e.SetWorldSize(msg.Width, msg.Height)
	case TypeAction:
		action, ok := core.ParseAction(msg.Action)
		if !ok {
			return fmt.Errorf("unknown action %q", msg.Action)
		}
		switch action {
		case core.ActionPause:
			d.e.TogglePause()
		case core.ActionRestart:
			if d.e.Phase() == catch.PhaseGameOver {
				d.e.Restart()
			}
		}
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

func (d *catchDriver) step(dt float64) []core.Event {
	d.e.Tick(dt)
	return d.e.DrainEvents()
}

func (d *catchDriver) snapshot() any {
	return d.e.Snapshot()
}

type puzzleDriver struct {
	e *puzzle.Engine
}

func (d *puzzleDriver) apply(msg Inbound) error {
	switch msg.Type {
	case TypePointer:
		ev, err := msg.Pointer()
		if err != nil {
			return err
		}
		d.e.HandlePointer(ev)
	case TypeResize:
		// Width is the on-screen tile size in pixels
		d.e.SetTileSize(msg.Width)
	case TypeAction:
		action, ok := core.ParseAction(msg.Action)
		if !ok {
			return fmt.Errorf("unknown action %q", msg.Action)
		}
		switch action {
		case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
			d.e.Slide(action)
		case core.ActionPause:
			d.e.TogglePause()
		case core.ActionRestart:
			if d.e.Phase() != puzzle.PhasePaused {
				d.e.StartLevel(d.e.Level())
			}
		case core.ActionHint:
			if tile, ok := d.e.Hint(); ok {
				d.e.MoveTile(tile)
			}
		}
	default:
		return fmt.Errorf("unknown message type %q", msg.Type)
	}
	return nil
}

func (d *puzzleDriver) step(dt float64) []core.Event {
	d.e.Tick(dt)
	return d.e.DrainEvents()
}

func (d *puzzleDriver) snapshot() any {
	return d.e.Snapshot()
}
