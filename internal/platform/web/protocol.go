package web

import (
	"fmt"
	"time"

	"github.com/vovakirdan/avocash/internal/core"
)

// Message types on the wire.
const (
	TypeHello    = "hello"
	TypeSnapshot = "snapshot"
	TypeError    = "error"

	TypePointer = "pointer"
	TypeAction  = "action"
	TypeResize  = "resize"
)

// Inbound is a message from the browser. Coordinates are canvas pixels,
// the same units as the game's world.
type Inbound struct {
	Type   string  `json:"type"`
	Kind   string  `json:"kind,omitempty"` // down, move, up, cancel
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Tile   *int    `json:"tile,omitempty"` // Tile under a pointer down (puzzle)
	AtMs   int64   `json:"at,omitempty"`   // Client clock, ms since session start
	Action string  `json:"action,omitempty"`
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`
}

// Outbound is a message to the browser.
type Outbound struct {
	Type    string       `json:"type"`
	Session string       `json:"session,omitempty"`
	Game    string       `json:"game,omitempty"`
	Player  string       `json:"player,omitempty"`
	Tick    uint64       `json:"tick,omitempty"`
	Events  []core.Event `json:"events,omitempty"`
	State   any          `json:"state,omitempty"`
	Error   string       `json:"error,omitempty"`
}

// Pointer converts a pointer message into an engine sample.
func (m Inbound) Pointer() (core.PointerEvent, error) {
	kind, ok := core.ParsePointerKind(m.Kind)
	if !ok {
		return core.PointerEvent{}, fmt.Errorf("unknown pointer kind %q", m.Kind)
	}
	ev := core.PointerEvent{
		Kind: kind,
		Tile: -1,
		X:    m.X,
		Y:    m.Y,
		At:   time.Duration(m.AtMs) * time.Millisecond,
	}
	if m.Tile != nil {
		ev.Tile = *m.Tile
	}
	return ev, nil
}
