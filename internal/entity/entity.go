// Package entity holds the visible objects of the catch game: the player,
// falling items and floating score markers. They share one record and a
// kind tag; Update dispatches on the tag.
package entity

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/avocash/internal/core"
)

// Kind tags the variant stored in an Entity.
type Kind int

const (
	KindPlayer Kind = iota
	KindFallingItem
	KindFeedbackMarker
)

// String returns the snapshot name of the kind.
func (k Kind) String() string {
	switch k {
	case KindPlayer:
		return "player"
	case KindFallingItem:
		return "item"
	case KindFeedbackMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Tuning shared by every session.
const (
	PlayerSize        = 145.0
	PlayerBottomGap   = 20.0
	PlayerSmoothing   = 15.0
	ItemSize          = 77.0
	ItemBaseSpeed     = 350.0
	ItemSpeedVariance = 250.0
	BonusSpeedFactor  = 1.5
	BonusChance       = 0.05
	ItemSpin          = 4.0
	MarkerSize        = 80.0
	MarkerLife        = 1.0
	MarkerDrift       = -100.0
)

// PlayerData is the state only players carry.
type PlayerData struct {
	TargetX float64
	WorldW  float64 // Right clamp bound is WorldW - W
}

// ItemData is the state only falling items carry.
type ItemData struct {
	Speed    float64 // Pixels per second, already scaled by the multiplier
	Bonus    bool
	Rotation float64 // Radians
	Spin     float64 // Radians per second, zero for bonus items
}

// MarkerData is the state only feedback markers carry.
type MarkerData struct {
	Category Category
	Life     float64 // Seconds left
	VY       float64
}

// Entity is the common record of every visible object.
// Exactly one of Player, Item, Marker is meaningful, selected by Kind.
type Entity struct {
	Kind    Kind
	X, Y    float64 // Top-left corner
	W, H    float64
	Removed bool

	Player PlayerData
	Item   ItemData
	Marker MarkerData
}

// NewPlayer places a player centered horizontally near the bottom of the world.
func NewPlayer(worldW, worldH float64) Entity {
	x := worldW/2 - PlayerSize/2
	return Entity{
		Kind:   KindPlayer,
		X:      x,
		Y:      worldH - PlayerSize - PlayerBottomGap,
		W:      PlayerSize,
		H:      PlayerSize,
		Player: PlayerData{TargetX: x, WorldW: worldW},
	}
}

// NewFallingItem spawns an item just above the visible area at x.
// rng decides bonus status, speed and spin.
func NewFallingItem(x, speedMultiplier float64, rng *rand.Rand) Entity {
	bonus := rng.Float64() < BonusChance
	speed := (ItemBaseSpeed + rng.Float64()*ItemSpeedVariance) * speedMultiplier
	spin := 0.0
	if bonus {
		speed *= BonusSpeedFactor
	} else {
		spin = (rng.Float64() - 0.5) * ItemSpin
	}
	return Entity{
		Kind: KindFallingItem,
		X:    x,
		Y:    -ItemSize,
		W:    ItemSize,
		H:    ItemSize,
		Item: ItemData{Speed: speed, Bonus: bonus, Spin: spin},
	}
}

// NewMarker creates a floating score marker at (x, y).
func NewMarker(x, y float64, c Category) Entity {
	return Entity{
		Kind:   KindFeedbackMarker,
		X:      x,
		Y:      y,
		W:      MarkerSize,
		H:      MarkerSize,
		Marker: MarkerData{Category: c, Life: MarkerLife, VY: MarkerDrift},
	}
}

// SetPointer aims the player so that its center follows pointer x.
func (e *Entity) SetPointer(x float64) {
	if e.Kind != KindPlayer {
		return
	}
	e.Player.TargetX = x - e.W/2
}

// Update advances the entity by dt seconds.
func (e *Entity) Update(dt float64) {
	switch e.Kind {
	case KindPlayer:
		e.X += (e.Player.TargetX - e.X) * PlayerSmoothing * dt
		e.X = core.ClampF(e.X, 0, math.Max(0, e.Player.WorldW-e.W))
	case KindFallingItem:
		e.Y += e.Item.Speed * dt
		e.Item.Rotation += e.Item.Spin * dt
	case KindFeedbackMarker:
		e.Y += e.Marker.VY * dt
		e.Marker.Life -= dt
		if e.Marker.Life <= 0 {
			e.Removed = true
		}
	}
}

// Rect returns the entity bounds.
func (e Entity) Rect() core.RectF {
	return core.RectF{X: e.X, Y: e.Y, W: e.W, H: e.H}
}

// Alpha is the draw opacity: fades with marker life, opaque otherwise.
func (e Entity) Alpha() float64 {
	if e.Kind == KindFeedbackMarker {
		return math.Max(0, e.Marker.Life)
	}
	return 1
}

// ImageKey names the sprite for the entity, or "" when it is drawn as text.
func (e Entity) ImageKey() string {
	switch e.Kind {
	case KindPlayer:
		return "player"
	case KindFallingItem:
		if e.Item.Bonus {
			return "powerup"
		}
		return "avocado"
	case KindFeedbackMarker:
		return e.Marker.Category.ImageKey()
	}
	return ""
}

// View is a read-only copy of an entity for drawing.
type View struct {
	Kind     string  `json:"kind"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	W        float64 `json:"w"`
	H        float64 `json:"h"`
	Rotation float64 `json:"rotation"`
	Alpha    float64 `json:"alpha"`
	Image    string  `json:"image"`
	Label    string  `json:"label,omitempty"`
	Bonus    bool    `json:"bonus,omitempty"`
}

// View snapshots the entity.
func (e Entity) View() View {
	v := View{
		Kind:     e.Kind.String(),
		X:        e.X,
		Y:        e.Y,
		W:        e.W,
		H:        e.H,
		Rotation: e.Item.Rotation,
		Alpha:    e.Alpha(),
		Image:    e.ImageKey(),
	}
	switch e.Kind {
	case KindFallingItem:
		v.Bonus = e.Item.Bonus
	case KindFeedbackMarker:
		v.Label = e.Marker.Category.Label()
	}
	return v
}
