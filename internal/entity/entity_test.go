package entity

import (
	"math"
	"math/rand"
	"testing"
)

func TestPlayerSmoothingAndClamp(t *testing.T) {
	p := NewPlayer(800, 600)
	if p.Y != 600-PlayerSize-PlayerBottomGap {
		t.Errorf("Player Y = %v, expected %v", p.Y, 600-PlayerSize-PlayerBottomGap)
	}

	startX := p.X
	p.SetPointer(startX + p.W/2 + 100) // target 100 to the right
	p.Update(0.01)

	// x += (target - x) * 15 * dt
	want := startX + 100*PlayerSmoothing*0.01
	if math.Abs(p.X-want) > 1e-9 {
		t.Errorf("after one step X = %v, expected %v", p.X, want)
	}

	p.SetPointer(-5000)
	for i := 0; i < 100; i++ {
		p.Update(0.05)
	}
	if p.X != 0 {
		t.Errorf("X should clamp to 0, got %v", p.X)
	}

	p.SetPointer(5000)
	for i := 0; i < 100; i++ {
		p.Update(0.05)
	}
	if p.X != 800-p.W {
		t.Errorf("X should clamp to %v, got %v", 800-p.W, p.X)
	}
}

func TestFallingItemSpawn(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	sawBonus := false
	for i := 0; i < 2000; i++ {
		it := NewFallingItem(10, 1.64, rng)
		if it.Y != -ItemSize {
			t.Fatalf("item should spawn at y=%v, got %v", -ItemSize, it.Y)
		}
		lo := ItemBaseSpeed * 1.64
		hi := (ItemBaseSpeed + ItemSpeedVariance) * 1.64
		if it.Item.Bonus {
			sawBonus = true
			lo *= BonusSpeedFactor
			hi *= BonusSpeedFactor
			if it.Item.Spin != 0 {
				t.Fatal("bonus items must not spin")
			}
		} else if math.Abs(it.Item.Spin) > ItemSpin/2 {
			t.Fatalf("spin %v out of range", it.Item.Spin)
		}
		if it.Item.Speed < lo || it.Item.Speed > hi {
			t.Fatalf("speed %v outside [%v, %v]", it.Item.Speed, lo, hi)
		}
	}
	if !sawBonus {
		t.Error("expected at least one bonus item in 2000 spawns")
	}
}

func TestFallingItemUpdate(t *testing.T) {
	it := Entity{Kind: KindFallingItem, Y: 0, W: ItemSize, H: ItemSize,
		Item: ItemData{Speed: 400, Spin: 2}}
	it.Update(0.5)
	if it.Y != 200 {
		t.Errorf("Y = %v, expected 200", it.Y)
	}
	if it.Item.Rotation != 1 {
		t.Errorf("Rotation = %v, expected 1", it.Item.Rotation)
	}
}

func TestMarkerLifecycle(t *testing.T) {
	m := NewMarker(100, 300, NegativeLargeA)
	m.Update(0.25)

	if m.Y != 275 {
		t.Errorf("marker should drift up: Y = %v", m.Y)
	}
	if math.Abs(m.Alpha()-0.75) > 1e-9 {
		t.Errorf("Alpha = %v, expected 0.75", m.Alpha())
	}
	if m.Removed {
		t.Error("marker removed too early")
	}

	m.Update(0.8)
	if !m.Removed {
		t.Error("marker should be removed after its life runs out")
	}
	if m.Alpha() != 0 {
		t.Errorf("Alpha should floor at 0, got %v", m.Alpha())
	}
}

func TestViewImageKeys(t *testing.T) {
	tests := []struct {
		name  string
		e     Entity
		image string
		label string
	}{
		{"player", NewPlayer(800, 600), "player", ""},
		{"regular item", Entity{Kind: KindFallingItem}, "avocado", ""},
		{"bonus item", Entity{Kind: KindFallingItem, Item: ItemData{Bonus: true}}, "powerup", ""},
		{"small marker", NewMarker(0, 0, PositiveSmall), "scorePlus", "+10"},
		{"large marker", NewMarker(0, 0, NegativeLargeB), "", "-40"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			v := tc.e.View()
			if v.Image != tc.image {
				t.Errorf("Image = %q, expected %q", v.Image, tc.image)
			}
			if v.Label != tc.label {
				t.Errorf("Label = %q, expected %q", v.Label, tc.label)
			}
		})
	}
}

func TestSetPointerIgnoredForItems(t *testing.T) {
	it := Entity{Kind: KindFallingItem, X: 5}
	it.SetPointer(500)
	if it.Player.TargetX != 0 {
		t.Error("SetPointer should only affect players")
	}
}
