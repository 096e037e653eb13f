package core

import "testing"

func TestInputFramePointers(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionPause)
	f.AddPointer(PointerEvent{Kind: PointerDown, Tile: 3, X: 1, Y: 2})
	f.AddPointer(PointerEvent{Kind: PointerUp, X: 4, Y: 2})

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionPause) || len(f.Pointers) != 0 {
		t.Error("Clear should drop actions and pointer samples")
	}
	if !clone.Has(ActionPause) {
		t.Error("Clone should keep actions")
	}
	if len(clone.Pointers) != 2 || clone.Pointers[0].Tile != 3 {
		t.Errorf("Clone pointers = %+v", clone.Pointers)
	}
}

func TestParsePointerKind(t *testing.T) {
	for _, k := range []PointerKind{PointerDown, PointerMove, PointerUp, PointerCancel} {
		got, ok := ParsePointerKind(k.String())
		if !ok || got != k {
			t.Errorf("ParsePointerKind(%q) = %v, %v", k.String(), got, ok)
		}
	}
	if _, ok := ParsePointerKind("hover"); ok {
		t.Error("unknown kind should not parse")
	}
}

func TestParseAction(t *testing.T) {
	tests := []struct {
		in   string
		want Action
		ok   bool
	}{
		{"left", ActionLeft, true},
		{"Pause", ActionPause, true},
		{"HINT", ActionHint, true},
		{"none", ActionNone, false},
		{"jump", ActionNone, false},
	}
	for _, tt := range tests {
		got, ok := ParseAction(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAction(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}
