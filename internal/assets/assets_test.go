package assets

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

func writePNG(t *testing.T, path string, img image.Image) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}

// quadrants builds a 60x60 image with a distinct color per 30x30 quarter.
func quadrants() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, 60, 60))
	colors := []color.RGBA{
		{255, 0, 0, 255}, {0, 255, 0, 255},
		{0, 0, 255, 255}, {255, 255, 255, 255},
	}
	for y := 0; y < 60; y++ {
		for x := 0; x < 60; x++ {
			img.Set(x, y, colors[(y/30)*2+x/30])
		}
	}
	return img
}

func TestCut(t *testing.T) {
	pieces := Cut(quadrants(), 2)
	if len(pieces) != 4 {
		t.Fatalf("expected 4 pieces, got %d", len(pieces))
	}
	for i, p := range pieces {
		if p.Bounds().Dx() != 30 || p.Bounds().Dy() != 30 {
			t.Errorf("piece %d bounds = %v", i, p.Bounds())
		}
	}

	r, g, b := AverageColor(pieces[1])
	if r != 0 || g != 255 || b != 0 {
		t.Errorf("piece 1 average = (%d,%d,%d), expected green", r, g, b)
	}

	if Cut(quadrants(), 100) != nil {
		t.Error("pieces smaller than a pixel should yield nil")
	}
}

func TestAverageColorBlend(t *testing.T) {
	r, g, b := AverageColor(quadrants())
	// Linear blend of red, green, blue and white
	if r != g || g != b {
		t.Errorf("average = (%d,%d,%d), expected a gray", r, g, b)
	}
}

func TestDirFragments(t *testing.T) {
	root := t.TempDir()
	writePNG(t, filepath.Join(root, "nivel1.png"), quadrants())

	d := NewDir(root)
	frags, err := d.Fragments("nivel1", 2)
	if err != nil {
		t.Fatalf("Fragments() failed: %v", err)
	}
	if len(frags) != 4 {
		t.Errorf("expected 4 fragments, got %d", len(frags))
	}

	// Cached on second load
	a, _ := d.Load("nivel1")
	b, _ := d.Load("nivel1")
	if a != b {
		t.Error("second Load should return the cached image")
	}

	if _, err := d.Fragments("nivel2", 3); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing image error = %v, expected ErrNotFound", err)
	}
}
