// Package assets loads level images from disk and cuts them into puzzle
// fragments. Images are looked up by name with a .png, .jpg or .jpeg
// extension under a root directory.
package assets

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"sync"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrNotFound is returned when no file matches an image name.
var ErrNotFound = errors.New("assets: image not found")

var extensions = []string{".png", ".jpg", ".jpeg"}

// Dir is an image source rooted at a directory. Decoded images are cached.
type Dir struct {
	root  string
	mu    sync.Mutex
	cache map[string]image.Image
}

// NewDir creates a source reading from root.
func NewDir(root string) *Dir {
	return &Dir{root: root, cache: make(map[string]image.Image)}
}

// Default returns a source rooted at $AVOCASH_ASSETS or ./assets.
func Default() *Dir {
	root := os.Getenv("AVOCASH_ASSETS")
	if root == "" {
		root = "assets"
	}
	return NewDir(root)
}

// Load decodes the named image.
func (d *Dir) Load(name string) (image.Image, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if img, ok := d.cache[name]; ok {
		return img, nil
	}
	for _, ext := range extensions {
		path := filepath.Join(d.root, name+ext)
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("assets: decode %s: %w", path, err)
		}
		d.cache[name] = img
		return img, nil
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrNotFound, name, d.root)
}

// Fragments loads the named image and cuts it into size×size pieces.
func (d *Dir) Fragments(name string, size int) ([]image.Image, error) {
	img, err := d.Load(name)
	if err != nil {
		return nil, err
	}
	return Cut(img, size), nil
}

type subImager interface {
	SubImage(r image.Rectangle) image.Image
}

// Cut splits img into size×size equal pieces in row-major order.
// Remainder pixels at the right and bottom edges are dropped.
func Cut(img image.Image, size int) []image.Image {
	if size <= 0 {
		return nil
	}
	b := img.Bounds()
	pw, ph := b.Dx()/size, b.Dy()/size
	if pw == 0 || ph == 0 {
		return nil
	}

	out := make([]image.Image, 0, size*size)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			r := image.Rect(b.Min.X+x*pw, b.Min.Y+y*ph, b.Min.X+(x+1)*pw, b.Min.Y+(y+1)*ph)
			if si, ok := img.(subImager); ok {
				out = append(out, si.SubImage(r))
				continue
			}
			dst := image.NewRGBA(image.Rect(0, 0, pw, ph))
			draw.Draw(dst, dst.Bounds(), img, r.Min, draw.Src)
			out = append(out, dst)
		}
	}
	return out
}

// AverageColor returns the mean color of img, blended in linear RGB.
// Fully transparent pixels are skipped.
func AverageColor(img image.Image) (r, g, b uint8) {
	bounds := img.Bounds()
	var sr, sg, sb float64
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			px := img.At(x, y)
			if _, _, _, a := px.RGBA(); a == 0 {
				continue
			}
			c, _ := colorful.MakeColor(px)
			lr, lg, lb := c.LinearRgb()
			sr, sg, sb = sr+lr, sg+lg, sb+lb
			n++
		}
	}
	if n == 0 {
		return 0, 0, 0
	}
	avg := colorful.LinearRgb(sr/float64(n), sg/float64(n), sb/float64(n))
	return avg.Clamped().RGB255()
}
