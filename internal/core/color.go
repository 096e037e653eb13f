package core

import "github.com/lucasb-eyer/go-colorful"

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// palette holds approximate RGB values for the predefined colors.
// ColorDefault is excluded from nearest-color matching.
var palette = [...]struct {
	c       Color
	r, g, b int
}{
	{ColorRed, 170, 0, 0},
	{ColorGreen, 0, 170, 0},
	{ColorYellow, 170, 85, 0},
	{ColorBlue, 0, 0, 170},
	{ColorMagenta, 170, 0, 170},
	{ColorCyan, 0, 170, 170},
	{ColorWhite, 170, 170, 170},
	{ColorBrightRed, 255, 85, 85},
	{ColorBrightGreen, 85, 255, 85},
	{ColorBrightYellow, 255, 255, 85},
	{ColorBrightBlue, 85, 85, 255},
	{ColorBrightMagenta, 255, 85, 255},
	{ColorBrightCyan, 85, 255, 255},
	{ColorBrightWhite, 255, 255, 255},
	{ColorOrange, 255, 135, 0},
	{ColorGray, 138, 138, 138},
}

// NearestColor maps an RGB triple to the closest predefined color,
// measured in CIE Lab space.
func NearestColor(r, g, b uint8) Color {
	target := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	best := ColorWhite
	bestDist := -1.0
	for _, p := range palette {
		c := colorful.Color{R: float64(p.r) / 255, G: float64(p.g) / 255, B: float64(p.b) / 255}
		if d := target.DistanceLab(c); bestDist < 0 || d < bestDist {
			best = p.c
			bestDist = d
		}
	}
	return best
}
