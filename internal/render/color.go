// Package render draws the chart panel as SVG (for the page) or PNG (for
// files written by the CLI).
package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Colour stops, light/low to dark/high for the sequential schemes.
var scaleStops = map[string][]string{
	"blues":   {"f7fbff", "deebf7", "c6dbef", "9ecae1", "6baed6", "4292c6", "2171b5", "08519c", "08306b"},
	"viridis": {"440154", "482878", "3e4989", "31688e", "26828e", "1f9e89", "35b779", "6ece58", "b5de2b", "fde725"},
	"plasma":  {"0d0887", "46039f", "7201a8", "9c179e", "bd3786", "d8576b", "ed7953", "fb9f3a", "fdca26", "f0f921"},
	"inferno": {"000004", "1b0c41", "4a0c6b", "781c6d", "a52c60", "cf4446", "ed6925", "fb9b06", "f7d13d", "fcffa4"},
	"magma":   {"000004", "180f3d", "440f76", "721f81", "9e2f7f", "cd4071", "f1605d", "fd9668", "feca8d", "fcfdbf"},
	"turbo":   {"30123b", "4662d7", "36aaf9", "1ae4b6", "72fe5e", "c8ef34", "faba39", "f66b19", "ca2a04", "7a0403"},
	"teal":    {"d1eeea", "a8dbd9", "85c4c9", "68abb8", "4f90a6", "3b738f", "2a5674"},
	"mint":    {"e4f1e1", "b4d9cc", "89c0b6", "63a6a0", "448c8a", "287274", "0d585f"},
}

// Scale is a continuous colour scale.
type Scale struct {
	Name  string
	stops []drawing.Color
}

// ColorScale returns the named scale, or blues for an unknown name.
func ColorScale(name string) Scale {
	name = strings.ToLower(name)
	hexes, ok := scaleStops[name]
	if !ok {
		name, hexes = "blues", scaleStops["blues"]
	}
	s := Scale{Name: name, stops: make([]drawing.Color, len(hexes))}
	for i, h := range hexes {
		s.stops[i] = drawing.ColorFromHex(h)
	}
	return s
}

// At interpolates the scale at t, clamped to [0,1].
func (s Scale) At(t float64) drawing.Color {
	if math.IsNaN(t) || t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	pos := t * float64(len(s.stops)-1)
	i := int(pos)
	if i >= len(s.stops)-1 {
		return s.stops[len(s.stops)-1]
	}
	frac := pos - float64(i)
	a, b := s.stops[i], s.stops[i+1]
	mix := func(x, y uint8) uint8 { return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac)) }
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}

// Hex formats c as #rrggbb.
func Hex(c drawing.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// position maps v into [0,1] relative to lo..hi; a flat range maps to 1 so
// that a single bar gets the strongest colour.
func position(v, lo, hi int64) float64 {
	if hi == lo {
		return 1
	}
	return float64(v-lo) / float64(hi-lo)
}
