package selection

import (
	"fmt"
	"strings"
)

// Theme is a cosmetic colour theme; it has no effect on data.
type Theme string

const DefaultTheme Theme = "blues"

// Themes is the fixed set offered by the theme selector, in display order.
var Themes = []Theme{"blues", "viridis", "plasma", "inferno", "magma", "turbo", "teal", "mint"}

// heatmapSchemes are the themes the heatmap can render directly.
var heatmapSchemes = map[Theme]bool{"blues": true, "viridis": true, "plasma": true, "inferno": true, "magma": true}

// ParseTheme validates a theme name, case-insensitively.
func ParseTheme(s string) (Theme, error) {
	t := Theme(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Themes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownTheme, s)
}

// BarScale is the bar chart colour scale for the theme. Every theme has one.
func (t Theme) BarScale() string {
	if t == "" {
		return string(DefaultTheme)
	}
	return string(t)
}

// HeatmapScheme is the heatmap scheme for the theme; themes without a
// matching scheme fall back to blues.
func (t Theme) HeatmapScheme() string {
	if heatmapSchemes[t] {
		return string(t)
	}
	return string(DefaultTheme)
}
