package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// MinContrastRatio is the WCAG AA minimum for normal-size text.
const MinContrastRatio = 4.5

// namedColors covers the CSS keywords that show up in inline styles often
// enough to matter. Computed styles from a browser are always rgb()/rgba().
var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"gray":    "#808080",
	"grey":    "#808080",
	"silver":  "#c0c0c0",
	"navy":    "#000080",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"maroon":  "#800000",
	"teal":    "#008080",
	"olive":   "#808000",
	"lime":    "#00ff00",
	"aqua":    "#00ffff",
	"fuchsia": "#ff00ff",
}

// IsTransparent reports whether a CSS colour string paints nothing.
func IsTransparent(css string) bool {
	s := normalizeColor(css)
	if s == "" || s == "transparent" {
		return true
	}
	_, alpha, err := ParseColor(s)
	return err == nil && alpha == 0
}

func normalizeColor(css string) string {
	return strings.ToLower(strings.TrimSpace(css))
}

// ParseColor parses rgb(), rgba(), #rgb, #rrggbb, and common named colours.
// It returns the colour and its alpha in [0, 1].
func ParseColor(css string) (colorful.Color, float64, error) {
	s := normalizeColor(css)
	if s == "transparent" {
		return colorful.Color{}, 0, nil
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("invalid colour %q: %w", css, err)
		}
		return c, 1, nil
	}

	open := strings.Index(s, "(")
	if open < 0 || !strings.HasSuffix(s, ")") {
		return colorful.Color{}, 0, fmt.Errorf("unsupported colour %q", css)
	}
	fn := s[:open]
	if fn != "rgb" && fn != "rgba" {
		return colorful.Color{}, 0, fmt.Errorf("unsupported colour function %q", fn)
	}
	body := strings.NewReplacer("/", ",", " ", ",").Replace(s[open+1 : len(s)-1])
	var parts []string
	for _, p := range strings.Split(body, ",") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) != 3 && len(parts) != 4 {
		return colorful.Color{}, 0, fmt.Errorf("invalid colour %q", css)
	}

	var rgb [3]float64
	for i := 0; i < 3; i++ {
		v, err := parseChannel(parts[i])
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("invalid colour %q: %w", css, err)
		}
		rgb[i] = v
	}
	alpha := 1.0
	if len(parts) == 4 {
		a, err := parseAlpha(parts[3])
		if err != nil {
			return colorful.Color{}, 0, fmt.Errorf("invalid colour %q: %w", css, err)
		}
		alpha = a
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, alpha, nil
}

func parseChannel(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clamp01(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return clamp01(v / 255), nil
}

func parseAlpha(s string) (float64, error) {
	if strings.HasSuffix(s, "%") {
		v, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clamp01(v / 100), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	return clamp01(v), nil
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

// RelativeLuminance returns the WCAG relative luminance of c.
func RelativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

// ContrastRatio returns the WCAG contrast ratio between two colours, in
// [1, 21].
func ContrastRatio(fg, bg colorful.Color) float64 {
	l1 := RelativeLuminance(fg)
	l2 := RelativeLuminance(bg)
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}
