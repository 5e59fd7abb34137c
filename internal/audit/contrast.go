package audit

import (
	"math"

	"github.com/hopngo/a11y-audit/internal/model"
)

const (
	defaultForeground = "rgb(0, 0, 0)"
	pageBackground    = "rgb(255, 255, 255)"
)

// SampleContrast checks every element's colour pair.
//
// In ContrastIdentical mode an element is flagged when its colour and
// background are both set, neither is transparent, and the two strings are
// equal; the violation reports contrast 1. Elements with the default pair
// (black on transparent) never qualify.
//
// In ContrastRatio mode every visible element with text is checked against
// the nearest opaque background up its ancestor chain (white when none), and
// flagged when the ratio is below model.MinContrastRatio.
func SampleContrast(snap *model.Snapshot, mode ContrastMode) model.ContrastResult {
	result := model.ContrastResult{Violations: []model.ContrastViolation{}}
	if mode == ContrastRatio {
		result.Violations = sampleRatio(snap)
		return result
	}
	for _, el := range snap.Elements {
		fg, bg := el.Style.Color, el.Style.BackgroundColor
		if fg == "" || bg == "" || model.IsTransparent(fg) || model.IsTransparent(bg) {
			continue
		}
		if fg != bg {
			continue
		}
		result.Violations = append(result.Violations, model.ContrastViolation{
			Element:         el.Descriptor(),
			Contrast:        1,
			Expected:        model.MinContrastRatio,
			Color:           fg,
			BackgroundColor: bg,
			Index:           el.Index,
		})
	}
	return result
}

func sampleRatio(snap *model.Snapshot) []model.ContrastViolation {
	violations := []model.ContrastViolation{}
	for _, el := range model.FilterVisible(snap) {
		if el.Text == "" {
			continue
		}
		fgCSS := el.Style.Color
		if fgCSS == "" {
			fgCSS = defaultForeground
		}
		fg, alpha, err := model.ParseColor(fgCSS)
		if err != nil || alpha == 0 {
			continue
		}
		bgCSS := effectiveBackground(snap, el)
		bg, _, err := model.ParseColor(bgCSS)
		if err != nil {
			continue
		}
		ratio := model.ContrastRatio(fg, bg)
		if ratio >= model.MinContrastRatio {
			continue
		}
		violations = append(violations, model.ContrastViolation{
			Element:         el.Descriptor(),
			Contrast:        math.Round(ratio*100) / 100,
			Expected:        model.MinContrastRatio,
			Color:           fgCSS,
			BackgroundColor: bgCSS,
			Index:           el.Index,
		})
	}
	return violations
}

// effectiveBackground returns the first non-transparent background on el or
// its ancestors.
func effectiveBackground(snap *model.Snapshot, el model.Element) string {
	if bg := el.Style.BackgroundColor; bg != "" && !model.IsTransparent(bg) {
		return bg
	}
	for _, a := range snap.Ancestors(el.Index) {
		if bg := a.Style.BackgroundColor; bg != "" && !model.IsTransparent(bg) {
			return bg
		}
	}
	return pageBackground
}
