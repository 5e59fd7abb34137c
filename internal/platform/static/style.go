package static

import (
	"strings"

	"github.com/hopngo/a11y-audit/internal/model"
)

// Initial values of the properties a browser would report through
// getComputedStyle when nothing is set.
const (
	initialColor      = "rgb(0, 0, 0)"
	initialBackground = "rgba(0, 0, 0, 0)"
)

// neverRendered are elements whose default display is none.
var neverRendered = map[string]bool{
	"head": true, "script": true, "style": true, "template": true,
	"title": true, "meta": true, "link": true, "base": true, "noscript": true,
}

var inlineTags = map[string]bool{
	"a": true, "abbr": true, "b": true, "bdi": true, "bdo": true, "br": true,
	"cite": true, "code": true, "em": true, "i": true, "img": true, "kbd": true,
	"label": true, "mark": true, "q": true, "s": true, "small": true, "span": true,
	"strong": true, "sub": true, "sup": true, "time": true, "u": true, "var": true,
}

// inlineBlockTags are replaced or form elements rendered inline-block.
var inlineBlockTags = map[string]bool{
	"button": true, "input": true, "select": true, "textarea": true, "meter": true, "progress": true,
}

// parseInlineStyle parses a style attribute into lowercase property names.
// Later declarations win; !important is dropped.
func parseInlineStyle(s string) map[string]string {
	props := map[string]string{}
	for _, decl := range strings.Split(s, ";") {
		name, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		name = strings.ToLower(strings.TrimSpace(name))
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), "!important"))
		if name == "" || value == "" {
			continue
		}
		props[name] = strings.TrimSpace(value)
	}
	return props
}

// computeStyle approximates the computed style of el. parent is the computed
// style of its parent element, or nil for the root.
func computeStyle(el model.Element, parent *model.Style) model.Style {
	style := model.Style{
		Display:         defaultDisplay(el.Tag),
		Visibility:      "visible",
		Color:           initialColor,
		BackgroundColor: initialBackground,
	}
	if parent != nil {
		style.Visibility = parent.Visibility
		style.Color = parent.Color
	}
	if el.HasAttr("hidden") {
		style.Display = "none"
	}

	props := parseInlineStyle(el.Attrs["style"])
	if v, ok := props["display"]; ok {
		style.Display = v
	}
	if v, ok := props["visibility"]; ok {
		if v == "collapse" {
			v = "hidden"
		}
		style.Visibility = v
	}
	if v, ok := props["color"]; ok && v != "inherit" {
		style.Color = v
	}
	if v, ok := props["background-color"]; ok {
		style.BackgroundColor = v
	} else if v, ok := props["background"]; ok && isSingleColor(v) {
		style.BackgroundColor = v
	}
	return style
}

func defaultDisplay(tag string) string {
	switch {
	case neverRendered[tag]:
		return "none"
	case inlineTags[tag]:
		return "inline"
	case inlineBlockTags[tag]:
		return "inline-block"
	case tag == "li":
		return "list-item"
	case tag == "table":
		return "table"
	case tag == "tr":
		return "table-row"
	case tag == "td", tag == "th":
		return "table-cell"
	default:
		return "block"
	}
}

// isSingleColor reports whether a background shorthand holds just a colour.
func isSingleColor(v string) bool {
	if strings.Contains(v, "url(") || strings.Contains(v, "gradient(") {
		return false
	}
	_, _, err := model.ParseColor(v)
	return err == nil
}
