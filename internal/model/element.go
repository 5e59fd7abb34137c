package model

import "strings"

// Style holds the computed style properties the checks care about.
type Style struct {
	Display         string `yaml:"display,omitempty"    json:"display,omitempty"`
	Visibility      string `yaml:"visibility,omitempty" json:"visibility,omitempty"`
	Color           string `yaml:"color,omitempty"      json:"color,omitempty"`
	BackgroundColor string `yaml:"bg,omitempty"         json:"bg,omitempty"`
}

// Element represents one DOM element in a page snapshot.
type Element struct {
	Index    int               `yaml:"i"                  json:"i"`                  // Document-order position
	Tag      string            `yaml:"tag"                json:"tag"`                // Lowercase tag name
	ID       string            `yaml:"id,omitempty"       json:"id,omitempty"`       // id attribute
	Classes  []string          `yaml:"class,omitempty"    json:"class,omitempty"`    // class list
	Attrs    map[string]string `yaml:"attrs,omitempty"    json:"attrs,omitempty"`    // All attributes, including id and class
	Parent   int               `yaml:"parent"             json:"parent"`             // Index of parent, -1 for the root
	Style    Style             `yaml:"style,omitempty"    json:"style,omitempty"`    // Computed style
	Bounds   [4]int            `yaml:"b,omitempty"        json:"b,omitempty"`        // [x, y, width, height]
	Disabled bool              `yaml:"disabled,omitempty" json:"disabled,omitempty"` // Form control is disabled
	Text     string            `yaml:"text,omitempty"     json:"text,omitempty"`     // Trimmed text content (truncated)
}

// Attr returns the value of the named attribute and whether it is present.
func (el Element) Attr(name string) (string, bool) {
	v, ok := el.Attrs[name]
	return v, ok
}

// HasAttr reports whether the named attribute is present.
func (el Element) HasAttr(name string) bool {
	_, ok := el.Attrs[name]
	return ok
}

// Descriptor identifies an element by tag, id, and class list, e.g.
// "button#buy.btn.primary". It is the state the keyboard walker compares
// between Tab presses.
func (el Element) Descriptor() string {
	var b strings.Builder
	b.WriteString(strings.ToLower(el.Tag))
	if el.ID != "" {
		b.WriteString("#")
		b.WriteString(el.ID)
	}
	for _, c := range el.Classes {
		if c == "" {
			continue
		}
		b.WriteString(".")
		b.WriteString(c)
	}
	return b.String()
}

// Hidden reports whether the element is removed from rendering or invisible.
func (el Element) Hidden() bool {
	return el.Style.Display == "none" || el.Style.Visibility == "hidden"
}
