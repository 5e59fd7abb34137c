package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FocusableSelector is the selector used to count keyboard-reachable elements.
const FocusableSelector = `a[href], button, input, textarea, select, details, [tabindex]:not([tabindex="-1"])`

// nativeFocusableTags are the tags matched by FocusableSelector without
// needing an attribute.
var nativeFocusableTags = map[string]bool{
	"button":   true,
	"input":    true,
	"textarea": true,
	"select":   true,
	"details":  true,
}

// LabelableTags are the form controls that need an accessible label.
var LabelableTags = []string{"input", "textarea", "select"}

// unlabelableInputTypes are hidden or take their accessible name from their
// own value.
var unlabelableInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"reset":  true,
	"image":  true,
}

// Check names.
const (
	CheckImages   = "images"
	CheckForms    = "forms"
	CheckContrast = "contrast"
	CheckKeyboard = "keyboard"
)

// AllChecks lists every local check in the order the aggregator runs them.
var AllChecks = []string{CheckImages, CheckForms, CheckContrast, CheckKeyboard}

// MetaChecks maps meta-check names to the concrete checks they expand to.
var MetaChecks = map[string][]string{
	"all": AllChecks,
	"dom": {CheckImages, CheckForms, CheckContrast},
}

// ExpandChecks expands any meta-checks in the given list to their concrete
// checks. Duplicates are removed and unknown names are rejected.
func ExpandChecks(names []string) ([]string, error) {
	known := make(map[string]bool, len(AllChecks))
	for _, c := range AllChecks {
		known[c] = true
	}
	seen := make(map[string]bool, len(names))
	var expanded []string
	for _, n := range names {
		n = strings.ToLower(strings.TrimSpace(n))
		if n == "" {
			continue
		}
		concrete, ok := MetaChecks[n]
		if !ok {
			if !known[n] {
				return nil, fmt.Errorf("unknown check: %q (expected %s, all, or dom)", n, strings.Join(AllChecks, ", "))
			}
			concrete = []string{n}
		}
		for _, c := range concrete {
			if !seen[c] {
				seen[c] = true
				expanded = append(expanded, c)
			}
		}
	}
	return expanded, nil
}

// TabIndex returns the parsed tabindex attribute and whether it is present
// and numeric.
func TabIndex(el Element) (int, bool) {
	v, ok := el.Attr("tabindex")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

// MatchesFocusableSelector reports whether el matches FocusableSelector,
// ignoring visibility and disabled state.
func MatchesFocusableSelector(el Element) bool {
	if nativeFocusableTags[el.Tag] {
		return true
	}
	if el.Tag == "a" && el.HasAttr("href") {
		return true
	}
	if v, ok := el.Attr("tabindex"); ok {
		return strings.TrimSpace(v) != "-1"
	}
	return false
}

// IsLabelable reports whether el is a textarea, select, or an input whose
// type is not one of the hidden or button-like types.
func IsLabelable(el Element) bool {
	switch el.Tag {
	case "textarea", "select":
		return true
	case "input":
		t, _ := el.Attr("type")
		return !unlabelableInputTypes[strings.ToLower(strings.TrimSpace(t))]
	}
	return false
}

// InputType returns the lowercase type attribute of an input ("text" when
// absent).
func InputType(el Element) string {
	t, ok := el.Attr("type")
	if !ok || strings.TrimSpace(t) == "" {
		return "text"
	}
	return strings.ToLower(strings.TrimSpace(t))
}
