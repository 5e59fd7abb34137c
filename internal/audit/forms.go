package audit

import (
	"fmt"
	"strings"

	"github.com/hopngo/a11y-audit/internal/model"
)

// FormOptions tunes the form checks.
type FormOptions struct {
	// SkipUnlabelableTypes leaves hidden, submit, button, reset and image
	// inputs out of the unlabeled-input check.
	SkipUnlabelableTypes bool
}

// ClassifyForms runs the three form checks over snap. Every input, textarea
// and select is checked for a label.
func ClassifyForms(snap *model.Snapshot) model.FormAccessibilityResult {
	return ClassifyFormsWith(snap, FormOptions{})
}

// ClassifyFormsWith is ClassifyForms with options.
func ClassifyFormsWith(snap *model.Snapshot, opts FormOptions) model.FormAccessibilityResult {
	result := model.NewFormAccessibilityResult()
	result.UnlabeledInputs = unlabeledInputs(snap, opts.SkipUnlabelableTypes)
	result.MissingFieldsets = missingFieldsets(snap)
	result.InvalidAriaLabels = invalidAriaLabels(snap)
	return result
}

// unlabeledInputs returns controls with none of: <label for=id>, an ancestor
// <label>, a non-empty aria-label, or aria-labelledby. Controls are named by
// id, then name, then "{tag}-{n}" with n counted among all controls, skipped
// ones included.
func unlabeledInputs(snap *model.Snapshot, skipUnlabelable bool) []string {
	labelFor := map[string]bool{}
	for _, l := range snap.ByTag("label") {
		if f, ok := l.Attr("for"); ok && f != "" {
			labelFor[f] = true
		}
	}

	unlabeled := []string{}
	for i, el := range snap.ByTag(model.LabelableTags...) {
		if skipUnlabelable && !model.IsLabelable(el) {
			continue
		}
		if el.ID != "" && labelFor[el.ID] {
			continue
		}
		if snap.Closest(el.Index, "label") != nil {
			continue
		}
		if strings.TrimSpace(el.Attrs["aria-label"]) != "" {
			continue
		}
		if strings.TrimSpace(el.Attrs["aria-labelledby"]) != "" {
			continue
		}
		unlabeled = append(unlabeled, controlName(el, i))
	}
	return unlabeled
}

func controlName(el model.Element, n int) string {
	if el.ID != "" {
		return el.ID
	}
	if name := el.Attrs["name"]; name != "" {
		return name
	}
	return fmt.Sprintf("%s-%d", el.Tag, n)
}

// missingFieldsets returns "form-{n}" for each form with more than one radio
// or more than one checkbox and no <fieldset> inside it.
func missingFieldsets(snap *model.Snapshot) []string {
	missing := []string{}
	for i, form := range snap.ByTag("form") {
		radios, checkboxes, fieldsets := 0, 0, 0
		for _, el := range snap.Descendants(form.Index) {
			switch el.Tag {
			case "fieldset":
				fieldsets++
			case "input":
				switch model.InputType(el) {
				case "radio":
					radios++
				case "checkbox":
					checkboxes++
				}
			}
		}
		if (radios > 1 || checkboxes > 1) && fieldsets == 0 {
			missing = append(missing, fmt.Sprintf("form-%d", i))
		}
	}
	return missing
}

// invalidAriaLabels reports every aria-labelledby id reference that matches
// no element.
func invalidAriaLabels(snap *model.Snapshot) []string {
	invalid := []string{}
	for _, el := range snap.Elements {
		refs, ok := el.Attr("aria-labelledby")
		if !ok {
			continue
		}
		owner := el.ID
		if owner == "" {
			owner = el.Descriptor()
		}
		for _, ref := range strings.Fields(refs) {
			if snap.ByID(ref) == nil {
				invalid = append(invalid, fmt.Sprintf("%s references non-existent element: %s", owner, ref))
			}
		}
	}
	return invalid
}
