package model

import "sort"

// Finding is one issue from a report, flattened for diffing and listing.
type Finding struct {
	Check   string `yaml:"check"            json:"check"`
	Kind    string `yaml:"kind"             json:"kind"`
	Subject string `yaml:"subject"          json:"subject"`
	Detail  string `yaml:"detail,omitempty" json:"detail,omitempty"`
}

// FlattenReport converts a report into a flat list of findings. The order is
// stable: checks in AllChecks order, then rules, each sorted by kind and
// subject.
func FlattenReport(r AccessibilityReport) []Finding {
	var result []Finding
	add := func(check, kind string, subjects []string) {
		for _, s := range subjects {
			result = append(result, Finding{Check: check, Kind: kind, Subject: s})
		}
	}

	add(CheckImages, "missing-alt", r.Images.MissingAlt)
	add(CheckImages, "empty-alt", r.Images.EmptyAlt)
	add(CheckImages, "decorative", r.Images.DecorativeImages)
	add(CheckForms, "unlabeled-input", r.Forms.UnlabeledInputs)
	add(CheckForms, "missing-fieldset", r.Forms.MissingFieldsets)
	add(CheckForms, "invalid-aria-labelledby", r.Forms.InvalidAriaLabels)
	for _, v := range r.Contrast.Violations {
		result = append(result, Finding{
			Check:   CheckContrast,
			Kind:    "low-contrast",
			Subject: v.Element,
			Detail:  v.Color + " on " + v.BackgroundColor,
		})
	}
	add(CheckKeyboard, "focus-trap", r.Keyboard.TrapIssues)
	for _, v := range r.Rules {
		for _, n := range v.Nodes {
			subject := ""
			if len(n.Target) > 0 {
				subject = n.Target[0]
			}
			result = append(result, Finding{Check: "rules", Kind: v.ID, Subject: subject, Detail: v.Help})
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		if result[i].Check != result[j].Check {
			return checkRank(result[i].Check) < checkRank(result[j].Check)
		}
		if result[i].Kind != result[j].Kind {
			return result[i].Kind < result[j].Kind
		}
		return result[i].Subject < result[j].Subject
	})
	return result
}

func checkRank(check string) int {
	for i, c := range AllChecks {
		if c == check {
			return i
		}
	}
	return len(AllChecks)
}
