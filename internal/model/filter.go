package model

import "sort"

// FilterFocusable returns the elements that are keyboard reachable: they
// match FocusableSelector and are neither hidden nor disabled.
func FilterFocusable(elements []Element) []Element {
	var result []Element
	for _, el := range elements {
		if !MatchesFocusableSelector(el) {
			continue
		}
		if el.Hidden() || el.Disabled {
			continue
		}
		result = append(result, el)
	}
	return result
}

// FilterVisible drops elements that are hidden themselves or sit inside a
// display:none ancestor.
func FilterVisible(snap *Snapshot) []Element {
	var result []Element
	for _, el := range snap.Elements {
		if el.Hidden() || hasHiddenAncestor(snap, el.Index) {
			continue
		}
		result = append(result, el)
	}
	return result
}

func hasHiddenAncestor(snap *Snapshot, i int) bool {
	for _, a := range snap.Ancestors(i) {
		if a.Style.Display == "none" {
			return true
		}
	}
	return false
}

// SequentialFocusOrder returns the focusable elements in the order sequential
// keyboard navigation visits them: positive tabindex values ascending (ties in
// document order), then tabindex=0 and natively focusable elements in
// document order. Elements inside display:none subtrees and natively
// focusable elements with a negative tabindex are skipped.
func SequentialFocusOrder(snap *Snapshot) []Element {
	var positive, natural []Element
	for _, el := range FilterFocusable(FilterVisible(snap)) {
		n, ok := TabIndex(el)
		if ok && n < 0 {
			continue
		}
		if ok && n > 0 {
			positive = append(positive, el)
			continue
		}
		natural = append(natural, el)
	}
	sort.SliceStable(positive, func(i, j int) bool {
		a, _ := TabIndex(positive[i])
		b, _ := TabIndex(positive[j])
		return a < b
	})
	return append(positive, natural...)
}
