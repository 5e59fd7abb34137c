package static

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hopngo/a11y-audit/internal/model"
	"golang.org/x/net/html"
)

const maxTextLen = 80

// formControls can carry the disabled attribute.
var formControls = map[string]bool{
	"button": true, "input": true, "select": true, "textarea": true,
	"optgroup": true, "option": true, "fieldset": true,
}

// parseSnapshot builds a snapshot from raw HTML. url is recorded as-is.
func parseSnapshot(raw []byte, url string) (*model.Snapshot, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse document: %w", err)
	}
	return buildSnapshot(doc, url), nil
}

func buildSnapshot(doc *goquery.Document, url string) *model.Snapshot {
	snap := &model.Snapshot{
		URL:   url,
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	index := map[*html.Node]int{}
	doc.Find("*").Each(func(i int, s *goquery.Selection) {
		node := s.Nodes[0]
		index[node] = i

		el := model.Element{
			Index:  i,
			Tag:    strings.ToLower(node.Data),
			Attrs:  map[string]string{},
			Parent: -1,
		}
		for _, a := range node.Attr {
			el.Attrs[strings.ToLower(a.Key)] = a.Val
		}
		el.ID = el.Attrs["id"]
		el.Classes = strings.Fields(el.Attrs["class"])
		if node.Parent != nil {
			if p, ok := index[node.Parent]; ok {
				el.Parent = p
			}
		}

		var parentStyle *model.Style
		if el.Parent >= 0 {
			parentStyle = &snap.Elements[el.Parent].Style
		}
		el.Style = computeStyle(el, parentStyle)
		el.Disabled = isDisabled(snap, el)
		if s.Children().Length() == 0 {
			el.Text = truncate(strings.Join(strings.Fields(s.Text()), " "), maxTextLen)
		}

		snap.Elements = append(snap.Elements, el)
	})
	return snap
}

// isDisabled applies the disabled attribute and inheritance from a disabled
// fieldset. Ancestors must already be in snap.
func isDisabled(snap *model.Snapshot, el model.Element) bool {
	if !formControls[el.Tag] {
		return false
	}
	if el.HasAttr("disabled") {
		return true
	}
	for p := el.Parent; p >= 0 && p < len(snap.Elements); p = snap.Elements[p].Parent {
		anc := snap.Elements[p]
		if anc.Tag == "fieldset" && anc.HasAttr("disabled") {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
