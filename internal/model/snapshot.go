package model

import (
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is a flat, document-ordered capture of a rendered page's DOM.
// Elements[i].Index == i for every element.
type Snapshot struct {
	URL      string    `yaml:"url,omitempty"   json:"url,omitempty"`
	Title    string    `yaml:"title,omitempty" json:"title,omitempty"`
	TS       int64     `yaml:"ts"              json:"ts"`
	Elements []Element `yaml:"elements"        json:"elements"`
}

// ByTag returns every element with the given lowercase tag, in document order.
func (s *Snapshot) ByTag(tags ...string) []Element {
	want := make(map[string]bool, len(tags))
	for _, t := range tags {
		want[t] = true
	}
	var result []Element
	for _, el := range s.Elements {
		if want[el.Tag] {
			result = append(result, el)
		}
	}
	return result
}

// ByID returns the first element whose id attribute equals id, or nil.
func (s *Snapshot) ByID(id string) *Element {
	if id == "" {
		return nil
	}
	for i := range s.Elements {
		if s.Elements[i].ID == id {
			return &s.Elements[i]
		}
	}
	return nil
}

// Get returns the element at index i, or nil when out of range.
func (s *Snapshot) Get(i int) *Element {
	if i < 0 || i >= len(s.Elements) {
		return nil
	}
	return &s.Elements[i]
}

// Ancestors returns the parent chain of element i, nearest first.
func (s *Snapshot) Ancestors(i int) []Element {
	var result []Element
	el := s.Get(i)
	// Parent indices always point backwards in document order, which also
	// guards against malformed snapshots with cycles.
	for el != nil && el.Parent >= 0 && el.Parent < el.Index {
		el = s.Get(el.Parent)
		if el == nil {
			break
		}
		result = append(result, *el)
	}
	return result
}

// Closest returns the nearest ancestor of element i with the given tag, or nil.
func (s *Snapshot) Closest(i int, tag string) *Element {
	for _, a := range s.Ancestors(i) {
		if a.Tag == tag {
			return s.Get(a.Index)
		}
	}
	return nil
}

// IsDescendant reports whether element i lies inside element ancestor.
func (s *Snapshot) IsDescendant(i, ancestor int) bool {
	for _, a := range s.Ancestors(i) {
		if a.Index == ancestor {
			return true
		}
	}
	return false
}

// Descendants returns every element inside element i, in document order.
func (s *Snapshot) Descendants(i int) []Element {
	var result []Element
	for j := i + 1; j < len(s.Elements); j++ {
		if s.IsDescendant(j, i) {
			result = append(result, s.Elements[j])
		}
	}
	return result
}

// SaveSnapshot writes a snapshot to path as JSON.
func SaveSnapshot(path string, snap *Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSnapshot reads a snapshot previously written by SaveSnapshot.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &snap, nil
}
