package model

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
)

// ReportDiff is the result of comparing the findings of two audit runs.
type ReportDiff struct {
	Added          []Finding `yaml:"added,omitempty"   json:"added,omitempty"`
	Removed        []Finding `yaml:"removed,omitempty" json:"removed,omitempty"`
	UnchangedCount int       `yaml:"unchanged_count"   json:"unchanged_count"`
}

// Empty reports whether the two runs had identical findings.
func (d ReportDiff) Empty() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// FindingHash computes a stable identity hash for a finding. Detail is left
// out so that a contrast pair changing colours still counts as the same issue.
func FindingHash(f Finding) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s|%s|%s", f.Check, f.Kind, f.Subject)
	return fmt.Sprintf("%x", h.Sum(nil))[:16]
}

// DiffFindings compares two finding lists by content hash. Duplicate
// findings are matched by count, so two identical unlabelled inputs that
// become one report a single removal.
func DiffFindings(prev, curr []Finding) ReportDiff {
	prevCount := make(map[string]int, len(prev))
	for _, f := range prev {
		prevCount[FindingHash(f)]++
	}

	var diff ReportDiff
	for _, f := range curr {
		h := FindingHash(f)
		if prevCount[h] > 0 {
			prevCount[h]--
			diff.UnchangedCount++
			continue
		}
		diff.Added = append(diff.Added, f)
	}

	currCount := make(map[string]int, len(curr))
	for _, f := range curr {
		currCount[FindingHash(f)]++
	}
	for _, f := range prev {
		h := FindingHash(f)
		if currCount[h] > 0 {
			currCount[h]--
			continue
		}
		diff.Removed = append(diff.Removed, f)
	}
	return diff
}

// SaveBaseline writes findings to path as JSON for later comparison.
func SaveBaseline(path string, findings []Finding) error {
	if findings == nil {
		findings = []Finding{}
	}
	data, err := json.MarshalIndent(findings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal baseline: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// LoadBaseline reads findings written by SaveBaseline.
func LoadBaseline(path string) ([]Finding, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load baseline: %w", err)
	}
	var findings []Finding
	if err := json.Unmarshal(data, &findings); err != nil {
		return nil, fmt.Errorf("unmarshal baseline: %w", err)
	}
	return findings, nil
}
