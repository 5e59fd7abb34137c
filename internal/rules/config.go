package rules

import "sort"

// DefaultSource is the axe-core build injected when no source is configured.
const DefaultSource = "https://cdnjs.cloudflare.com/ajax/libs/axe-core/4.10.2/axe.min.js"

// DefaultTags are the WCAG tag families every check runs against.
var DefaultTags = []string{"wcag2a", "wcag2aa", "wcag21aa"}

// DefaultRules are the axe-core rules enabled on every page.
var DefaultRules = []string{
	"color-contrast",
	"aria-allowed-attr",
	"aria-required-attr",
	"aria-valid-attr",
	"aria-valid-attr-value",
	"button-name",
	"document-title",
	"duplicate-id",
	"heading-order",
	"html-has-lang",
	"image-alt",
	"label",
	"landmark-one-main",
	"link-name",
	"list",
	"region",
	"bypass",
}

// Config is the static rule configuration applied to a page.
type Config struct {
	Source string          `yaml:"source" json:"source"` // axe-core URL or local file path
	Tags   []string        `yaml:"tags"   json:"tags"`
	Rules  map[string]bool `yaml:"rules"  json:"rules"` // rule id -> enabled
}

// DefaultConfig returns the standard rule set.
func DefaultConfig() Config {
	cfg := Config{
		Source: DefaultSource,
		Tags:   append([]string(nil), DefaultTags...),
		Rules:  make(map[string]bool, len(DefaultRules)),
	}
	for _, id := range DefaultRules {
		cfg.Rules[id] = true
	}
	return cfg
}

// EnabledRules returns the ids of enabled rules, sorted.
func (c Config) EnabledRules() []string {
	var ids []string
	for id, on := range c.Rules {
		if on {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// withDefaults fills empty fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.Source == "" {
		c.Source = def.Source
	}
	if len(c.Tags) == 0 {
		c.Tags = def.Tags
	}
	if len(c.Rules) == 0 {
		c.Rules = def.Rules
	}
	return c
}
