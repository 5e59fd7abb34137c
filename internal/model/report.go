package model

// KeyboardNavigationResult is the outcome of a simulated Tab walk.
type KeyboardNavigationResult struct {
	FocusableElements int      `yaml:"focusableElements" json:"focusableElements"`
	TabOrder          []string `yaml:"tabOrder"          json:"tabOrder"`
	TrapIssues        []string `yaml:"trapIssues"        json:"trapIssues"`
}

// ImageAltResult buckets images by their alt text state. An image lands in
// at most one bucket; images with non-empty alt text land in none.
type ImageAltResult struct {
	MissingAlt       []string `yaml:"missingAlt"       json:"missingAlt"`
	EmptyAlt         []string `yaml:"emptyAlt"         json:"emptyAlt"`
	DecorativeImages []string `yaml:"decorativeImages" json:"decorativeImages"`
}

// FormAccessibilityResult lists form labelling problems.
type FormAccessibilityResult struct {
	UnlabeledInputs   []string `yaml:"unlabeledInputs"   json:"unlabeledInputs"`
	MissingFieldsets  []string `yaml:"missingFieldsets"  json:"missingFieldsets"`
	InvalidAriaLabels []string `yaml:"invalidAriaLabels" json:"invalidAriaLabels"`
}

// ContrastViolation is one flagged foreground/background pair.
type ContrastViolation struct {
	Element         string  `yaml:"element"         json:"element"`
	Contrast        float64 `yaml:"contrast"        json:"contrast"`
	Expected        float64 `yaml:"expected"        json:"expected"`
	Color           string  `yaml:"color"           json:"color"`
	BackgroundColor string  `yaml:"backgroundColor" json:"backgroundColor"`
	Index           int     `yaml:"-"               json:"-"`
}

// ContrastResult wraps the contrast sampler's findings.
type ContrastResult struct {
	Violations []ContrastViolation `yaml:"violations" json:"violations"`
}

// RuleNode is one offending node reported by the rules engine.
type RuleNode struct {
	Target         []string `yaml:"target"                   json:"target"`
	HTML           string   `yaml:"html,omitempty"           json:"html,omitempty"`
	FailureSummary string   `yaml:"failureSummary,omitempty" json:"failureSummary,omitempty"`
}

// RuleViolation mirrors axe-core's violation record.
type RuleViolation struct {
	ID          string     `yaml:"id"                    json:"id"`
	Impact      string     `yaml:"impact,omitempty"      json:"impact,omitempty"`
	Description string     `yaml:"description,omitempty" json:"description,omitempty"`
	Help        string     `yaml:"help,omitempty"        json:"help,omitempty"`
	HelpURL     string     `yaml:"helpUrl,omitempty"     json:"helpUrl,omitempty"`
	Tags        []string   `yaml:"tags,omitempty"        json:"tags,omitempty"`
	Nodes       []RuleNode `yaml:"nodes"                 json:"nodes"`
}

// AccessibilityReport aggregates one full audit pass over a page.
type AccessibilityReport struct {
	ID       string                   `yaml:"id"               json:"id"`
	URL      string                   `yaml:"url,omitempty"    json:"url,omitempty"`
	TS       int64                    `yaml:"ts"               json:"ts"`
	Keyboard KeyboardNavigationResult `yaml:"keyboard"         json:"keyboard"`
	Images   ImageAltResult           `yaml:"images"           json:"images"`
	Forms    FormAccessibilityResult  `yaml:"forms"            json:"forms"`
	Contrast ContrastResult           `yaml:"contrast"         json:"contrast"`
	Rules    []RuleViolation          `yaml:"rules,omitempty"  json:"rules,omitempty"`
	Errors   map[string]string        `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// NewImageAltResult returns a result with empty, non-nil buckets.
func NewImageAltResult() ImageAltResult {
	return ImageAltResult{MissingAlt: []string{}, EmptyAlt: []string{}, DecorativeImages: []string{}}
}

// NewFormAccessibilityResult returns a result with empty, non-nil lists.
func NewFormAccessibilityResult() FormAccessibilityResult {
	return FormAccessibilityResult{UnlabeledInputs: []string{}, MissingFieldsets: []string{}, InvalidAriaLabels: []string{}}
}

// NewKeyboardNavigationResult returns a result with empty, non-nil lists.
func NewKeyboardNavigationResult() KeyboardNavigationResult {
	return KeyboardNavigationResult{TabOrder: []string{}, TrapIssues: []string{}}
}
