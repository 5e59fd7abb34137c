package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/hopngo/a11y-audit/internal/audit"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/hopngo/a11y-audit/internal/rules"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when --config is not given and the file exists.
const DefaultPath = ".a11y-audit.yaml"

// Config is the optional YAML configuration. Command-line flags override it.
type Config struct {
	Backend string        `yaml:"backend"`
	Browser BrowserConfig `yaml:"browser"`
	Audit   AuditConfig   `yaml:"audit"`
	Rules   RulesConfig   `yaml:"rules"`
	Logging LoggingConfig `yaml:"logging"`
}

type BrowserConfig struct {
	Headless          *bool         `yaml:"headless"`
	Viewport          string        `yaml:"viewport"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout"`
	DebuggerURL       string        `yaml:"debugger_url"`
	ChromeBin         string        `yaml:"chrome_bin"`
}

type AuditConfig struct {
	MaxTabSteps   int      `yaml:"max_tab_steps"`
	ContrastMode  string   `yaml:"contrast_mode"`
	IsolateChecks bool     `yaml:"isolate_checks"`
	Concurrency   int      `yaml:"concurrency"`
	Checks        []string `yaml:"checks"`

	// SkipUnlabelableTypes leaves hidden and button-like inputs out of the
	// unlabeled-input check.
	SkipUnlabelableTypes bool `yaml:"skip_unlabelable_types"`
}

type RulesConfig struct {
	Source  string   `yaml:"source"`
	Tags    []string `yaml:"tags"`
	Enabled []string `yaml:"enabled"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the compiled-in defaults.
func Default() Config {
	headless := true
	return Config{
		Backend: "chromium",
		Browser: BrowserConfig{
			Headless:          &headless,
			Viewport:          platform.DefaultViewport.String(),
			NavigationTimeout: 30 * time.Second,
		},
		Audit: AuditConfig{
			MaxTabSteps:  audit.DefaultMaxTabSteps,
			ContrastMode: string(audit.ContrastIdentical),
			Concurrency:  audit.DefaultConcurrency,
			Checks:       []string{"all"},
		},
		Rules: RulesConfig{
			Source:  rules.DefaultSource,
			Tags:    append([]string(nil), rules.DefaultTags...),
			Enabled: append([]string(nil), rules.DefaultRules...),
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// Load reads a config file without applying defaults.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve loads path (when non-empty), fills unset fields from Default, and
// validates. A missing file at DefaultPath is not an error. It returns the
// config and the path actually read ("" when none).
func Resolve(path string) (Config, string, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}

	loaded, err := Load(path)
	switch {
	case err == nil:
		mergeConfigDefaults(&loaded, &cfg)
		cfg = loaded
	case !explicit && errors.Is(err, fs.ErrNotExist):
		path = ""
	default:
		return Config{}, "", err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, "", err
	}
	return cfg, path, nil
}

// Validate checks the resolved configuration for consistency.
func (c *Config) Validate() error {
	found := false
	for _, b := range platform.Backends() {
		if b == c.Backend {
			found = true
		}
	}
	if !found && len(platform.Backends()) > 0 {
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := platform.ParseViewport(c.Browser.Viewport); err != nil {
		return err
	}
	if c.Browser.NavigationTimeout < 0 {
		return fmt.Errorf("navigation_timeout must not be negative")
	}
	if c.Audit.MaxTabSteps < 1 {
		return fmt.Errorf("max_tab_steps must be at least 1, got %d", c.Audit.MaxTabSteps)
	}
	if c.Audit.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Audit.Concurrency)
	}
	if _, err := audit.ParseContrastMode(c.Audit.ContrastMode); err != nil {
		return err
	}
	if _, err := model.ExpandChecks(c.Audit.Checks); err != nil {
		return err
	}
	return nil
}

// HeadlessOrDefault reports the headless setting, true when unset.
func (c *Config) HeadlessOrDefault() bool {
	return c.Browser.Headless == nil || *c.Browser.Headless
}

// RuleConfig converts the rules section for the rule engine.
func (c *Config) RuleConfig() rules.Config {
	rc := rules.Config{
		Source: c.Rules.Source,
		Tags:   append([]string(nil), c.Rules.Tags...),
		Rules:  make(map[string]bool, len(c.Rules.Enabled)),
	}
	for _, id := range c.Rules.Enabled {
		rc.Rules[id] = true
	}
	return rc
}

func mergeConfigDefaults(cfg *Config, defaults *Config) {
	if cfg.Backend == "" {
		cfg.Backend = defaults.Backend
	}
	if cfg.Browser.Headless == nil {
		cfg.Browser.Headless = defaults.Browser.Headless
	}
	if cfg.Browser.Viewport == "" {
		cfg.Browser.Viewport = defaults.Browser.Viewport
	}
	if cfg.Browser.NavigationTimeout == 0 {
		cfg.Browser.NavigationTimeout = defaults.Browser.NavigationTimeout
	}
	if cfg.Audit.MaxTabSteps == 0 {
		cfg.Audit.MaxTabSteps = defaults.Audit.MaxTabSteps
	}
	if cfg.Audit.ContrastMode == "" {
		cfg.Audit.ContrastMode = defaults.Audit.ContrastMode
	}
	if cfg.Audit.Concurrency == 0 {
		cfg.Audit.Concurrency = defaults.Audit.Concurrency
	}
	if len(cfg.Audit.Checks) == 0 {
		cfg.Audit.Checks = defaults.Audit.Checks
	}
	if cfg.Rules.Source == "" {
		cfg.Rules.Source = defaults.Rules.Source
	}
	if len(cfg.Rules.Tags) == 0 {
		cfg.Rules.Tags = defaults.Rules.Tags
	}
	if len(cfg.Rules.Enabled) == 0 {
		cfg.Rules.Enabled = defaults.Rules.Enabled
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
}
