package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	_ "github.com/hopngo/a11y-audit/internal/platform/chromium"
	_ "github.com/hopngo/a11y-audit/internal/platform/static"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a11y.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
	if cfg.Audit.MaxTabSteps != 50 {
		t.Errorf("MaxTabSteps = %d, want 50", cfg.Audit.MaxTabSteps)
	}
	if len(cfg.RuleConfig().EnabledRules()) != 17 {
		t.Errorf("expected 17 default rules")
	}
}

func TestResolve_MergesDefaults(t *testing.T) {
	path := writeConfig(t, `
backend: static
browser:
  headless: false
  navigation_timeout: 5s
audit:
  max_tab_steps: 20
  contrast_mode: ratio
  checks: [images, forms]
rules:
  enabled: [image-alt, label]
`)
	cfg, used, err := Resolve(path)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if used != path {
		t.Errorf("used = %q, want %q", used, path)
	}
	if cfg.Backend != "static" || cfg.HeadlessOrDefault() {
		t.Errorf("backend/headless = %q/%v", cfg.Backend, cfg.HeadlessOrDefault())
	}
	if cfg.Browser.NavigationTimeout != 5*time.Second {
		t.Errorf("NavigationTimeout = %v", cfg.Browser.NavigationTimeout)
	}
	if cfg.Browser.Viewport != "1280x720" {
		t.Errorf("Viewport = %q, want default", cfg.Browser.Viewport)
	}
	if cfg.Audit.MaxTabSteps != 20 || cfg.Audit.ContrastMode != "ratio" || cfg.Audit.Concurrency != 4 {
		t.Errorf("Audit = %+v", cfg.Audit)
	}
	if got := cfg.RuleConfig().EnabledRules(); strings.Join(got, ",") != "image-alt,label" {
		t.Errorf("enabled rules = %v", got)
	}
	if len(cfg.Rules.Tags) != 3 {
		t.Errorf("Tags = %v, want defaults", cfg.Rules.Tags)
	}
}

func TestResolve_NoDefaultFile(t *testing.T) {
	dir := t.TempDir()
	wd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	defer os.Chdir(wd)

	cfg, used, err := Resolve("")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if used != "" {
		t.Errorf("used = %q, want none", used)
	}
	if cfg.Backend != "chromium" {
		t.Errorf("Backend = %q", cfg.Backend)
	}
}

func TestResolve_MissingExplicitFile(t *testing.T) {
	if _, _, err := Resolve(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config")
	}
}

func TestResolve_Invalid(t *testing.T) {
	cases := map[string]string{
		"backend":  "backend: firefox\n",
		"viewport": "browser:\n  viewport: wide\n",
		"contrast": "audit:\n  contrast_mode: fuzzy\n",
		"checks":   "audit:\n  checks: [images, spelling]\n",
		"steps":    "audit:\n  max_tab_steps: -1\n",
		"yaml":     "audit: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := Resolve(writeConfig(t, body)); err == nil {
				t.Errorf("expected error for %s", name)
			}
		})
	}
}
