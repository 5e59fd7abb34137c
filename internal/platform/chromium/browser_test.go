package chromium

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hopngo/a11y-audit/internal/platform"
)

func TestTargetURL(t *testing.T) {
	for _, url := range []string{"https://example.com", "http://localhost:8080/a", "file:///tmp/x.html"} {
		got, err := targetURL(url)
		if err != nil {
			t.Fatalf("targetURL(%q): %v", url, err)
		}
		if got != url {
			t.Errorf("targetURL(%q) = %q, want unchanged", url, got)
		}
	}

	got, err := targetURL("testdata/page.html")
	if err != nil {
		t.Fatalf("targetURL: %v", err)
	}
	abs, _ := filepath.Abs("testdata/page.html")
	if !strings.HasPrefix(got, "file://") || !strings.HasSuffix(got, filepath.ToSlash(abs)) {
		t.Errorf("targetURL(relative) = %q, want file:// URL for %s", got, abs)
	}
}

func TestKeyMapCoversKnownKeys(t *testing.T) {
	for _, name := range []string{"tab", "enter", "escape", "space", "up", "pagedown"} {
		combo, err := platform.ParseKeyCombo(name)
		if err != nil {
			t.Fatalf("ParseKeyCombo(%q): %v", name, err)
		}
		if _, ok := keyMap[combo.Key]; !ok {
			t.Errorf("keyMap missing %q", combo.Key)
		}
	}
}

func TestRegistered(t *testing.T) {
	found := false
	for _, name := range platform.Backends() {
		if name == BackendName {
			found = true
		}
	}
	if !found {
		t.Errorf("backend %q not registered, have %v", BackendName, platform.Backends())
	}
}
