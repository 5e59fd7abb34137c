package platform

import (
	"testing"
	"time"
)

func TestParseViewport(t *testing.T) {
	tests := []struct {
		input   string
		want    Viewport
		wantErr bool
	}{
		{"1280x720", Viewport{1280, 720}, false},
		{" 375X812 ", Viewport{375, 812}, false},
		{"1280", Viewport{}, true},
		{"axb", Viewport{}, true},
		{"0x720", Viewport{}, true},
		{"1x2x3", Viewport{}, true},
	}
	for _, tt := range tests {
		got, err := ParseViewport(tt.input)
		if tt.wantErr {
			if err == nil {
				t.Errorf("ParseViewport(%q): expected error", tt.input)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseViewport(%q): unexpected error: %v", tt.input, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseViewport(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestViewportString(t *testing.T) {
	if got := (Viewport{800, 600}).String(); got != "800x600" {
		t.Errorf("got %q", got)
	}
}

func TestOpenOptionsDefaults(t *testing.T) {
	var o OpenOptions
	if o.GetViewport() != DefaultViewport {
		t.Errorf("viewport: got %v", o.GetViewport())
	}
	if o.GetNavigationTimeout() != 30*time.Second {
		t.Errorf("timeout: got %v", o.GetNavigationTimeout())
	}
	if o.GetLogger() == nil {
		t.Error("logger should never be nil")
	}
}

func TestIsURL(t *testing.T) {
	for _, s := range []string{"http://x", "HTTPS://x", "file:///tmp/a.html"} {
		if !IsURL(s) {
			t.Errorf("%q should be a URL", s)
		}
	}
	for _, s := range []string{"index.html", "/tmp/a.html", "ftp.html"} {
		if IsURL(s) {
			t.Errorf("%q should not be a URL", s)
		}
	}
}

func TestParseKeyCombo(t *testing.T) {
	c, err := ParseKeyCombo("Tab")
	if err != nil {
		t.Fatal(err)
	}
	if c.Key != "tab" || c.Shift {
		t.Errorf("got %+v", c)
	}

	c, err = ParseKeyCombo("shift+tab")
	if err != nil {
		t.Fatal(err)
	}
	if c.Key != "tab" || !c.Shift {
		t.Errorf("got %+v", c)
	}

	for _, bad := range []string{"shift", "tab+enter", "f13", ""} {
		if _, err := ParseKeyCombo(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
