package platform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Viewport is a browser viewport size in CSS pixels.
type Viewport struct {
	Width, Height int
}

// DefaultViewport matches a common desktop window.
var DefaultViewport = Viewport{Width: 1280, Height: 720}

// ParseViewport parses a "WIDTHxHEIGHT" string such as "1280x720".
func ParseViewport(s string) (Viewport, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return Viewport{}, fmt.Errorf("invalid viewport %q: expected WIDTHxHEIGHT", s)
	}
	vals := make([]int, 2)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return Viewport{}, fmt.Errorf("invalid viewport %q: %w", s, err)
		}
		if v <= 0 {
			return Viewport{}, fmt.Errorf("invalid viewport %q: dimensions must be positive", s)
		}
		vals[i] = v
	}
	return Viewport{Width: vals[0], Height: vals[1]}, nil
}

// String formats the viewport as "WIDTHxHEIGHT".
func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// OpenOptions controls how a backend opens a page.
type OpenOptions struct {
	Target            string        // URL or local file path
	Headless          bool          // Run the browser without a window
	Viewport          Viewport      // Zero value means DefaultViewport
	NavigationTimeout time.Duration // Zero means 30s
	DebuggerURL       string        // Connect to an existing browser instead of launching one
	ChromeBin         string        // Browser binary to launch (empty = auto-detect/download)
	Logger            *zap.Logger   // nil means no logging
}

// GetViewport returns the viewport, falling back to DefaultViewport.
func (o OpenOptions) GetViewport() Viewport {
	if o.Viewport.Width <= 0 || o.Viewport.Height <= 0 {
		return DefaultViewport
	}
	return o.Viewport
}

// GetNavigationTimeout returns the navigation timeout, defaulting to 30s.
func (o OpenOptions) GetNavigationTimeout() time.Duration {
	if o.NavigationTimeout <= 0 {
		return 30 * time.Second
	}
	return o.NavigationTimeout
}

// GetLogger returns the logger or a no-op logger.
func (o OpenOptions) GetLogger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}

// IsURL reports whether target looks like an http(s) or file URL rather than
// a local path.
func IsURL(target string) bool {
	t := strings.ToLower(target)
	return strings.HasPrefix(t, "http://") || strings.HasPrefix(t, "https://") || strings.HasPrefix(t, "file://")
}

// KeyCombo is a parsed key press with modifiers, e.g. "shift+tab".
type KeyCombo struct {
	Key   string // Lowercase key name
	Shift bool
	Ctrl  bool
	Alt   bool
	Meta  bool
}

// knownKeys are the non-modifier key names every backend understands.
var knownKeys = map[string]bool{
	"tab": true, "enter": true, "return": true, "escape": true, "esc": true,
	"space": true, "backspace": true, "delete": true,
	"up": true, "down": true, "left": true, "right": true,
	"home": true, "end": true, "pageup": true, "pagedown": true,
}

// ParseKeyCombo parses a "+"-separated key combination such as "Tab",
// "shift+tab", or "ctrl+enter".
func ParseKeyCombo(s string) (KeyCombo, error) {
	var combo KeyCombo
	for _, k := range strings.Split(s, "+") {
		k = strings.ToLower(strings.TrimSpace(k))
		switch k {
		case "shift":
			combo.Shift = true
		case "ctrl", "control":
			combo.Ctrl = true
		case "alt", "opt", "option":
			combo.Alt = true
		case "cmd", "command", "meta":
			combo.Meta = true
		default:
			if !knownKeys[k] {
				return KeyCombo{}, fmt.Errorf("unknown key: %q", k)
			}
			if combo.Key != "" {
				return KeyCombo{}, fmt.Errorf("more than one key in combo %q", s)
			}
			combo.Key = k
		}
	}
	if combo.Key == "" {
		return KeyCombo{}, fmt.Errorf("no key specified in combo %q, only modifiers", s)
	}
	return combo, nil
}
