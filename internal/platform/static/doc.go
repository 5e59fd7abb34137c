// Package static is a browserless backend. It fetches a page over HTTP (or
// reads it from disk), parses it with goquery, and approximates computed style
// from inline styles and the hidden attribute. Keyboard focus is simulated by
// walking the sequential focus order.
//
// It registers itself as the "static" backend. Scripts and screenshots are not
// available.
package static

import "github.com/hopngo/a11y-audit/internal/platform"

// BackendName is the name the backend registers under.
const BackendName = "static"

func init() {
	platform.Register(BackendName, Open)
}
