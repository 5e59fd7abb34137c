package platform

import (
	"context"

	"github.com/hopngo/a11y-audit/internal/model"
)

// DOMReader captures the rendered DOM of a page.
type DOMReader interface {
	// Snapshot returns every element of the current document in document
	// order, with computed style.
	Snapshot(ctx context.Context) (*model.Snapshot, error)
}

// Keyboard simulates keyboard input and reports focus.
type Keyboard interface {
	// Press dispatches one named key ("Tab", "Shift+Tab", "Enter", ...).
	Press(ctx context.Context, key string) error

	// ActiveElement returns the focused element, or nil when focus rests on
	// the document body or nowhere.
	ActiveElement(ctx context.Context) (*model.Element, error)
}

// ScriptRunner evaluates JavaScript in the page context.
type ScriptRunner interface {
	// AddScript loads a script into the page, either from url or, when url
	// is empty, from inline content.
	AddScript(ctx context.Context, url, content string) error

	// Evaluate runs js (a function expression) with args and returns its
	// JSON-encoded result. Promises are awaited.
	Evaluate(ctx context.Context, js string, args ...interface{}) ([]byte, error)
}

// Screenshotter captures the page viewport.
type Screenshotter interface {
	// Screenshot returns a PNG of the current viewport.
	Screenshot(ctx context.Context) ([]byte, error)
}
