package static

import (
	"context"
	"sync"

	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
)

// focusWalker simulates sequential focus navigation over a fixed snapshot.
// Tab advances and Shift+Tab retreats through model.SequentialFocusOrder.
// Like a browser, focus leaves the document after the last element (and
// before the first) and then wraps around. Other keys leave focus unchanged.
type focusWalker struct {
	mu      sync.Mutex
	order   []model.Element
	current int // -1 when nothing in the document has focus
}

func newFocusWalker(snap *model.Snapshot) *focusWalker {
	return &focusWalker{order: model.SequentialFocusOrder(snap), current: -1}
}

func (w *focusWalker) Press(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	combo, err := platform.ParseKeyCombo(key)
	if err != nil {
		return err
	}
	if combo.Key != "tab" || combo.Ctrl || combo.Alt || combo.Meta {
		return nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	n := len(w.order)
	switch {
	case n == 0:
	case combo.Shift && w.current < 0:
		w.current = n - 1
	case combo.Shift:
		w.current--
	case w.current == n-1:
		w.current = -1
	default:
		w.current++
	}
	return nil
}

func (w *focusWalker) ActiveElement(ctx context.Context) (*model.Element, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.current < 0 || w.current >= len(w.order) {
		return nil, nil
	}
	el := w.order[w.current]
	return &el, nil
}
