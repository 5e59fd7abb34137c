package audit

import (
	"context"
	"fmt"

	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"go.uber.org/zap"
)

// nullDescriptor stands for "nothing focused".
const nullDescriptor = "null"

// TestKeyboardNavigation counts focusable elements and walks the page with
// Tab. The walk records each focused element's descriptor and stops at the
// first repeated descriptor (a focus trap) or after MaxTabSteps entries.
func (in *Inspector) TestKeyboardNavigation(ctx context.Context) (model.KeyboardNavigationResult, error) {
	if in.provider == nil || in.provider.Keyboard == nil {
		return model.KeyboardNavigationResult{}, fmt.Errorf("keyboard navigation: %w", platform.ErrNotAvailable)
	}
	snap, err := in.snapshot(ctx)
	if err != nil {
		return model.KeyboardNavigationResult{}, err
	}

	result := model.NewKeyboardNavigationResult()
	result.FocusableElements = len(model.FilterFocusable(snap.Elements))

	prev, err := in.tab(ctx)
	if err != nil {
		return model.KeyboardNavigationResult{}, err
	}
	result.TabOrder = append(result.TabOrder, prev)

	for len(result.TabOrder) < in.maxTabSteps {
		current, err := in.tab(ctx)
		if err != nil {
			return model.KeyboardNavigationResult{}, err
		}
		if current == prev {
			result.TrapIssues = append(result.TrapIssues, fmt.Sprintf("Focus trap detected at: %s", current))
			break
		}
		result.TabOrder = append(result.TabOrder, current)
		prev = current
	}

	in.logger.Debug("keyboard walk complete",
		zap.Int("focusable", result.FocusableElements),
		zap.Int("steps", len(result.TabOrder)),
		zap.Int("traps", len(result.TrapIssues)))
	return result, nil
}

// tab presses Tab once and returns the descriptor of the focused element.
func (in *Inspector) tab(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if err := in.provider.Keyboard.Press(ctx, "Tab"); err != nil {
		return "", fmt.Errorf("press Tab: %w", err)
	}
	el, err := in.provider.Keyboard.ActiveElement(ctx)
	if err != nil {
		return "", fmt.Errorf("read focused element: %w", err)
	}
	if el == nil {
		return nullDescriptor, nil
	}
	return el.Descriptor(), nil
}
