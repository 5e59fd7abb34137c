package chromium

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-rod/rod/lib/input"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
)

var keyMap = map[string]input.Key{
	"tab":       input.Tab,
	"enter":     input.Enter,
	"return":    input.Enter,
	"escape":    input.Escape,
	"esc":       input.Escape,
	"space":     input.Space,
	"backspace": input.Backspace,
	"delete":    input.Delete,
	"up":        input.ArrowUp,
	"down":      input.ArrowDown,
	"left":      input.ArrowLeft,
	"right":     input.ArrowRight,
	"home":      input.Home,
	"end":       input.End,
	"pageup":    input.PageUp,
	"pagedown":  input.PageDown,
}

// Press dispatches a key combination such as "Tab" or "Shift+Tab".
func (p *Page) Press(ctx context.Context, key string) error {
	combo, err := platform.ParseKeyCombo(key)
	if err != nil {
		return err
	}
	k, ok := keyMap[combo.Key]
	if !ok {
		return fmt.Errorf("unsupported key: %q", combo.Key)
	}

	var mods []input.Key
	if combo.Shift {
		mods = append(mods, input.ShiftLeft)
	}
	if combo.Ctrl {
		mods = append(mods, input.ControlLeft)
	}
	if combo.Alt {
		mods = append(mods, input.AltLeft)
	}
	if combo.Meta {
		mods = append(mods, input.MetaLeft)
	}

	page := p.withContext(ctx)
	if len(mods) == 0 {
		if err := page.Keyboard.Type(k); err != nil {
			return fmt.Errorf("press %s: %w", key, err)
		}
		return nil
	}
	if err := page.KeyActions().Press(mods...).Type(k).Do(); err != nil {
		return fmt.Errorf("press %s: %w", key, err)
	}
	return nil
}

// ActiveElement returns the focused element, or nil when the body has focus.
func (p *Page) ActiveElement(ctx context.Context) (*model.Element, error) {
	raw, err := p.Evaluate(ctx, activeElementJS)
	if err != nil {
		return nil, fmt.Errorf("active element: %w", err)
	}
	if string(raw) == "null" || len(raw) == 0 {
		return nil, nil
	}
	var el model.Element
	if err := json.Unmarshal(raw, &el); err != nil {
		return nil, fmt.Errorf("decode active element: %w", err)
	}
	return &el, nil
}
