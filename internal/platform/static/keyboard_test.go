package static

import (
	"context"
	"testing"
)

const tabPage = `<html><body>
<a id="first" href="/a">A</a>
<button id="late" tabindex="2">Late</button>
<button id="early" tabindex="1">Early</button>
<input id="off" tabindex="-1">
<button id="gone" disabled>Gone</button>
<span>plain</span>
</body></html>`

func activeID(t *testing.T, p *Page) string {
	t.Helper()
	el, err := p.ActiveElement(context.Background())
	if err != nil {
		t.Fatalf("ActiveElement: %v", err)
	}
	if el == nil {
		return ""
	}
	return el.ID
}

func TestFocusWalker_TabOrderLeavesDocumentThenWraps(t *testing.T) {
	p := mustParse(t, tabPage)
	ctx := context.Background()

	if id := activeID(t, p); id != "" {
		t.Fatalf("initial focus = %q, want none", id)
	}

	want := []string{"early", "late", "first", "", "early"}
	for i, w := range want {
		if err := p.Press(ctx, "Tab"); err != nil {
			t.Fatalf("Press: %v", err)
		}
		if got := activeID(t, p); got != w {
			t.Errorf("tab %d: focus = %q, want %q", i+1, got, w)
		}
	}
}

func TestFocusWalker_ShiftTab(t *testing.T) {
	p := mustParse(t, tabPage)
	ctx := context.Background()

	if err := p.Press(ctx, "shift+tab"); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if got := activeID(t, p); got != "first" {
		t.Errorf("shift+tab from nothing = %q, want last element %q", got, "first")
	}
	if err := p.Press(ctx, "Shift+Tab"); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if got := activeID(t, p); got != "late" {
		t.Errorf("shift+tab = %q, want %q", got, "late")
	}
	_ = p.Press(ctx, "Shift+Tab")
	_ = p.Press(ctx, "Shift+Tab")
	if got := activeID(t, p); got != "" {
		t.Errorf("shift+tab past the first element = %q, want none", got)
	}
}

func TestFocusWalker_OtherKeysDoNothing(t *testing.T) {
	p := mustParse(t, tabPage)
	ctx := context.Background()
	_ = p.Press(ctx, "Tab")
	if err := p.Press(ctx, "Enter"); err != nil {
		t.Fatalf("Press(Enter): %v", err)
	}
	if got := activeID(t, p); got != "early" {
		t.Errorf("focus after Enter = %q, want unchanged %q", got, "early")
	}
	if err := p.Press(ctx, "F13"); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestFocusWalker_NoFocusable(t *testing.T) {
	p := mustParse(t, `<html><body><p>text</p></body></html>`)
	if err := p.Press(context.Background(), "Tab"); err != nil {
		t.Fatalf("Press: %v", err)
	}
	if id := activeID(t, p); id != "" {
		t.Errorf("focus = %q, want none", id)
	}
}
