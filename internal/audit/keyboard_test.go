package audit

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
)

func fakeProvider(kb *fakeKeyboard) *platform.Provider {
	return &platform.Provider{
		Target:   "test://fake",
		DOM:      &fakeDOM{snap: &model.Snapshot{}},
		Keyboard: kb,
	}
}

func TestKeyboardNavigation_CeilingWithoutTrap(t *testing.T) {
	kb := &fakeKeyboard{focus: distinctFocus}
	got, err := New(fakeProvider(kb)).TestKeyboardNavigation(context.Background())
	if err != nil {
		t.Fatalf("TestKeyboardNavigation: %v", err)
	}
	if len(got.TabOrder) != DefaultMaxTabSteps {
		t.Errorf("len(TabOrder) = %d, want %d", len(got.TabOrder), DefaultMaxTabSteps)
	}
	if len(got.TrapIssues) != 0 {
		t.Errorf("TrapIssues = %v, want none", got.TrapIssues)
	}
	if kb.presses != DefaultMaxTabSteps {
		t.Errorf("pressed Tab %d times, want %d", kb.presses, DefaultMaxTabSteps)
	}
}

func TestKeyboardNavigation_TrapStopsWalk(t *testing.T) {
	kb := &fakeKeyboard{focus: sequenceFocus("a#home", "button#menu", "button#menu", "a#next")}
	got, err := New(fakeProvider(kb)).TestKeyboardNavigation(context.Background())
	if err != nil {
		t.Fatalf("TestKeyboardNavigation: %v", err)
	}
	if !reflect.DeepEqual(got.TabOrder, []string{"a#home", "button#menu"}) {
		t.Errorf("TabOrder = %v", got.TabOrder)
	}
	if !reflect.DeepEqual(got.TrapIssues, []string{"Focus trap detected at: button#menu"}) {
		t.Errorf("TrapIssues = %v", got.TrapIssues)
	}
	if kb.presses != 3 {
		t.Errorf("pressed Tab %d times, want 3 (no presses after the trap)", kb.presses)
	}
}

func TestKeyboardNavigation_NothingFocusedIsNull(t *testing.T) {
	kb := &fakeKeyboard{focus: sequenceFocus("")}
	got, err := New(fakeProvider(kb)).TestKeyboardNavigation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got.TabOrder, []string{"null"}) {
		t.Errorf("TabOrder = %v, want [null]", got.TabOrder)
	}
	if !reflect.DeepEqual(got.TrapIssues, []string{"Focus trap detected at: null"}) {
		t.Errorf("TrapIssues = %v", got.TrapIssues)
	}
}

func TestKeyboardNavigation_CustomCeiling(t *testing.T) {
	kb := &fakeKeyboard{focus: distinctFocus}
	got, err := New(fakeProvider(kb), WithMaxTabSteps(5)).TestKeyboardNavigation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(got.TabOrder) != 5 || kb.presses != 5 {
		t.Errorf("len(TabOrder) = %d presses = %d, want 5 and 5", len(got.TabOrder), kb.presses)
	}
}

func TestKeyboardNavigation_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	kb := &fakeKeyboard{focus: func(n int) *model.Element {
		if n == 3 {
			cancel()
		}
		return distinctFocus(n)
	}}
	_, err := New(fakeProvider(kb)).TestKeyboardNavigation(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if kb.presses != 3 {
		t.Errorf("pressed Tab %d times after cancel, want 3", kb.presses)
	}
}

func TestKeyboardNavigation_NoKeyboard(t *testing.T) {
	p := &platform.Provider{DOM: &fakeDOM{snap: &model.Snapshot{}}}
	if _, err := New(p).TestKeyboardNavigation(context.Background()); !errors.Is(err, platform.ErrNotAvailable) {
		t.Errorf("err = %v, want ErrNotAvailable", err)
	}
}

func TestKeyboardNavigation_StaticPage(t *testing.T) {
	src := `<body>
<a id="home" href="/">Home</a>
<button id="late" tabindex="2">Late</button>
<button id="early" tabindex="1">Early</button>
<button id="off" disabled>Off</button>
<input id="gone" style="display: none">
<span tabindex="-1">skip</span>
<details><summary>More</summary></details>
</body>`
	got, err := New(htmlProvider(t, src), WithMaxTabSteps(6)).TestKeyboardNavigation(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if got.FocusableElements != 4 {
		t.Errorf("FocusableElements = %d, want 4", got.FocusableElements)
	}
	want := []string{"button#early", "button#late", "a#home", "details", "null", "button#early"}
	if !reflect.DeepEqual(got.TabOrder, want) {
		t.Errorf("TabOrder = %v, want %v", got.TabOrder, want)
	}
	if len(got.TrapIssues) != 0 {
		t.Errorf("TrapIssues = %v", got.TrapIssues)
	}
}
