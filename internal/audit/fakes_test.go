package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/hopngo/a11y-audit/internal/platform/static"
)

// fakeDOM serves a fixed snapshot. failOn lists 1-based call numbers that
// return err instead.
type fakeDOM struct {
	mu     sync.Mutex
	snap   *model.Snapshot
	err    error
	failOn map[int]bool
	calls  int
}

func (f *fakeDOM) Snapshot(ctx context.Context) (*model.Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil && (f.failOn == nil || f.failOn[f.calls]) {
		return nil, f.err
	}
	return f.snap, nil
}

// fakeKeyboard reports focus as a function of the number of Tab presses.
type fakeKeyboard struct {
	presses int
	focus   func(presses int) *model.Element
}

func (f *fakeKeyboard) Press(ctx context.Context, key string) error {
	if key != "Tab" {
		return fmt.Errorf("unexpected key %q", key)
	}
	f.presses++
	return nil
}

func (f *fakeKeyboard) ActiveElement(ctx context.Context) (*model.Element, error) {
	return f.focus(f.presses), nil
}

// distinctFocus never repeats: press n focuses button#b{n}.
func distinctFocus(n int) *model.Element {
	return &model.Element{Tag: "button", ID: fmt.Sprintf("b%d", n)}
}

// sequenceFocus replays descs, repeating the last one forever. "" means
// nothing focused.
func sequenceFocus(descs ...string) func(int) *model.Element {
	return func(n int) *model.Element {
		i := n - 1
		if i >= len(descs) {
			i = len(descs) - 1
		}
		if descs[i] == "" {
			return nil
		}
		tag, id, _ := strings.Cut(descs[i], "#")
		return &model.Element{Tag: tag, ID: id}
	}
}

// fakeScripts answers the rule engine's scripts by content.
type fakeScripts struct {
	violations []model.RuleViolation
	runs       int
}

func (f *fakeScripts) AddScript(ctx context.Context, url, content string) error { return nil }

func (f *fakeScripts) Evaluate(ctx context.Context, js string, args ...interface{}) ([]byte, error) {
	switch {
	case strings.Contains(js, "axe.run("):
		f.runs++
		if f.violations == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(f.violations)
	case strings.Contains(js, "typeof window.axe"):
		return []byte("true"), nil
	default:
		return []byte("true"), nil
	}
}

// htmlProvider parses src with the static backend.
func htmlProvider(t *testing.T, src string) *platform.Provider {
	t.Helper()
	page, err := static.NewPage([]byte(src), "test://page")
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return &platform.Provider{Backend: static.BackendName, Target: "test://page", DOM: page, Keyboard: page}
}

// htmlSnapshot parses src into a snapshot.
func htmlSnapshot(t *testing.T, src string) *model.Snapshot {
	t.Helper()
	snap, err := htmlProvider(t, src).DOM.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	return snap
}
