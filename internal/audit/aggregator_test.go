package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/hopngo/a11y-audit/internal/model"
	"github.com/hopngo/a11y-audit/internal/platform"
	"github.com/hopngo/a11y-audit/internal/rules"
)

const checkoutPage = `<html lang="en"><head><title>Checkout</title></head><body>
<img src="card.png">
<form>
  <input type="radio" name="pay" aria-label="Card"><input type="radio" name="pay" aria-label="Cash">
  <input id="coupon">
</form>
<button id="pay">Pay</button>
</body></html>`

func TestRunAudit_CleanRulesMergesLocalChecks(t *testing.T) {
	p := htmlProvider(t, checkoutPage)
	scripts := &fakeScripts{}
	p.Scripts = scripts

	report, err := New(p).RunAudit(context.Background())
	if err != nil {
		t.Fatalf("RunAudit: %v", err)
	}
	if _, err := uuid.Parse(report.ID); err != nil {
		t.Errorf("report ID %q is not a UUID: %v", report.ID, err)
	}
	if report.URL != "test://page" || report.TS == 0 {
		t.Errorf("report header = %q %d", report.URL, report.TS)
	}
	if scripts.runs != 1 {
		t.Errorf("rule engine ran %d times, want 1", scripts.runs)
	}
	if len(report.Images.MissingAlt) != 1 || report.Images.MissingAlt[0] != "card.png" {
		t.Errorf("Images = %+v", report.Images)
	}
	if len(report.Forms.MissingFieldsets) != 1 || len(report.Forms.UnlabeledInputs) != 1 {
		t.Errorf("Forms = %+v", report.Forms)
	}
	if len(report.Keyboard.TabOrder) == 0 {
		t.Error("keyboard walk did not run")
	}
	if report.Errors != nil {
		t.Errorf("Errors = %v, want none", report.Errors)
	}
}

func TestRunAudit_RuleViolationsAbortByDefault(t *testing.T) {
	dom := &fakeDOM{snap: &model.Snapshot{}}
	kb := &fakeKeyboard{focus: distinctFocus}
	scripts := &fakeScripts{violations: []model.RuleViolation{
		{ID: "html-has-lang", Impact: "serious", Nodes: []model.RuleNode{{Target: []string{"html"}}}},
	}}
	p := &platform.Provider{Target: "test://fake", DOM: dom, Keyboard: kb, Scripts: scripts}

	report, err := New(p).RunAudit(context.Background())
	var verr *rules.ViolationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want *rules.ViolationError", err)
	}
	if !errors.Is(err, rules.ErrViolations) {
		t.Error("error should wrap rules.ErrViolations")
	}
	if len(report.Rules) != 1 || report.Rules[0].ID != "html-has-lang" {
		t.Errorf("report.Rules = %+v", report.Rules)
	}
	if dom.calls != 0 || kb.presses != 0 {
		t.Errorf("local checks ran after rule failure: dom=%d presses=%d", dom.calls, kb.presses)
	}
}

func TestRunAudit_RuleInitFailureIsReturned(t *testing.T) {
	p := htmlProvider(t, checkoutPage) // no script runner
	_, err := New(p).RunAudit(context.Background())
	if !errors.Is(err, platform.ErrNotAvailable) {
		t.Errorf("err = %v, want ErrNotAvailable", err)
	}

	// Isolation does not cover initialization.
	_, err = New(p, WithIsolation(true)).RunAudit(context.Background())
	if !errors.Is(err, platform.ErrNotAvailable) {
		t.Errorf("isolated: err = %v, want ErrNotAvailable", err)
	}
}

func TestRunAudit_FirstFailingCheckAborts(t *testing.T) {
	boom := errors.New("page crashed")
	dom := &fakeDOM{snap: &model.Snapshot{}, err: boom, failOn: map[int]bool{2: true}}
	kb := &fakeKeyboard{focus: distinctFocus}
	p := &platform.Provider{Target: "test://fake", DOM: dom, Keyboard: kb}

	_, err := New(p, WithRules(false)).RunAudit(context.Background())
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want wrapped %v", err, boom)
	}
	if dom.calls != 2 {
		t.Errorf("DOM read %d times, want 2 (images ok, forms failed)", dom.calls)
	}
	if kb.presses != 0 {
		t.Error("keyboard walk ran after an earlier check failed")
	}
}

func TestRunAudit_IsolationRecordsErrors(t *testing.T) {
	boom := errors.New("page crashed")
	dom := &fakeDOM{snap: &model.Snapshot{}, err: boom, failOn: map[int]bool{2: true}}
	kb := &fakeKeyboard{focus: distinctFocus}
	scripts := &fakeScripts{violations: []model.RuleViolation{{ID: "region"}}}
	p := &platform.Provider{Target: "test://fake", DOM: dom, Keyboard: kb, Scripts: scripts}

	report, err := New(p, WithIsolation(true), WithMaxTabSteps(3)).RunAudit(context.Background())
	if err != nil {
		t.Fatalf("RunAudit: %v", err)
	}
	if len(report.Rules) != 1 {
		t.Errorf("rule violations should be collected, got %+v", report.Rules)
	}
	if len(report.Errors) != 1 || report.Errors[model.CheckForms] == "" {
		t.Errorf("Errors = %v, want only forms", report.Errors)
	}
	if len(report.Keyboard.TabOrder) != 3 {
		t.Errorf("keyboard walk should still run, TabOrder = %v", report.Keyboard.TabOrder)
	}
	if report.Forms.UnlabeledInputs == nil {
		t.Error("failed check should leave an empty, non-nil result")
	}
}

func TestRunAudit_WithChecks(t *testing.T) {
	dom := &fakeDOM{snap: &model.Snapshot{}}
	kb := &fakeKeyboard{focus: distinctFocus}
	p := &platform.Provider{Target: "test://fake", DOM: dom, Keyboard: kb}

	_, err := New(p, WithRules(false), WithChecks([]string{model.CheckImages})).RunAudit(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if dom.calls != 1 || kb.presses != 0 {
		t.Errorf("dom=%d presses=%d, want only the image check", dom.calls, kb.presses)
	}
}
