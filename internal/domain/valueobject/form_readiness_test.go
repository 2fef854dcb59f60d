package valueobject

import (
	"errors"
	"testing"
)

func extendedFields() RegistrationFields {
	return RegistrationFields{
		FullName:        "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "5551234567",
		Password:        "Abcd123!",
		ConfirmPassword: "Abcd123!",
	}
}

func TestEvaluateForm_Base(t *testing.T) {
	tests := []struct {
		name          string
		password      string
		confirm       string
		expectedReady bool
		expectedMatch MatchIndicator
	}{
		{name: "strong and matching", password: "Abcd123!", confirm: "Abcd123!", expectedReady: true, expectedMatch: MatchNone},
		{name: "mismatch", password: "Abcd123!", confirm: "Abcd123?", expectedReady: false, expectedMatch: MatchMismatch},
		{name: "empty confirmation", password: "Abcd123!", confirm: "", expectedReady: false, expectedMatch: MatchNone},
		{name: "weak but matching", password: "Abc12345", confirm: "Abc12345", expectedReady: false, expectedMatch: MatchNone},
		{name: "both empty", password: "", confirm: "", expectedReady: false, expectedMatch: MatchNone},
		{name: "confirmation without password", password: "", confirm: "x", expectedReady: false, expectedMatch: MatchMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := EvaluateForm(RegistrationFields{Password: tt.password, ConfirmPassword: tt.confirm}, VariantBase)
			if r.Ready != tt.expectedReady {
				t.Errorf("expected ready=%v, got %v", tt.expectedReady, r.Ready)
			}
			if r.Match != tt.expectedMatch {
				t.Errorf("expected match indicator %q, got %q", tt.expectedMatch, r.Match)
			}
		})
	}
}

func TestEvaluateForm_BaseIgnoresOtherFields(t *testing.T) {
	r := EvaluateForm(RegistrationFields{Password: "Abcd123!", ConfirmPassword: "Abcd123!"}, VariantBase)
	if !r.Ready {
		t.Error("expected base variant to be ready without name, email or phone")
	}
	if len(r.MissingFields) != 0 {
		t.Errorf("expected no missing fields, got %v", r.MissingFields)
	}
}

func TestEvaluateForm_Extended(t *testing.T) {
	r := EvaluateForm(extendedFields(), VariantExtended)
	if !r.Ready {
		t.Fatalf("expected extended form to be ready, missing=%v", r.MissingFields)
	}
	if r.Match != MatchOK {
		t.Errorf("expected match indicator %q, got %q", MatchOK, r.Match)
	}
	if r.Level().Label != "Strong" {
		t.Errorf("expected Strong, got %q", r.Level().Label)
	}

	removals := map[string]func(*RegistrationFields){
		"full_name": func(f *RegistrationFields) { f.FullName = "" },
		"email":     func(f *RegistrationFields) { f.Email = "   " },
		"phone":     func(f *RegistrationFields) { f.Phone = "\t" },
	}
	for field, remove := range removals {
		t.Run("without "+field, func(t *testing.T) {
			fields := extendedFields()
			remove(&fields)

			r := EvaluateForm(fields, VariantExtended)
			if r.Ready {
				t.Error("expected form not to be ready")
			}
			if len(r.MissingFields) != 1 || r.MissingFields[0] != field {
				t.Errorf("expected missing [%s], got %v", field, r.MissingFields)
			}
		})
	}

	t.Run("without confirmation", func(t *testing.T) {
		fields := extendedFields()
		fields.ConfirmPassword = ""

		r := EvaluateForm(fields, VariantExtended)
		if r.Ready {
			t.Error("expected form not to be ready")
		}
		if r.Match != MatchNone {
			t.Errorf("expected match indicator %q, got %q", MatchNone, r.Match)
		}
	})
}

func TestEvaluateForm_Idempotent(t *testing.T) {
	fields := extendedFields()
	fields.ConfirmPassword = "Abcd123?"

	first := EvaluateForm(fields, VariantExtended)
	second := EvaluateForm(fields, VariantExtended)

	if first.Ready != second.Ready || first.Match != second.Match || first.Strength != second.Strength {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestFormWatcher(t *testing.T) {
	w := NewFormWatcher(VariantExtended)

	var states []FormState
	w.Subscribe(func(s FormState) { states = append(states, s) })

	initial := w.Evaluate()
	if initial.Ready {
		t.Error("expected empty form not to be ready")
	}

	steps := []struct {
		field FormField
		value string
	}{
		{FieldFullName, "Ada Lovelace"},
		{FieldEmail, "ada@example.com"},
		{FieldPhone, "5551234567"},
		{FieldPassword, "Abcd123!"},
	}
	for _, s := range steps {
		r, err := w.OnChange(s.field, s.value)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if r.Ready {
			t.Errorf("expected not ready after %s", s.field)
		}
	}

	r, err := w.OnChange(FieldConfirm, "Abcd123!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !r.Ready {
		t.Error("expected ready once confirmation matches")
	}

	if len(states) != 6 {
		t.Fatalf("expected 6 notifications, got %d", len(states))
	}
	last := states[len(states)-1]
	if last.Field != FieldConfirm {
		t.Errorf("expected last change on %s, got %s", FieldConfirm, last.Field)
	}
	if last.Readiness.Match != MatchOK {
		t.Errorf("expected match indicator %q, got %q", MatchOK, last.Readiness.Match)
	}

	r, _ = w.OnChange(FieldPhone, "")
	if r.Ready {
		t.Error("expected clearing phone to disable submit")
	}
}

func TestFormWatcher_HandlersRunInOrder(t *testing.T) {
	w := NewFormWatcher(VariantBase)

	var order []int
	w.Subscribe(func(FormState) { order = append(order, 1) })
	w.Subscribe(func(FormState) { order = append(order, 2) })

	if _, err := w.OnChange(FieldPassword, "x"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("expected handlers in order [1 2], got %v", order)
	}
}

func TestFormWatcher_UnwatchedField(t *testing.T) {
	w := NewFormWatcher(VariantBase)

	called := false
	w.Subscribe(func(FormState) { called = true })

	_, err := w.OnChange(FieldEmail, "ada@example.com")
	if !errors.Is(err, ErrFieldNotWatched) {
		t.Errorf("expected ErrFieldNotWatched, got %v", err)
	}
	if called {
		t.Error("expected no notification for unwatched field")
	}
}

func TestFormWatcher_Watches(t *testing.T) {
	base := NewFormWatcher(VariantBase)
	extended := NewFormWatcher(VariantExtended)

	if !base.Watches(FieldPassword) || !base.Watches(FieldConfirm) {
		t.Error("expected base form to watch both password fields")
	}
	if base.Watches(FieldPhone) {
		t.Error("expected base form to ignore phone")
	}
	if !extended.Watches(FieldPhone) {
		t.Error("expected extended form to watch phone")
	}
}

func TestRegistrationFields_Value(t *testing.T) {
	f := RegistrationFields{FullName: "Ada", Email: "a@b.co", Phone: "555", Password: "p", ConfirmPassword: "c"}

	tests := map[FormField]string{
		FieldFullName: "Ada",
		FieldEmail:    "a@b.co",
		FieldPhone:    "555",
		FieldPassword: "p",
		FieldConfirm:  "c",
		"nickname":    "",
	}
	for field, expected := range tests {
		if got := f.Value(field); got != expected {
			t.Errorf("expected %s=%q, got %q", field, expected, got)
		}
	}
}
