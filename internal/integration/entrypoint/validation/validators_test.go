package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"

	domainerror "github.com/sparked/backend/internal/domain/error"
)

type sample struct {
	Phone    string `validate:"omitempty,phone"`
	Password string `validate:"required,strong_password"`
}

func newValidate(t *testing.T) *validator.Validate {
	t.Helper()
	v := validator.New()
	if err := RegisterValidators(v); err != nil {
		t.Fatalf("failed to register validators: %v", err)
	}
	return v
}

func TestPhoneRule(t *testing.T) {
	v := newValidate(t)

	tests := []struct {
		phone string
		valid bool
	}{
		{"5551234567", true},
		{"+1 (555) 123-4567", true},
		{"123456", false},
		{"555-CALL-NOW", false},
		{"+1234567890123456", false},
		{"", true},
		{"   ", true},
		{" 5551234567 ", true},
		{" 12345 ", false},
	}

	for _, tt := range tests {
		t.Run(tt.phone, func(t *testing.T) {
			err := v.Struct(sample{Phone: tt.phone, Password: "Abcd123!"})
			if tt.valid && err != nil {
				t.Errorf("expected %q to be valid, got %v", tt.phone, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("expected %q to be invalid", tt.phone)
			}
		})
	}
}

func TestStrongPasswordRule(t *testing.T) {
	v := newValidate(t)

	tests := []struct {
		password string
		valid    bool
	}{
		{"Abcd123!", true},
		{"Abc12345", false},
		{"abcd123!", false},
		{"Ab1!", false},
	}

	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			err := v.Struct(sample{Password: tt.password})
			if tt.valid != (err == nil) {
				t.Errorf("expected valid=%v, got err=%v", tt.valid, err)
			}
		})
	}
}

func TestBindError(t *testing.T) {
	v := newValidate(t)

	err := v.Struct(sample{Password: "weak"})
	if _, code := BindError(err, domainerror.ErrCodeMissingFields); code != domainerror.ErrCodeWeakPassword {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeWeakPassword, code)
	}

	err = v.Struct(sample{Phone: "12", Password: "Abcd123!"})
	if _, code := BindError(err, domainerror.ErrCodeMissingFields); code != domainerror.ErrCodeInvalidPhone {
		t.Errorf("expected %s, got %s", domainerror.ErrCodeInvalidPhone, code)
	}

	msg, code := BindError(errors.New("EOF"), domainerror.ErrCodeMissingToken)
	if code != domainerror.ErrCodeMissingToken || msg != "Invalid request body" {
		t.Errorf("expected fallback, got %s %q", code, msg)
	}
}

func TestSetup_Idempotent(t *testing.T) {
	if err := Setup(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Setup(); err != nil {
		t.Fatalf("unexpected error on second call: %v", err)
	}
}
