// Package validation registers custom binding validators on gin's engine and maps
// binding failures to auth error codes.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/domain/valueobject"
)

const (
	TagPhone          = "phone"
	TagStrongPassword = "strong_password"
)

var (
	phonePattern = regexp.MustCompile(`^\+?[0-9][0-9 ()\-]{5,18}[0-9]$`)
	digitPattern = regexp.MustCompile(`[0-9]`)

	registerOnce sync.Once
	registerErr  error
)

// phoneRule accepts 7 to 15 digits with optional separators and a leading plus.
// A blank value passes; whether the phone is required is decided by the caller.
func phoneRule(fl validator.FieldLevel) bool {
	phone := strings.TrimSpace(fl.Field().String())
	if phone == "" {
		return true
	}
	if !phonePattern.MatchString(phone) {
		return false
	}
	digits := len(digitPattern.FindAllString(phone, -1))
	return digits >= 7 && digits <= 15
}

// strongPasswordRule requires every strength requirement group.
func strongPasswordRule(fl validator.FieldLevel) bool {
	return valueobject.EvaluatePassword(fl.Field().String()).IsStrong()
}

// RegisterValidators adds the phone and strong_password tags to v.
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation(TagPhone, phoneRule); err != nil {
		return fmt.Errorf("failed to register %s validator: %w", TagPhone, err)
	}
	if err := v.RegisterValidation(TagStrongPassword, strongPasswordRule); err != nil {
		return fmt.Errorf("failed to register %s validator: %w", TagStrongPassword, err)
	}
	return nil
}

// Setup registers the custom validators on gin's default validator engine.
// It is safe to call more than once.
func Setup() error {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerErr = errors.New("gin validator engine is not go-playground/validator")
			return
		}
		registerErr = RegisterValidators(v)
	})
	return registerErr
}

// BindError converts a binding failure into a message and auth error code.
// fallback is used when the failure is not a known field rule.
func BindError(err error, fallback domainerror.AuthErrorCode) (string, domainerror.AuthErrorCode) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request body", fallback
	}

	fe := verrs[0]
	switch fe.Tag() {
	case TagStrongPassword:
		return "password does not meet strength requirements", domainerror.ErrCodeWeakPassword
	case TagPhone:
		return "please enter a valid phone number", domainerror.ErrCodeInvalidPhone
	case "email":
		return "please enter a valid email address", domainerror.ErrCodeInvalidEmail
	case "required":
		return fmt.Sprintf("%s is required", fe.Field()), domainerror.ErrCodeMissingFields
	}
	return fmt.Sprintf("field %s failed validation: %s", fe.Field(), fe.Tag()), fallback
}
