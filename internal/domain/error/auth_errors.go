// Package error defines domain-specific errors for the SparkEd authentication service.
package error

import "errors"

// Authentication domain errors.
var (
	// ErrUserNotFound is returned when a user is not found in the system.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to register with an existing email.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrPhoneAlreadyExists is returned when attempting to register with an existing phone number.
	ErrPhoneAlreadyExists = errors.New("phone number already exists")

	// ErrFullNameAlreadyExists is returned when the display name is already taken.
	ErrFullNameAlreadyExists = errors.New("full name already exists")

	// ErrInvalidCredentials is returned when login credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidToken is returned when a token is invalid or malformed.
	ErrInvalidToken = errors.New("invalid token")

	// ErrExpiredToken is returned when a token has expired.
	ErrExpiredToken = errors.New("token has expired")

	// ErrInvalidResetToken is returned when a password reset token is invalid.
	ErrInvalidResetToken = errors.New("invalid or expired password reset token")

	// ErrWeakPassword is returned when the password does not satisfy every strength requirement.
	ErrWeakPassword = errors.New("password does not meet strength requirements")

	// ErrPasswordTooLong is returned when a password exceeds what bcrypt can hash.
	ErrPasswordTooLong = errors.New("password is too long")

	// ErrPasswordMismatch is returned when the confirmation differs from the password.
	ErrPasswordMismatch = errors.New("passwords do not match")

	// ErrMissingFields is returned when required registration fields are blank.
	ErrMissingFields = errors.New("required fields are missing")

	// ErrInvalidEmail is returned when the provided email format is invalid.
	ErrInvalidEmail = errors.New("invalid email format")

	// ErrInvalidPhone is returned when the phone number is malformed.
	ErrInvalidPhone = errors.New("invalid phone number")

	// ErrAccountLocked is returned while an account is locked after repeated failed logins.
	ErrAccountLocked = errors.New("account temporarily locked")

	// ErrAccountInactive is returned when a deactivated account tries to log in.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrEmailNotVerified is returned when an unverified account tries to log in.
	ErrEmailNotVerified = errors.New("email address not verified")

	// ErrInvalidVerificationCode is returned when a verification code is not six digits.
	ErrInvalidVerificationCode = errors.New("verification code must be 6 digits")

	// ErrVerificationCodeExpired is returned when no pending code exists for the email.
	ErrVerificationCodeExpired = errors.New("verification code expired or not found")

	// ErrVerificationCodeMismatch is returned when the submitted code is wrong.
	ErrVerificationCodeMismatch = errors.New("verification code is incorrect")

	// ErrResendCooldown is returned when a new code is requested too soon.
	ErrResendCooldown = errors.New("verification code was sent recently")

	// ErrAdminRequired is returned when a non-admin calls an admin operation.
	ErrAdminRequired = errors.New("admin privileges required")
)

// AuthErrorCode defines error codes for authentication errors.
// Format: AUTH-XXYYYY where XX is category and YYYY is specific error.
type AuthErrorCode string

const (
	// Registration errors (01XXXX)
	ErrCodeEmailExists      AuthErrorCode = "AUTH-010001"
	ErrCodeFullNameExists   AuthErrorCode = "AUTH-010002"
	ErrCodeWeakPassword     AuthErrorCode = "AUTH-010003"
	ErrCodeInvalidEmail     AuthErrorCode = "AUTH-010004"
	ErrCodeMissingFields    AuthErrorCode = "AUTH-010005"
	ErrCodePasswordMismatch AuthErrorCode = "AUTH-010006"
	ErrCodePhoneExists      AuthErrorCode = "AUTH-010007"
	ErrCodeInvalidPhone     AuthErrorCode = "AUTH-010008"
	ErrCodePasswordTooLong  AuthErrorCode = "AUTH-010009"

	// Login errors (02XXXX)
	ErrCodeInvalidCredentials AuthErrorCode = "AUTH-020001"
	ErrCodeUserNotFound       AuthErrorCode = "AUTH-020002"
	ErrCodeRateLimited        AuthErrorCode = "AUTH-020003"
	ErrCodeAccountLocked      AuthErrorCode = "AUTH-020004"
	ErrCodeAccountInactive    AuthErrorCode = "AUTH-020005"
	ErrCodeEmailNotVerified   AuthErrorCode = "AUTH-020006"

	// Token errors (03XXXX)
	ErrCodeInvalidToken AuthErrorCode = "AUTH-030001"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-030002"
	ErrCodeMissingToken AuthErrorCode = "AUTH-030003"

	// Password reset errors (04XXXX)
	ErrCodeInvalidResetToken AuthErrorCode = "AUTH-040001"
	ErrCodeExpiredResetToken AuthErrorCode = "AUTH-040002"

	// Account errors (05XXXX)
	ErrCodeInvalidConfirmation AuthErrorCode = "AUTH-050001"

	// Email verification errors (06XXXX)
	ErrCodeInvalidVerificationCode  AuthErrorCode = "AUTH-060001"
	ErrCodeVerificationCodeExpired  AuthErrorCode = "AUTH-060002"
	ErrCodeVerificationCodeMismatch AuthErrorCode = "AUTH-060003"
	ErrCodeResendCooldown           AuthErrorCode = "AUTH-060004"

	// Admin errors (07XXXX)
	ErrCodeAdminRequired AuthErrorCode = "AUTH-070001"
)

// AuthError represents an authentication error with code and message.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AuthError) Unwrap() error {
	return e.Err
}

// NewAuthError creates a new AuthError with the given code and message.
func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
