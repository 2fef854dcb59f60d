package error

import "errors"

// Outbound email errors.
var (
	// ErrEmailQueueFailed is returned when an email cannot be written to the queue.
	ErrEmailQueueFailed = errors.New("failed to queue email")

	// ErrEmailJobNotFound is returned when a queued job does not exist.
	ErrEmailJobNotFound = errors.New("email job not found")

	// ErrInvalidTemplate is returned when a queued job names no known template.
	ErrInvalidTemplate = errors.New("invalid email template")

	// ErrPermanentEmailFailure means the provider rejected the message for good.
	ErrPermanentEmailFailure = errors.New("permanent email failure")

	// ErrTemporaryEmailFailure means the send may succeed on a later attempt.
	ErrTemporaryEmailFailure = errors.New("temporary email failure")
)

// EmailErrorCode defines error codes for email errors.
// Format: EMAIL-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// Queue errors (01XXXX)
	ErrCodeEmailQueueFailed EmailErrorCode = "EMAIL-010001"

	// Send errors (02XXXX)
	ErrCodePermanentEmailFailure EmailErrorCode = "EMAIL-020002"
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EMAIL-020003"

	// Template errors (03XXXX)
	ErrCodeInvalidTemplate      EmailErrorCode = "EMAIL-030001"
	ErrCodeTemplateRenderFailed EmailErrorCode = "EMAIL-030002"
)

// EmailError carries a code so the worker can decide whether to retry.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailFailure reports whether err should not be retried.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	if !errors.As(err, &emailErr) {
		return false
	}
	switch emailErr.Code {
	case ErrCodePermanentEmailFailure, ErrCodeInvalidTemplate, ErrCodeTemplateRenderFailed:
		return true
	}
	return false
}
