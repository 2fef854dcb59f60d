// Package auth contains authentication-related use cases.
package auth

import (
	"regexp"
	"strings"

	"github.com/sparked/backend/internal/application/adapter"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	codePattern  = regexp.MustCompile(`^\d{6}$`)
)

// isValidEmail validates email format using a simple regex.
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// normalizeEmail lowercases and trims an address so lookups and cache keys agree.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// checkPasswordLength rejects passwords bcrypt would refuse to hash.
func checkPasswordLength(password string) error {
	if len(password) > adapter.MaxPasswordBytes {
		return domainerror.NewAuthError(
			domainerror.ErrCodePasswordTooLong,
			"Password must be at most 72 bytes",
			domainerror.ErrPasswordTooLong,
		)
	}
	return nil
}
