// Package adapters implements adapter interfaces from the application layer.
package adapters

import (
	"errors"
	"fmt"
	"strings"

	passwordvalidator "github.com/wagslane/go-password-validator"
	"golang.org/x/crypto/bcrypt"

	"github.com/sparked/backend/internal/application/adapter"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/domain/valueobject"
)

// DefaultBcryptCost is the cost factor used when none is configured.
const DefaultBcryptCost = 12

// passwordService implements the adapter.PasswordService interface.
type passwordService struct {
	cost int
}

// NewPasswordService creates a new password service instance.
// A cost outside bcrypt's accepted range falls back to DefaultBcryptCost.
func NewPasswordService(cost int) adapter.PasswordService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	return &passwordService{cost: cost}
}

// HashPassword hashes a plain text password using bcrypt.
func (s *passwordService) HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", fmt.Errorf("%w: %d bytes", domainerror.ErrPasswordTooLong, len(password))
	}
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyPassword compares a plain text password with a hashed password.
func (s *passwordService) VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// EvaluateStrength scores a password against the strength requirements.
func (s *passwordService) EvaluateStrength(password string) valueobject.PasswordEvaluation {
	return valueobject.EvaluatePassword(password)
}

// ValidatePasswordStrength accepts only passwords that satisfy every requirement group.
// Passwords longer than adapter.MaxPasswordBytes are rejected before scoring.
func (s *passwordService) ValidatePasswordStrength(password string) error {
	if len(password) > adapter.MaxPasswordBytes {
		return fmt.Errorf("%w: limit is %d bytes", domainerror.ErrPasswordTooLong, adapter.MaxPasswordBytes)
	}

	evaluation := valueobject.EvaluatePassword(password)
	if evaluation.IsStrong() {
		return nil
	}

	var missing []string
	for _, ind := range evaluation.Indicators() {
		if !ind.Satisfied {
			missing = append(missing, string(ind.Group))
		}
	}
	return fmt.Errorf("%w: missing %s", domainerror.ErrWeakPassword, strings.Join(missing, ", "))
}

// entropyEstimator implements adapter.EntropyEstimator with go-password-validator.
type entropyEstimator struct{}

// NewEntropyEstimator creates an estimator reporting password entropy in bits.
func NewEntropyEstimator() adapter.EntropyEstimator {
	return entropyEstimator{}
}

// EstimateEntropy returns the estimated entropy of the password in bits.
func (entropyEstimator) EstimateEntropy(password string) float64 {
	return passwordvalidator.GetEntropy(password)
}
