package adapter

import "github.com/sparked/backend/internal/domain/valueobject"

// MaxPasswordBytes is the longest password bcrypt accepts, measured in bytes.
const MaxPasswordBytes = 72

// PasswordService defines the interface for password hashing and verification.
type PasswordService interface {
	// HashPassword hashes a plain text password using bcrypt.
	HashPassword(password string) (string, error)

	// VerifyPassword compares a plain text password with a hashed password.
	VerifyPassword(hashedPassword, password string) error

	// EvaluateStrength scores a password against the strength requirements.
	EvaluateStrength(password string) valueobject.PasswordEvaluation

	// ValidatePasswordStrength returns an error unless every requirement is satisfied.
	ValidatePasswordStrength(password string) error
}

// EntropyEstimator estimates the guessing entropy of a password in bits.
type EntropyEstimator interface {
	EstimateEntropy(password string) float64
}
