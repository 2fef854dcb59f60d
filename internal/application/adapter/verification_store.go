package adapter

import (
	"context"
	"time"
)

// VerificationCode is a pending email verification challenge.
type VerificationCode struct {
	Code      string    `json:"code"`
	Attempts  int       `json:"attempts"`
	ExpiresAt time.Time `json:"expires_at"`
}

// VerificationCodeStore keeps short-lived verification codes keyed by email.
type VerificationCodeStore interface {
	// Save stores a fresh code, replacing any pending one.
	Save(ctx context.Context, email string, code VerificationCode, ttl time.Duration) error

	// Get returns the pending code, or nil when none exists or it has expired.
	Get(ctx context.Context, email string) (*VerificationCode, error)

	// IncrementAttempts records a wrong guess and returns the updated count.
	IncrementAttempts(ctx context.Context, email string) (int, error)

	// Delete discards the pending code.
	Delete(ctx context.Context, email string) error

	// AcquireCooldown returns false if a code was sent within the cooldown window.
	AcquireCooldown(ctx context.Context, email string, ttl time.Duration) (bool, error)
}

// LockoutState is the failed-login bookkeeping for one account.
type LockoutState struct {
	FailedCount int
	LockedUntil *time.Time
}

// IsLocked reports whether the account is locked at the given instant.
func (s LockoutState) IsLocked(now time.Time) bool {
	return s.LockedUntil != nil && now.Before(*s.LockedUntil)
}

// LockoutStore tracks repeated login failures.
type LockoutStore interface {
	Get(ctx context.Context, key string) (LockoutState, error)
	RecordFailure(ctx context.Context, key string, now time.Time, threshold int, lockoutWindow time.Duration) (LockoutState, error)
	Clear(ctx context.Context, key string) error
}
