// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered SparkEd account.
type User struct {
	ID            uuid.UUID
	FullName      string
	Email         string
	Phone         string
	PasswordHash  string
	IsAdmin       bool
	IsActive      bool
	EmailVerified bool
	FailedLogins  int
	LastLoginAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUser creates a new active, unverified user.
func NewUser(fullName, email, phone, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		ID:            uuid.New(),
		FullName:      fullName,
		Email:         email,
		Phone:         phone,
		PasswordHash:  passwordHash,
		IsAdmin:       false,
		IsActive:      true,
		EmailVerified: false,
		FailedLogins:  0,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// RecordLogin resets the failure counter and stamps the login time.
func (u *User) RecordLogin(at time.Time) {
	u.FailedLogins = 0
	u.LastLoginAt = &at
	u.UpdatedAt = at
}

// RecordFailedLogin increments the failure counter.
func (u *User) RecordFailedLogin(at time.Time) {
	u.FailedLogins++
	u.UpdatedAt = at
}

// MarkEmailVerified flags the email address as confirmed.
func (u *User) MarkEmailVerified(at time.Time) {
	u.EmailVerified = true
	u.UpdatedAt = at
}
