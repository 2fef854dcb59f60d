// Package model defines database models for persistence layer.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/sparked/backend/internal/domain/entity"
)

// UserModel represents the users table in the database.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	FullName      string    `gorm:"type:varchar(150);uniqueIndex;not null"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Phone         string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	IsAdmin       bool      `gorm:"not null;default:false"`
	IsActive      bool      `gorm:"not null;default:true"`
	EmailVerified bool      `gorm:"not null;default:false"`
	FailedLogins  int       `gorm:"not null;default:0"`
	LastLoginAt   *time.Time
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

// TableName returns the table name for the UserModel.
func (UserModel) TableName() string {
	return "users"
}

// ToEntity converts a UserModel to a domain User entity.
func (m *UserModel) ToEntity() *entity.User {
	return &entity.User{
		ID:            m.ID,
		FullName:      m.FullName,
		Email:         m.Email,
		Phone:         m.Phone,
		PasswordHash:  m.PasswordHash,
		IsAdmin:       m.IsAdmin,
		IsActive:      m.IsActive,
		EmailVerified: m.EmailVerified,
		FailedLogins:  m.FailedLogins,
		LastLoginAt:   m.LastLoginAt,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// FromEntity creates a UserModel from a domain User entity.
func FromEntity(user *entity.User) *UserModel {
	return &UserModel{
		ID:            user.ID,
		FullName:      user.FullName,
		Email:         user.Email,
		Phone:         user.Phone,
		PasswordHash:  user.PasswordHash,
		IsAdmin:       user.IsAdmin,
		IsActive:      user.IsActive,
		EmailVerified: user.EmailVerified,
		FailedLogins:  user.FailedLogins,
		LastLoginAt:   user.LastLoginAt,
		CreatedAt:     user.CreatedAt,
		UpdatedAt:     user.UpdatedAt,
	}
}
