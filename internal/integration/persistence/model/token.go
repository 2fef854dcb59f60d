package model

import (
	"time"

	"github.com/google/uuid"
)

// RefreshTokenModel tracks issued refresh tokens so they can be revoked.
type RefreshTokenModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token       string    `gorm:"type:varchar(500);uniqueIndex;not null"`
	UserID      uuid.UUID `gorm:"type:uuid;index;not null"`
	Invalidated bool      `gorm:"default:false"`
	ExpiresAt   time.Time `gorm:"index;not null"`
	CreatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for the RefreshTokenModel.
func (RefreshTokenModel) TableName() string {
	return "refresh_tokens"
}

// PasswordResetTokenModel represents the password_reset_tokens table.
type PasswordResetTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Token     string    `gorm:"type:varchar(128);uniqueIndex;not null"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Used      bool      `gorm:"default:false"`
	UsedAt    *time.Time
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the PasswordResetTokenModel.
func (PasswordResetTokenModel) TableName() string {
	return "password_reset_tokens"
}

// All returns every model managed by migrations, in dependency order.
func All() []any {
	return []any{
		&UserModel{},
		&RefreshTokenModel{},
		&PasswordResetTokenModel{},
		&EmailQueueModel{},
	}
}
