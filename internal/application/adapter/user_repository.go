// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/sparked/backend/internal/domain/entity"
)

// ListUsersFilter narrows and pages the admin user listing.
type ListUsersFilter struct {
	Search   string
	Verified *bool
	Limit    int
	Offset   int
}

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create creates a new user in the database.
	Create(ctx context.Context, user *entity.User) error

	// FindByID retrieves a user by their ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// FindByEmail retrieves a user by their email address.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// Update updates an existing user in the database.
	Update(ctx context.Context, user *entity.User) error

	// Delete removes a user from the database.
	Delete(ctx context.Context, id uuid.UUID) error

	// ExistsByEmail checks if a user with the given email exists.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// ExistsByPhone checks if a user with the given phone number exists.
	ExistsByPhone(ctx context.Context, phone string) (bool, error)

	// ExistsByFullName checks if a user with the given full name exists.
	ExistsByFullName(ctx context.Context, fullName string) (bool, error)

	// List returns a page of users and the total number matching the filter.
	List(ctx context.Context, filter ListUsersFilter) ([]*entity.User, int64, error)
}
