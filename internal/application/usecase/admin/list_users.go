// Package admin contains operator-only use cases.
package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/domain/entity"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

// ListUsersInput represents the input for listing users.
type ListUsersInput struct {
	RequesterID uuid.UUID
	Search      string
	Verified    *bool
	Limit       int
	Offset      int
}

// ListUsersOutput represents a page of users.
type ListUsersOutput struct {
	Users  []*entity.User
	Total  int64
	Limit  int
	Offset int
}

// ListUsersUseCase lists registered users for administrators.
type ListUsersUseCase struct {
	userRepo adapter.UserRepository
}

// NewListUsersUseCase creates a new ListUsersUseCase instance.
func NewListUsersUseCase(userRepo adapter.UserRepository) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo}
}

// Execute lists users after confirming the requester is an admin.
func (uc *ListUsersUseCase) Execute(ctx context.Context, input ListUsersInput) (*ListUsersOutput, error) {
	requester, err := uc.userRepo.FindByID(ctx, input.RequesterID)
	if err != nil || !requester.IsAdmin || !requester.IsActive {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAdminRequired,
			"admin privileges required",
			domainerror.ErrAdminRequired,
		)
	}

	limit := input.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := input.Offset
	if offset < 0 {
		offset = 0
	}

	users, total, err := uc.userRepo.List(ctx, adapter.ListUsersFilter{
		Search:   strings.TrimSpace(input.Search),
		Verified: input.Verified,
		Limit:    limit,
		Offset:   offset,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &ListUsersOutput{
		Users:  users,
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}, nil
}
