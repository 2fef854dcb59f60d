package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/sparked/backend/internal/application/adapter"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

// deleteConfirmation must be typed verbatim by the user before an account is removed.
const deleteConfirmation = "DELETE"

// DeleteAccountInput carries the signed-in user and the re-entered credentials.
type DeleteAccountInput struct {
	UserID       uuid.UUID
	Password     string
	Confirmation string
}

// DeleteAccountOutput reports a completed deletion.
type DeleteAccountOutput struct {
	Success bool
}

// DeleteAccountUseCase permanently removes the caller's account and ends its sessions.
type DeleteAccountUseCase struct {
	users     adapter.UserRepository
	passwords adapter.PasswordService
	tokens    adapter.TokenService
}

// NewDeleteAccountUseCase creates a new DeleteAccountUseCase instance.
func NewDeleteAccountUseCase(
	users adapter.UserRepository,
	passwords adapter.PasswordService,
	tokens adapter.TokenService,
) *DeleteAccountUseCase {
	return &DeleteAccountUseCase{users: users, passwords: passwords, tokens: tokens}
}

// Execute requires the literal confirmation and the current password.
// Refresh tokens are revoked after the row is removed.
func (uc *DeleteAccountUseCase) Execute(ctx context.Context, input DeleteAccountInput) (*DeleteAccountOutput, error) {
	if input.Confirmation != deleteConfirmation {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidConfirmation,
			fmt.Sprintf("type %s to confirm account deletion", deleteConfirmation),
			nil,
		)
	}

	user, err := uc.users.FindByID(ctx, input.UserID)
	if errors.Is(err, domainerror.ErrUserNotFound) {
		return nil, domainerror.NewAuthError(domainerror.ErrCodeUserNotFound, "account no longer exists", err)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if uc.passwords.VerifyPassword(user.PasswordHash, input.Password) != nil {
		slog.Warn("Account deletion refused: wrong password", "userID", user.ID)
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidCredentials,
			"password is incorrect",
			domainerror.ErrInvalidCredentials,
		)
	}

	if err := uc.users.Delete(ctx, user.ID); err != nil {
		return nil, fmt.Errorf("failed to delete account: %w", err)
	}
	slog.Info("Account deleted", "userID", user.ID, "email", user.Email)

	// Refresh rejects tokens of missing users; a failed revoke is only logged.
	if err := uc.tokens.InvalidateAllUserTokens(ctx, user.ID); err != nil {
		slog.Error("Failed to revoke sessions of deleted account", "error", err, "userID", user.ID)
	}

	return &DeleteAccountOutput{Success: true}, nil
}
