package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sparked/backend/internal/application/adapter"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

// ResetPasswordInput represents the input for password reset.
type ResetPasswordInput struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

// ResetPasswordOutput represents the output of password reset.
type ResetPasswordOutput struct {
	Message     string
	RedirectURL string
}

// ResetPasswordUseCase handles password reset logic.
type ResetPasswordUseCase struct {
	userRepo          adapter.UserRepository
	passwordService   adapter.PasswordService
	resetTokenService adapter.PasswordResetTokenService
	tokenService      adapter.TokenService
}

// NewResetPasswordUseCase creates a new ResetPasswordUseCase instance.
func NewResetPasswordUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	resetTokenService adapter.PasswordResetTokenService,
	tokenService adapter.TokenService,
) *ResetPasswordUseCase {
	return &ResetPasswordUseCase{
		userRepo:          userRepo,
		passwordService:   passwordService,
		resetTokenService: resetTokenService,
		tokenService:      tokenService,
	}
}

// Execute performs the password reset.
func (uc *ResetPasswordUseCase) Execute(ctx context.Context, input ResetPasswordInput) (*ResetPasswordOutput, error) {
	resetToken, err := uc.resetTokenService.ValidateResetToken(ctx, input.Token)
	if err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidResetToken,
			"invalid or expired password reset token",
			domainerror.ErrInvalidResetToken,
		)
	}

	if time.Now().UTC().After(resetToken.ExpiresAt) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeExpiredResetToken,
			"password reset token has expired",
			domainerror.ErrInvalidResetToken,
		)
	}

	if input.ConfirmPassword != "" && input.ConfirmPassword != input.NewPassword {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodePasswordMismatch,
			"passwords do not match",
			domainerror.ErrPasswordMismatch,
		)
	}

	if err := checkPasswordLength(input.NewPassword); err != nil {
		return nil, err
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.NewPassword); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password does not meet strength requirements",
			domainerror.ErrWeakPassword,
		)
	}

	user, err := uc.userRepo.FindByID(ctx, resetToken.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	passwordHash, err := uc.passwordService.HashPassword(input.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user.PasswordHash = passwordHash
	user.UpdatedAt = time.Now().UTC()
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to update user password: %w", err)
	}

	// Password was already reset; the rest is cleanup
	if err := uc.resetTokenService.InvalidateResetToken(ctx, input.Token); err != nil {
		slog.Warn("Failed to invalidate reset token", "error", err, "userID", user.ID)
	}
	if err := uc.tokenService.InvalidateAllUserTokens(ctx, user.ID); err != nil {
		slog.Warn("Failed to revoke sessions after password reset", "error", err, "userID", user.ID)
	}

	return &ResetPasswordOutput{
		Message:     "Password has been successfully reset",
		RedirectURL: "/login",
	}, nil
}
