package auth

import (
	"context"
	"crypto/subtle"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/sparked/backend/internal/application/adapter"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

// VerifyEmailInput represents the input for email verification.
type VerifyEmailInput struct {
	Email string
	Code  string
}

// VerifyEmailOutput represents the output of email verification.
type VerifyEmailOutput struct {
	Message     string
	RedirectURL string
}

// VerifyEmailUseCase checks a submitted 6-digit code against the pending one.
type VerifyEmailUseCase struct {
	userRepo  adapter.UserRepository
	codeStore adapter.VerificationCodeStore
	settings  VerificationSettings
	now       func() time.Time
}

// NewVerifyEmailUseCase creates a new VerifyEmailUseCase instance.
func NewVerifyEmailUseCase(
	userRepo adapter.UserRepository,
	codeStore adapter.VerificationCodeStore,
	settings VerificationSettings,
) *VerifyEmailUseCase {
	return &VerifyEmailUseCase{
		userRepo:  userRepo,
		codeStore: codeStore,
		settings:  settings,
		now:       time.Now,
	}
}

// Execute performs the email verification.
func (uc *VerifyEmailUseCase) Execute(ctx context.Context, input VerifyEmailInput) (*VerifyEmailOutput, error) {
	email := normalizeEmail(input.Email)
	code := strings.TrimSpace(input.Code)

	if !codePattern.MatchString(code) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidVerificationCode,
			"please enter a valid 6-digit code",
			domainerror.ErrInvalidVerificationCode,
		)
	}

	pending, err := uc.codeStore.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to load verification code: %w", err)
	}
	if pending == nil || !uc.now().UTC().Before(pending.ExpiresAt) {
		return nil, codeExpired()
	}

	if subtle.ConstantTimeCompare([]byte(pending.Code), []byte(code)) != 1 {
		attempts, err := uc.codeStore.IncrementAttempts(ctx, email)
		if err != nil {
			return nil, fmt.Errorf("failed to record verification attempt: %w", err)
		}
		if attempts >= uc.settings.MaxAttempts {
			if err := uc.codeStore.Delete(ctx, email); err != nil {
				slog.Warn("Failed to discard verification code", "error", err)
			}
			return nil, domainerror.NewAuthError(
				domainerror.ErrCodeVerificationCodeMismatch,
				"too many incorrect attempts, please request a new code",
				domainerror.ErrVerificationCodeMismatch,
			)
		}
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeVerificationCodeMismatch,
			fmt.Sprintf("incorrect code, %d attempts remaining", uc.settings.MaxAttempts-attempts),
			domainerror.ErrVerificationCodeMismatch,
		)
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return nil, codeExpired()
	}

	user.MarkEmailVerified(uc.now().UTC())
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to mark email verified: %w", err)
	}

	if err := uc.codeStore.Delete(ctx, email); err != nil {
		slog.Warn("Failed to delete used verification code", "error", err, "userID", user.ID)
	}

	return &VerifyEmailOutput{
		Message:     "Email verified successfully",
		RedirectURL: "/login",
	}, nil
}

func codeExpired() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeVerificationCodeExpired,
		"verification code expired, please request a new one",
		domainerror.ErrVerificationCodeExpired,
	)
}
