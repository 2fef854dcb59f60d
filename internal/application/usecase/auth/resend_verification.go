package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sparked/backend/internal/application/adapter"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

const resendMessage = "If the account exists and is not yet verified, a new code has been sent"

// ResendVerificationInput represents the input for requesting a new code.
type ResendVerificationInput struct {
	Email string
}

// ResendVerificationOutput represents the output of a resend request.
type ResendVerificationOutput struct {
	Message string
}

// ResendVerificationUseCase issues a fresh verification code.
// Unknown and already verified addresses get the same response as real ones.
type ResendVerificationUseCase struct {
	userRepo adapter.UserRepository
	issuer   *codeIssuer
}

// NewResendVerificationUseCase creates a new ResendVerificationUseCase instance.
func NewResendVerificationUseCase(
	userRepo adapter.UserRepository,
	codeStore adapter.VerificationCodeStore,
	emailService adapter.EmailService,
	settings VerificationSettings,
	generate CodeGenerator,
) *ResendVerificationUseCase {
	return &ResendVerificationUseCase{
		userRepo: userRepo,
		issuer:   newCodeIssuer(codeStore, emailService, settings, generate),
	}
}

// Execute performs the resend request.
func (uc *ResendVerificationUseCase) Execute(ctx context.Context, input ResendVerificationInput) (*ResendVerificationOutput, error) {
	email := normalizeEmail(input.Email)
	if !isValidEmail(email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	acquired, err := uc.issuer.store.AcquireCooldown(ctx, email, uc.issuer.settings.ResendCooldown)
	if err != nil {
		return nil, fmt.Errorf("failed to check resend cooldown: %w", err)
	}
	if !acquired {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeResendCooldown,
			"a code was sent recently, please wait before requesting another",
			domainerror.ErrResendCooldown,
		)
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		slog.Debug("Verification resend requested for unknown email", "email", email)
		return &ResendVerificationOutput{Message: resendMessage}, nil
	}
	if user.EmailVerified {
		return &ResendVerificationOutput{Message: resendMessage}, nil
	}

	if err := uc.issuer.issue(ctx, user); err != nil {
		return nil, err
	}
	slog.Info("Verification code reissued", "userID", user.ID)

	return &ResendVerificationOutput{Message: resendMessage}, nil
}
