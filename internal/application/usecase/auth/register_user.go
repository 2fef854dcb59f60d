package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/domain/entity"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/domain/valueobject"
)

// RegisterUserInput represents the input for user registration.
type RegisterUserInput struct {
	FullName        string
	Email           string
	Phone           string
	Password        string
	ConfirmPassword string
}

// RegisterUserOutput represents the output of user registration.
type RegisterUserOutput struct {
	User        *entity.User
	RedirectURL string
}

// RegisterUserUseCase handles user registration logic.
type RegisterUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	issuer          *codeIssuer
}

// NewRegisterUserUseCase creates a new RegisterUserUseCase instance.
func NewRegisterUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	codeStore adapter.VerificationCodeStore,
	emailService adapter.EmailService,
	settings VerificationSettings,
	generate CodeGenerator,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		issuer:          newCodeIssuer(codeStore, emailService, settings, generate),
	}
}

// Execute performs the user registration.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, input RegisterUserInput) (*RegisterUserOutput, error) {
	input.FullName = strings.TrimSpace(input.FullName)
	input.Email = normalizeEmail(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)

	// Apply the same gate the registration form uses before enabling submit
	readiness := valueobject.EvaluateForm(valueobject.RegistrationFields{
		FullName:        input.FullName,
		Email:           input.Email,
		Phone:           input.Phone,
		Password:        input.Password,
		ConfirmPassword: input.ConfirmPassword,
	}, valueobject.VariantExtended)

	if len(readiness.MissingFields) > 0 {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeMissingFields,
			"missing required fields: "+strings.Join(readiness.MissingFields, ", "),
			domainerror.ErrMissingFields,
		)
	}

	if !isValidEmail(input.Email) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeInvalidEmail,
			"invalid email format",
			domainerror.ErrInvalidEmail,
		)
	}

	if !readiness.PasswordsMatch {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodePasswordMismatch,
			"passwords do not match",
			domainerror.ErrPasswordMismatch,
		)
	}

	if err := checkPasswordLength(input.Password); err != nil {
		return nil, err
	}

	if err := uc.passwordService.ValidatePasswordStrength(input.Password); err != nil {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeWeakPassword,
			"password must contain upper and lower case letters, a number, one of !@#$%^&* and at least 8 characters",
			domainerror.ErrWeakPassword,
		)
	}

	if err := uc.checkUnique(ctx, input); err != nil {
		return nil, err
	}

	passwordHash, err := uc.passwordService.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := entity.NewUser(input.FullName, input.Email, input.Phone, passwordHash)
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// The account exists either way; a failed send can be recovered with a resend.
	if _, err := uc.issuer.store.AcquireCooldown(ctx, user.Email, uc.issuer.settings.ResendCooldown); err != nil {
		slog.Warn("Failed to set verification cooldown", "error", err, "userID", user.ID)
	}
	if err := uc.issuer.issue(ctx, user); err != nil {
		slog.Error("Failed to issue verification code", "error", err, "userID", user.ID)
	}

	return &RegisterUserOutput{
		User:        user,
		RedirectURL: verifyRedirect("", user.Email),
	}, nil
}

func (uc *RegisterUserUseCase) checkUnique(ctx context.Context, input RegisterUserInput) error {
	exists, err := uc.userRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return domainerror.NewAuthError(
			domainerror.ErrCodeEmailExists,
			"email already exists",
			domainerror.ErrEmailAlreadyExists,
		)
	}

	exists, err = uc.userRepo.ExistsByPhone(ctx, input.Phone)
	if err != nil {
		return fmt.Errorf("failed to check phone existence: %w", err)
	}
	if exists {
		return domainerror.NewAuthError(
			domainerror.ErrCodePhoneExists,
			"phone number already exists",
			domainerror.ErrPhoneAlreadyExists,
		)
	}

	exists, err = uc.userRepo.ExistsByFullName(ctx, input.FullName)
	if err != nil {
		return fmt.Errorf("failed to check full name existence: %w", err)
	}
	if exists {
		return domainerror.NewAuthError(
			domainerror.ErrCodeFullNameExists,
			"full name already exists",
			domainerror.ErrFullNameAlreadyExists,
		)
	}
	return nil
}
