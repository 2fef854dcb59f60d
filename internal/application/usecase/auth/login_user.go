package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/domain/entity"
	domainerror "github.com/sparked/backend/internal/domain/error"
)

// LockoutSettings controls brute-force protection on login.
type LockoutSettings struct {
	Threshold int
	Window    time.Duration
}

// LoginUserInput represents the input for user login.
type LoginUserInput struct {
	Email      string
	Password   string
	RememberMe bool
}

// LoginUserOutput represents the output of user login.
type LoginUserOutput struct {
	AccessToken  string
	RefreshToken string
	User         *entity.User
	RedirectURL  string
}

// LoginUserUseCase handles user login logic.
type LoginUserUseCase struct {
	userRepo        adapter.UserRepository
	passwordService adapter.PasswordService
	tokenService    adapter.TokenService
	lockoutStore    adapter.LockoutStore
	lockout         LockoutSettings
	now             func() time.Time
}

// NewLoginUserUseCase creates a new LoginUserUseCase instance.
func NewLoginUserUseCase(
	userRepo adapter.UserRepository,
	passwordService adapter.PasswordService,
	tokenService adapter.TokenService,
	lockoutStore adapter.LockoutStore,
	lockout LockoutSettings,
) *LoginUserUseCase {
	return &LoginUserUseCase{
		userRepo:        userRepo,
		passwordService: passwordService,
		tokenService:    tokenService,
		lockoutStore:    lockoutStore,
		lockout:         lockout,
		now:             time.Now,
	}
}

// Execute performs the user login.
func (uc *LoginUserUseCase) Execute(ctx context.Context, input LoginUserInput) (*LoginUserOutput, error) {
	email := normalizeEmail(input.Email)
	now := uc.now().UTC()

	state, err := uc.lockoutStore.Get(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockout state: %w", err)
	}
	if state.IsLocked(now) {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAccountLocked,
			fmt.Sprintf("too many failed attempts, try again after %s", state.LockedUntil.Format(time.RFC3339)),
			domainerror.ErrAccountLocked,
		)
	}

	user, err := uc.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// Return generic error to prevent email enumeration
		uc.recordFailure(ctx, email, nil, now)
		return nil, invalidCredentials()
	}

	if err := uc.passwordService.VerifyPassword(user.PasswordHash, input.Password); err != nil {
		uc.recordFailure(ctx, email, user, now)
		return nil, invalidCredentials()
	}

	if !user.IsActive {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeAccountInactive,
			"account is inactive",
			domainerror.ErrAccountInactive,
		)
	}

	if !user.EmailVerified {
		return nil, domainerror.NewAuthError(
			domainerror.ErrCodeEmailNotVerified,
			"please verify your email address before logging in",
			domainerror.ErrEmailNotVerified,
		)
	}

	if err := uc.lockoutStore.Clear(ctx, email); err != nil {
		slog.Warn("Failed to clear lockout state", "error", err, "userID", user.ID)
	}

	user.RecordLogin(now)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	tokenPair, err := uc.tokenService.GenerateTokenPair(ctx, adapter.TokenSubject{
		UserID:  user.ID,
		Email:   user.Email,
		IsAdmin: user.IsAdmin,
	}, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &LoginUserOutput{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
		RedirectURL:  "/",
	}, nil
}

func (uc *LoginUserUseCase) recordFailure(ctx context.Context, email string, user *entity.User, now time.Time) {
	state, err := uc.lockoutStore.RecordFailure(ctx, email, now, uc.lockout.Threshold, uc.lockout.Window)
	if err != nil {
		slog.Warn("Failed to record login failure", "error", err)
	} else if state.LockedUntil != nil {
		slog.Info("Account locked after repeated failures", "failures", state.FailedCount, "lockedUntil", state.LockedUntil)
	}

	if user == nil {
		return
	}
	user.RecordFailedLogin(now)
	if err := uc.userRepo.Update(ctx, user); err != nil {
		slog.Warn("Failed to update failed login counter", "error", err, "userID", user.ID)
	}
}

func invalidCredentials() error {
	return domainerror.NewAuthError(
		domainerror.ErrCodeInvalidCredentials,
		"invalid email or password",
		domainerror.ErrInvalidCredentials,
	)
}
