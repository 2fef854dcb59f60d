package auth

import (
	"context"
	"log/slog"

	"github.com/sparked/backend/internal/application/adapter"
)

// LogoutUserInput represents the input for user logout.
type LogoutUserInput struct {
	RefreshToken string
}

// LogoutUserOutput represents the output of user logout.
type LogoutUserOutput struct {
	Message     string
	RedirectURL string
}

// LogoutUserUseCase handles user logout logic.
type LogoutUserUseCase struct {
	tokenService adapter.TokenService
}

// NewLogoutUserUseCase creates a new LogoutUserUseCase instance.
func NewLogoutUserUseCase(tokenService adapter.TokenService) *LogoutUserUseCase {
	return &LogoutUserUseCase{
		tokenService: tokenService,
	}
}

// Execute performs the user logout by invalidating the refresh token.
func (uc *LogoutUserUseCase) Execute(ctx context.Context, input LogoutUserInput) (*LogoutUserOutput, error) {
	// The token might already be invalid; logout succeeds regardless
	if input.RefreshToken != "" {
		if err := uc.tokenService.InvalidateRefreshToken(ctx, input.RefreshToken); err != nil {
			slog.Debug("Refresh token not invalidated on logout", "error", err)
		}
	}

	return &LogoutUserOutput{
		Message:     "Successfully logged out",
		RedirectURL: "/login",
	}, nil
}
