package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/integration/persistence/model"
)

type memoryTokenRepo struct {
	refresh map[string]bool
	owners  map[string]uuid.UUID
	resets  map[string]*model.PasswordResetTokenModel
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{
		refresh: map[string]bool{},
		owners:  map[string]uuid.UUID{},
		resets:  map[string]*model.PasswordResetTokenModel{},
	}
}

func (r *memoryTokenRepo) SaveRefreshToken(_ context.Context, token string, userID uuid.UUID, _ time.Time) error {
	r.refresh[token] = true
	r.owners[token] = userID
	return nil
}

func (r *memoryTokenRepo) IsRefreshTokenValid(_ context.Context, token string) (bool, error) {
	return r.refresh[token], nil
}

func (r *memoryTokenRepo) InvalidateRefreshToken(_ context.Context, token string) error {
	r.refresh[token] = false
	return nil
}

func (r *memoryTokenRepo) InvalidateAllUserRefreshTokens(_ context.Context, userID uuid.UUID) error {
	for token, owner := range r.owners {
		if owner == userID {
			r.refresh[token] = false
		}
	}
	return nil
}

func (r *memoryTokenRepo) SavePasswordResetToken(_ context.Context, token string, userID uuid.UUID, email string, expiresAt time.Time) error {
	r.resets[token] = &model.PasswordResetTokenModel{Token: token, UserID: userID, Email: email, ExpiresAt: expiresAt}
	return nil
}

func (r *memoryTokenRepo) GetPasswordResetToken(_ context.Context, token string) (*model.PasswordResetTokenModel, error) {
	return r.resets[token], nil
}

func (r *memoryTokenRepo) InvalidatePasswordResetToken(_ context.Context, token string) error {
	delete(r.resets, token)
	return nil
}

func (r *memoryTokenRepo) PurgeExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func TestTokenService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := newMemoryTokenRepo()
	svc := NewTokenService("test-secret", DefaultTokenDurations(), repo)
	subject := adapter.TokenSubject{UserID: uuid.New(), Email: "ada@example.com", IsAdmin: true}

	pair, err := svc.GenerateTokenPair(ctx, subject, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.ExpiresIn != 15*time.Minute {
		t.Errorf("expected 15m access token, got %v", pair.ExpiresIn)
	}

	claims, err := svc.ValidateAccessToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if claims.UserID != subject.UserID || claims.Email != subject.Email || !claims.IsAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := svc.ValidateAccessToken(ctx, pair.RefreshToken); err == nil {
		t.Error("expected refresh token to be rejected as access token")
	}
	if _, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken); err != nil {
		t.Errorf("expected refresh token to validate, got %v", err)
	}

	if err := svc.InvalidateAllUserTokens(ctx, subject.UserID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ValidateRefreshToken(ctx, pair.RefreshToken); err == nil {
		t.Error("expected revoked refresh token to be rejected")
	}
}

func TestTokenService_RememberMe(t *testing.T) {
	svc := NewTokenService("test-secret", DefaultTokenDurations(), newMemoryTokenRepo())
	pair, err := svc.GenerateTokenPair(context.Background(), adapter.TokenSubject{UserID: uuid.New()}, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pair.ExpiresIn != 7*24*time.Hour {
		t.Errorf("expected 7d access token, got %v", pair.ExpiresIn)
	}
}

func TestTokenService_RejectsForeignSecret(t *testing.T) {
	ctx := context.Background()
	issuer := NewTokenService("secret-a", DefaultTokenDurations(), newMemoryTokenRepo())
	verifier := NewTokenService("secret-b", DefaultTokenDurations(), newMemoryTokenRepo())

	pair, err := issuer.GenerateTokenPair(ctx, adapter.TokenSubject{UserID: uuid.New()}, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := verifier.ValidateAccessToken(ctx, pair.AccessToken); err == nil {
		t.Error("expected token signed with another secret to be rejected")
	}
}

func TestPasswordResetTokenService(t *testing.T) {
	ctx := context.Background()
	svc := NewPasswordResetTokenService(time.Hour, newMemoryTokenRepo())
	userID := uuid.New()

	token, err := svc.GenerateResetToken(ctx, userID, "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(token.Token) != 64 {
		t.Errorf("expected 64 hex characters, got %d", len(token.Token))
	}

	found, err := svc.ValidateResetToken(ctx, token.Token)
	if err != nil || found.UserID != userID {
		t.Fatalf("expected token for %s, got %+v (%v)", userID, found, err)
	}

	if err := svc.InvalidateResetToken(ctx, token.Token); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := svc.ValidateResetToken(ctx, token.Token); err == nil {
		t.Error("expected used token to be rejected")
	}
}
