package auth

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"net/url"
	"time"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/domain/entity"
)

// VerificationSettings controls email verification codes.
type VerificationSettings struct {
	CodeTTL        time.Duration
	MaxAttempts    int
	ResendCooldown time.Duration
	AppBaseURL     string
}

// CodeGenerator produces a fresh 6-digit verification code.
type CodeGenerator func() (string, error)

// GenerateVerificationCode returns a uniformly random 6-digit code.
func GenerateVerificationCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("failed to generate verification code: %w", err)
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// codeIssuer stores a new code for a user and queues the email carrying it.
type codeIssuer struct {
	store        adapter.VerificationCodeStore
	emailService adapter.EmailService
	settings     VerificationSettings
	generate     CodeGenerator
	now          func() time.Time
}

func newCodeIssuer(
	store adapter.VerificationCodeStore,
	emailService adapter.EmailService,
	settings VerificationSettings,
	generate CodeGenerator,
) *codeIssuer {
	if generate == nil {
		generate = GenerateVerificationCode
	}
	return &codeIssuer{
		store:        store,
		emailService: emailService,
		settings:     settings,
		generate:     generate,
		now:          time.Now,
	}
}

func (i *codeIssuer) issue(ctx context.Context, user *entity.User) error {
	code, err := i.generate()
	if err != nil {
		return err
	}

	pending := adapter.VerificationCode{
		Code:      code,
		ExpiresAt: i.now().UTC().Add(i.settings.CodeTTL),
	}
	if err := i.store.Save(ctx, user.Email, pending, i.settings.CodeTTL); err != nil {
		return fmt.Errorf("failed to store verification code: %w", err)
	}

	if i.emailService == nil {
		return nil
	}
	err = i.emailService.QueueVerificationCodeEmail(ctx, adapter.QueueVerificationCodeInput{
		UserEmail: user.Email,
		UserName:  user.FullName,
		Code:      code,
		VerifyURL: verifyRedirect(i.settings.AppBaseURL, user.Email),
		ExpiresIn: fmt.Sprintf("%d minutes", int(i.settings.CodeTTL.Minutes())),
	})
	if err != nil {
		return fmt.Errorf("failed to queue verification email: %w", err)
	}
	return nil
}

// verifyRedirect builds the verification page location for an email.
func verifyRedirect(base, email string) string {
	return base + "/verify?email=" + url.QueryEscape(email)
}
