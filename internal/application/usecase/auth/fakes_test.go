package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/sparked/backend/internal/application/adapter"
	"github.com/sparked/backend/internal/domain/entity"
	domainerror "github.com/sparked/backend/internal/domain/error"
	"github.com/sparked/backend/internal/domain/valueobject"
)

type fakeUserRepo struct {
	users   map[string]*entity.User
	updates int
}

func newFakeUserRepo(users ...*entity.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*entity.User{}}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, domainerror.ErrUserNotFound
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.updates++
	r.users[user.Email] = user
	return nil
}

func (r *fakeUserRepo) Delete(_ context.Context, id uuid.UUID) error {
	for email, u := range r.users {
		if u.ID == id {
			delete(r.users, email)
		}
	}
	return nil
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.users[email]
	return ok, nil
}

func (r *fakeUserRepo) ExistsByPhone(_ context.Context, phone string) (bool, error) {
	for _, u := range r.users {
		if u.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) ExistsByFullName(_ context.Context, fullName string) (bool, error) {
	for _, u := range r.users {
		if u.FullName == fullName {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeUserRepo) List(_ context.Context, _ adapter.ListUsersFilter) ([]*entity.User, int64, error) {
	var out []*entity.User
	for _, u := range r.users {
		out = append(out, u)
	}
	return out, int64(len(out)), nil
}

// fakePasswordService stores passwords with a visible prefix instead of hashing.
// Like bcrypt, it refuses passwords longer than adapter.MaxPasswordBytes.
type fakePasswordService struct{}

func (fakePasswordService) HashPassword(password string) (string, error) {
	if len(password) > adapter.MaxPasswordBytes {
		return "", errors.New("bcrypt: password length exceeds 72 bytes")
	}
	return "hashed:" + password, nil
}

func (fakePasswordService) VerifyPassword(hashedPassword, password string) error {
	if hashedPassword != "hashed:"+password {
		return errors.New("mismatch")
	}
	return nil
}

func (fakePasswordService) EvaluateStrength(password string) valueobject.PasswordEvaluation {
	return valueobject.EvaluatePassword(password)
}

func (fakePasswordService) ValidatePasswordStrength(password string) error {
	if !valueobject.EvaluatePassword(password).IsStrong() {
		return domainerror.ErrWeakPassword
	}
	return nil
}

type fakeTokenService struct {
	revoked    map[string]bool
	revokedAll []uuid.UUID
	issued     int
}

func newFakeTokenService() *fakeTokenService {
	return &fakeTokenService{revoked: map[string]bool{}}
}

func (s *fakeTokenService) GenerateTokenPair(_ context.Context, subject adapter.TokenSubject, _ bool) (*adapter.TokenPair, error) {
	s.issued++
	return &adapter.TokenPair{
		AccessToken:  "access:" + subject.UserID.String(),
		RefreshToken: "refresh:" + subject.UserID.String(),
	}, nil
}

func (s *fakeTokenService) ValidateAccessToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	return s.claims(token, "access:")
}

func (s *fakeTokenService) ValidateRefreshToken(_ context.Context, token string) (*adapter.TokenClaims, error) {
	if s.revoked[token] {
		return nil, domainerror.ErrInvalidToken
	}
	return s.claims(token, "refresh:")
}

func (s *fakeTokenService) claims(token, prefix string) (*adapter.TokenClaims, error) {
	id, err := uuid.Parse(strings.TrimPrefix(token, prefix))
	if err != nil || !strings.HasPrefix(token, prefix) {
		return nil, domainerror.ErrInvalidToken
	}
	return &adapter.TokenClaims{UserID: id}, nil
}

func (s *fakeTokenService) InvalidateRefreshToken(_ context.Context, token string) error {
	s.revoked[token] = true
	return nil
}

func (s *fakeTokenService) InvalidateAllUserTokens(_ context.Context, userID uuid.UUID) error {
	s.revokedAll = append(s.revokedAll, userID)
	return nil
}

type fakeCodeStore struct {
	codes     map[string]*adapter.VerificationCode
	cooldowns map[string]bool
}

func newFakeCodeStore() *fakeCodeStore {
	return &fakeCodeStore{
		codes:     map[string]*adapter.VerificationCode{},
		cooldowns: map[string]bool{},
	}
}

func (s *fakeCodeStore) Save(_ context.Context, email string, code adapter.VerificationCode, _ time.Duration) error {
	c := code
	s.codes[email] = &c
	return nil
}

func (s *fakeCodeStore) Get(_ context.Context, email string) (*adapter.VerificationCode, error) {
	return s.codes[email], nil
}

func (s *fakeCodeStore) IncrementAttempts(_ context.Context, email string) (int, error) {
	c, ok := s.codes[email]
	if !ok {
		return 0, nil
	}
	c.Attempts++
	return c.Attempts, nil
}

func (s *fakeCodeStore) Delete(_ context.Context, email string) error {
	delete(s.codes, email)
	return nil
}

func (s *fakeCodeStore) AcquireCooldown(_ context.Context, email string, _ time.Duration) (bool, error) {
	if s.cooldowns[email] {
		return false, nil
	}
	s.cooldowns[email] = true
	return true, nil
}

type fakeLockoutStore struct {
	states map[string]adapter.LockoutState
}

func newFakeLockoutStore() *fakeLockoutStore {
	return &fakeLockoutStore{states: map[string]adapter.LockoutState{}}
}

func (s *fakeLockoutStore) Get(_ context.Context, key string) (adapter.LockoutState, error) {
	return s.states[key], nil
}

func (s *fakeLockoutStore) RecordFailure(_ context.Context, key string, now time.Time, threshold int, window time.Duration) (adapter.LockoutState, error) {
	state := s.states[key]
	state.FailedCount++
	if state.FailedCount >= threshold {
		until := now.Add(window)
		state.LockedUntil = &until
	}
	s.states[key] = state
	return state, nil
}

func (s *fakeLockoutStore) Clear(_ context.Context, key string) error {
	delete(s.states, key)
	return nil
}

type fakeEmailService struct {
	verification []adapter.QueueVerificationCodeInput
	resets       []adapter.QueuePasswordResetInput
}

func (s *fakeEmailService) QueueVerificationCodeEmail(_ context.Context, input adapter.QueueVerificationCodeInput) error {
	s.verification = append(s.verification, input)
	return nil
}

func (s *fakeEmailService) QueuePasswordResetEmail(_ context.Context, input adapter.QueuePasswordResetInput) error {
	s.resets = append(s.resets, input)
	return nil
}

func testVerificationSettings() VerificationSettings {
	return VerificationSettings{
		CodeTTL:        5 * time.Minute,
		MaxAttempts:    5,
		ResendCooldown: time.Minute,
		AppBaseURL:     "http://localhost:5000",
	}
}

func fixedCode(code string) CodeGenerator {
	return func() (string, error) { return code, nil }
}

func verifiedUser(email, password string) *entity.User {
	u := entity.NewUser("Ada Lovelace", email, "5551234567", "hashed:"+password)
	u.EmailVerified = true
	return u
}

func authCode(err error) domainerror.AuthErrorCode {
	var authErr *domainerror.AuthError
	if errors.As(err, &authErr) {
		return authErr.Code
	}
	return ""
}
