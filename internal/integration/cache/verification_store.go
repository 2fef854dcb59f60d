// Package cache implements short-lived state stores backed by Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sparked/backend/internal/application/adapter"
)

const (
	verifyKeyPrefix   = "auth:verify:"
	cooldownKeyPrefix = "auth:verify:cooldown:"
)

// verificationStore keeps pending verification codes as JSON values with a TTL.
type verificationStore struct {
	client *redis.Client
}

// NewVerificationStore creates a verification code store backed by Redis.
func NewVerificationStore(client *redis.Client) adapter.VerificationCodeStore {
	return &verificationStore{client: client}
}

func (s *verificationStore) Save(ctx context.Context, email string, code adapter.VerificationCode, ttl time.Duration) error {
	raw, err := json.Marshal(code)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, verifyKeyPrefix+email, raw, ttl).Err()
}

func (s *verificationStore) Get(ctx context.Context, email string) (*adapter.VerificationCode, error) {
	raw, err := s.client.Get(ctx, verifyKeyPrefix+email).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var out adapter.VerificationCode
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// maxTxRetries bounds how often an optimistic transaction is retried after a
// concurrent writer touched its watched key.
const maxTxRetries = 10

// IncrementAttempts rewrites the stored code with one more attempt while keeping its TTL.
// A missing code reports 0 attempts.
func (s *verificationStore) IncrementAttempts(ctx context.Context, email string) (int, error) {
	key := verifyKeyPrefix + email
	attempts := 0

	increment := func(tx *redis.Tx) error {
		attempts = 0
		raw, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return nil
			}
			return err
		}
		var code adapter.VerificationCode
		if err := json.Unmarshal(raw, &code); err != nil {
			return err
		}
		code.Attempts++

		updated, err := json.Marshal(code)
		if err != nil {
			return err
		}
		_, err = tx.TxPipelined(ctx, func(p redis.Pipeliner) error {
			p.SetArgs(ctx, key, updated, redis.SetArgs{KeepTTL: true})
			return nil
		})
		if err == nil {
			attempts = code.Attempts
		}
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, increment, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if err != nil {
			return 0, err
		}
		return attempts, nil
	}
	return 0, fmt.Errorf("increment attempts for %s: %w", email, redis.TxFailedErr)
}

func (s *verificationStore) Delete(ctx context.Context, email string) error {
	return s.client.Del(ctx, verifyKeyPrefix+email).Err()
}

func (s *verificationStore) AcquireCooldown(ctx context.Context, email string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, cooldownKeyPrefix+email, 1, ttl).Result()
}
