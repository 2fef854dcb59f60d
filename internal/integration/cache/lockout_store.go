package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sparked/backend/internal/application/adapter"
)

const (
	lockoutKeyPrefix = "auth:lockout:"
	// failures below the threshold are forgotten after this long
	lockoutIdleTTL = 24 * time.Hour
)

// lockoutStore tracks failed logins in a Redis hash per account.
type lockoutStore struct {
	client *redis.Client
}

// NewLockoutStore creates a lockout store backed by Redis hashes.
func NewLockoutStore(client *redis.Client) adapter.LockoutStore {
	return &lockoutStore{client: client}
}

func (s *lockoutStore) Get(ctx context.Context, key string) (adapter.LockoutState, error) {
	data, err := s.client.HGetAll(ctx, lockoutKeyPrefix+key).Result()
	if err != nil {
		return adapter.LockoutState{}, err
	}

	state := adapter.LockoutState{}
	if raw, ok := data["failed_count"]; ok {
		if n, convErr := strconv.Atoi(raw); convErr == nil {
			state.FailedCount = n
		}
	}
	if raw, ok := data["locked_until"]; ok && raw != "" {
		if unix, convErr := strconv.ParseInt(raw, 10, 64); convErr == nil && unix > 0 {
			t := time.Unix(unix, 0).UTC()
			state.LockedUntil = &t
		}
	}
	return state, nil
}

func (s *lockoutStore) RecordFailure(ctx context.Context, key string, now time.Time, threshold int, lockoutWindow time.Duration) (adapter.LockoutState, error) {
	redisKey := lockoutKeyPrefix + key

	count, err := s.client.HIncrBy(ctx, redisKey, "failed_count", 1).Result()
	if err != nil {
		return adapter.LockoutState{}, err
	}

	state := adapter.LockoutState{FailedCount: int(count)}
	if int(count) < threshold {
		if err := s.client.Expire(ctx, redisKey, lockoutIdleTTL).Err(); err != nil {
			return adapter.LockoutState{}, err
		}
		return state, nil
	}

	// The counter restarts once the lock has run its course
	lockedUntil := now.Add(lockoutWindow).UTC()
	_, err = s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, redisKey, "locked_until", lockedUntil.Unix())
		p.Expire(ctx, redisKey, lockoutWindow)
		return nil
	})
	if err != nil {
		return adapter.LockoutState{}, err
	}
	state.LockedUntil = &lockedUntil
	return state, nil
}

func (s *lockoutStore) Clear(ctx context.Context, key string) error {
	return s.client.Del(ctx, lockoutKeyPrefix+key).Err()
}
