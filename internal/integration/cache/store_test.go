package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/sparked/backend/internal/application/adapter"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestVerificationStore_ConcurrentIncrements(t *testing.T) {
	ctx := context.Background()
	_, client := newTestRedis(t)
	store := NewVerificationStore(client)

	code := adapter.VerificationCode{Code: "123456", ExpiresAt: time.Now().UTC().Add(5 * time.Minute)}
	if err := store.Save(ctx, "ada@example.com", code, 5*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	seen := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, err := store.IncrementAttempts(ctx, "ada@example.com")
			errs <- err
			seen <- n
		}()
	}
	wg.Wait()
	close(errs)
	close(seen)

	for err := range errs {
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	}
	counts := map[int]bool{}
	for n := range seen {
		counts[n] = true
	}
	if len(counts) != workers {
		t.Errorf("expected %d distinct attempt counts, got %v", workers, counts)
	}

	got, err := store.Get(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Attempts != workers {
		t.Errorf("expected %d attempts, got %d", workers, got.Attempts)
	}
}

func TestVerificationStore(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewVerificationStore(client)

	code := adapter.VerificationCode{Code: "123456", ExpiresAt: time.Now().UTC().Add(5 * time.Minute)}
	if err := store.Save(ctx, "ada@example.com", code, 5*time.Minute); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := store.Get(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || got.Code != "123456" || got.Attempts != 0 {
		t.Fatalf("unexpected code: %+v", got)
	}

	for want := 1; want <= 3; want++ {
		n, err := store.IncrementAttempts(ctx, "ada@example.com")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if n != want {
			t.Errorf("expected %d attempts, got %d", want, n)
		}
	}
	if ttl := mr.TTL(verifyKeyPrefix + "ada@example.com"); ttl <= 0 {
		t.Errorf("expected TTL to be kept after increments, got %v", ttl)
	}

	mr.FastForward(6 * time.Minute)
	got, err = store.Get(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Error("expected code to expire")
	}

	n, err := store.IncrementAttempts(ctx, "ada@example.com")
	if err != nil || n != 0 {
		t.Errorf("expected 0 attempts for missing code, got %d (%v)", n, err)
	}
}

func TestVerificationStore_Cooldown(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewVerificationStore(client)

	ok, err := store.AcquireCooldown(ctx, "ada@example.com", time.Minute)
	if err != nil || !ok {
		t.Fatalf("expected first acquire to succeed, got %v (%v)", ok, err)
	}
	ok, _ = store.AcquireCooldown(ctx, "ada@example.com", time.Minute)
	if ok {
		t.Error("expected second acquire to fail during cooldown")
	}

	mr.FastForward(61 * time.Second)
	ok, _ = store.AcquireCooldown(ctx, "ada@example.com", time.Minute)
	if !ok {
		t.Error("expected acquire to succeed after cooldown")
	}
}

func TestLockoutStore(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	store := NewLockoutStore(client)
	now := time.Now().UTC()

	for i := 1; i < 5; i++ {
		state, err := store.RecordFailure(ctx, "ada@example.com", now, 5, 15*time.Minute)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if state.LockedUntil != nil {
			t.Fatalf("expected no lock after %d failures", i)
		}
	}

	state, err := store.RecordFailure(ctx, "ada@example.com", now, 5, 15*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if state.FailedCount != 5 || !state.IsLocked(now) {
		t.Fatalf("expected lock after 5 failures, got %+v", state)
	}

	got, err := store.Get(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got.IsLocked(now) {
		t.Error("expected stored state to be locked")
	}
	if got.IsLocked(now.Add(16 * time.Minute)) {
		t.Error("expected lock to lapse after the window")
	}

	mr.FastForward(16 * time.Minute)
	got, _ = store.Get(ctx, "ada@example.com")
	if got.FailedCount != 0 {
		t.Errorf("expected state to expire with the lock, got %+v", got)
	}

	_, _ = store.RecordFailure(ctx, "ada@example.com", now, 5, 15*time.Minute)
	if err := store.Clear(ctx, "ada@example.com"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, _ = store.Get(ctx, "ada@example.com")
	if got.FailedCount != 0 {
		t.Errorf("expected cleared state, got %+v", got)
	}
}
