package keycache

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLockCache(t *testing.T) {
	mr, pool := newTestRedis(t)
	ctx := context.Background()
	l, err := NewDistributedLockDb("Job", testOptions[string](t, pool))
	if err != nil {
		t.Fatalf("NewDistributedLockDb: %v", err)
	}

	token, ok, err := l.TryLock(ctx, 0, "nightly")
	if err != nil || !ok || token == "" {
		t.Fatalf("TryLock = %q %v %v", token, ok, err)
	}
	key, _ := l.GetCacheKey("nightly")
	if ttl := mr.TTL(key); ttl != 30*time.Second {
		t.Fatalf("configured lock ttl not applied: %v", ttl)
	}

	if _, ok, err := l.TryLock(ctx, time.Minute, "nightly"); err != nil || ok {
		t.Fatalf("second TryLock should fail, ok=%v err=%v", ok, err)
	}
	if ok, err := l.Unlock(ctx, "someone-else", "nightly"); err != nil || ok {
		t.Fatalf("foreign token must not unlock, ok=%v err=%v", ok, err)
	}
	if ok, err := l.Unlock(ctx, token, "nightly"); err != nil || !ok {
		t.Fatalf("Unlock = %v %v", ok, err)
	}
	if mr.Exists(key) {
		t.Fatalf("lock key should be deleted")
	}
	if _, err := l.Unlock(ctx, "", "nightly"); !errors.Is(err, ErrArgumentMissing) {
		t.Fatalf("expected ErrArgumentMissing, got %v", err)
	}
}

func TestLockCacheRequiresTTL(t *testing.T) {
	_, pool := newTestRedis(t)
	l, err := NewLockCache("SortSetDb", "Rank", testOptions[string](t, pool))
	if err != nil {
		t.Fatal(err)
	}
	if _, _, err := l.TryLock(context.Background(), 0); !errors.Is(err, ErrArgumentMissing) {
		t.Fatalf("expected ErrArgumentMissing without ttl, got %v", err)
	}
}
