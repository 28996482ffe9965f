package keycache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// unlockScript deletes the lock only while it still holds the caller's token.
var unlockScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockCache is a single-instance redis lock: SET NX with a random token,
// released by compare-and-delete.
type LockCache struct {
	*Base
}

func NewLockCache(node, item string, opts Options[string]) (*LockCache, error) {
	b, _, err := bind(node, item, opts)
	if err != nil {
		return nil, err
	}
	return &LockCache{Base: b}, nil
}

// TryLock acquires the lock for ttl, or for the configured expiration when
// ttl <= 0. It returns the token needed by Unlock and false when the lock
// is held elsewhere.
func (l *LockCache) TryLock(ctx context.Context, ttl time.Duration, args ...any) (string, bool, error) {
	if ttl <= 0 {
		ttl = l.defaultExpire()
	}
	if ttl <= 0 {
		return "", false, &ArgumentError{Name: "ttl"}
	}
	key, db, err := l.target(args)
	if err != nil {
		return "", false, err
	}
	token := uuid.NewString()
	ok, err := db.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return "", false, err
	}
	return token, true, nil
}

// Unlock releases the lock if token still owns it.
func (l *LockCache) Unlock(ctx context.Context, token string, args ...any) (bool, error) {
	if token == "" {
		return false, &ArgumentError{Name: "token"}
	}
	key, db, err := l.target(args)
	if err != nil {
		return false, err
	}
	n, err := unlockScript.Run(ctx, db, []string{key}, token).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
