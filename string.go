package keycache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/unkn0wn-root/keycache/internal/gen"
	"github.com/unkn0wn-root/keycache/internal/wire"
	pr "github.com/unkn0wn-root/keycache/provider"
)

const defaultLocalTTL = time.Second

// StringCache stores one encoded T per key.
//
// With Options.Local set, reads are served from the local tier first and
// redis hits are copied into it for LocalTTL. Writes through this cache drop
// the local entry and bump the key's generation, so a redis read that raced
// with a write never serves the older value from the local tier.
type StringCache[T any] struct {
	*Base
	vals     values[T]
	local    pr.Provider
	localTTL time.Duration
	gens     *gen.Store
}

func NewStringCache[T any](node, item string, opts Options[T]) (*StringCache[T], error) {
	b, vals, err := bind(node, item, opts)
	if err != nil {
		return nil, err
	}
	s := &StringCache[T]{
		Base:     b,
		vals:     vals,
		local:    opts.Local,
		localTTL: opts.LocalTTL,
	}
	if s.localTTL <= 0 {
		s.localTTL = defaultLocalTTL
	}
	if s.local != nil {
		// generations may be forgotten once every entry tagged with them expired
		s.gens = gen.New(2*s.localTTL + time.Minute)
	}
	return s, nil
}

// Close stops the generation pruning of the local tier. The provider and the
// database are owned by the caller and stay open.
func (s *StringCache[T]) Close() {
	if s.gens != nil {
		s.gens.Close()
	}
}

// Get returns the value and true, or the zero T and false on a miss.
func (s *StringCache[T]) Get(ctx context.Context, args ...any) (T, bool, error) {
	var zero T
	key, db, err := s.target(args)
	if err != nil {
		return zero, false, err
	}

	var g uint64
	if s.local != nil {
		g = s.gens.Get(key)
		if v, ok := s.fromLocal(ctx, key, g); ok {
			return v, true, nil
		}
	}

	raw, err := db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	v, err := s.vals.decode(key, raw)
	if err != nil {
		return zero, false, err
	}
	if s.local != nil {
		if ok, _ := s.local.Set(ctx, key, wire.Encode(g, raw), int64(len(raw)), s.localTTL); !ok {
			s.log.Debug("local tier rejected value", Fields{"key": key})
		}
	}
	return v, true, nil
}

// Set writes v with the configured expiration. The result is false when
// the When condition prevented the write.
func (s *StringCache[T]) Set(ctx context.Context, v T, when When, args ...any) (bool, error) {
	return s.SetWithTTL(ctx, v, s.defaultExpire(), when, args...)
}

// SetWithTTL writes v with ttl; ttl <= 0 stores it without expiration.
func (s *StringCache[T]) SetWithTTL(ctx context.Context, v T, ttl time.Duration, when When, args ...any) (bool, error) {
	key, db, err := s.target(args)
	if err != nil {
		return false, err
	}
	raw, err := s.vals.encode(v)
	if err != nil {
		return false, err
	}
	if ttl < 0 {
		ttl = 0
	}

	var ok bool
	switch when {
	case WhenAlways:
		err = db.Set(ctx, key, raw, ttl).Err()
		ok = err == nil
	case WhenNotExists:
		ok, err = db.SetNX(ctx, key, raw, ttl).Result()
	case WhenExists:
		ok, err = db.SetXX(ctx, key, raw, ttl).Result()
	default:
		return false, ErrUnsupportedWhen
	}
	if err != nil {
		return false, err
	}
	s.dropLocal(ctx, key)
	return ok, nil
}

// Delete removes the value and reports whether it existed.
func (s *StringCache[T]) Delete(ctx context.Context, args ...any) (bool, error) {
	key, db, err := s.target(args)
	if err != nil {
		return false, err
	}
	n, err := db.Del(ctx, key).Result()
	if err != nil {
		return false, err
	}
	s.dropLocal(ctx, key)
	return n > 0, nil
}

func (s *StringCache[T]) fromLocal(ctx context.Context, key string, g uint64) (T, bool) {
	var zero T
	b, ok, err := s.local.Get(ctx, key)
	if err != nil || !ok {
		return zero, false
	}
	eg, raw, err := wire.Decode(b)
	if err == nil && eg == g {
		if v, err := s.vals.decode(key, raw); err == nil {
			return v, true
		}
	}
	_ = s.local.Del(ctx, key)
	return zero, false
}

func (s *StringCache[T]) dropLocal(ctx context.Context, key string) {
	if s.local == nil {
		return
	}
	s.gens.Bump(key)
	if err := s.local.Del(ctx, key); err != nil {
		s.log.Warn("local tier delete failed", Fields{"key": key, "err": err})
	}
}
