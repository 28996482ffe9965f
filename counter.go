package keycache

import "context"

// Integer is satisfied by the value types redis can count with INCRBY.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Increment adds delta to the counter stored by s and returns the new value.
// The counter must be stored as decimal text, which codec.Default and
// codec.JSON produce for integers.
func Increment[N Integer](ctx context.Context, s *StringCache[N], delta N, args ...any) (N, error) {
	return incrBy(ctx, s, int64(delta), args)
}

func Decrement[N Integer](ctx context.Context, s *StringCache[N], delta N, args ...any) (N, error) {
	return incrBy(ctx, s, -int64(delta), args)
}

func incrBy[N Integer](ctx context.Context, s *StringCache[N], delta int64, args []any) (N, error) {
	key, db, err := s.target(args)
	if err != nil {
		return 0, err
	}
	n, err := db.IncrBy(ctx, key, delta).Result()
	if err != nil {
		return 0, err
	}
	s.dropLocal(ctx, key)
	return N(n), nil
}

// HashIncrement adds delta to one field of the hash stored by h.
func HashIncrement[F comparable, N Integer](ctx context.Context, h *HashCache[F, N], field F, delta N, args ...any) (N, error) {
	return hashIncrBy(ctx, h, field, int64(delta), args)
}

func HashDecrement[F comparable, N Integer](ctx context.Context, h *HashCache[F, N], field F, delta N, args ...any) (N, error) {
	return hashIncrBy(ctx, h, field, -int64(delta), args)
}

func hashIncrBy[F comparable, N Integer](ctx context.Context, h *HashCache[F, N], field F, delta int64, args []any) (N, error) {
	key, db, err := h.target(args)
	if err != nil {
		return 0, err
	}
	f, err := h.fields.encode(field)
	if err != nil {
		return 0, err
	}
	n, err := db.HIncrBy(ctx, key, string(f), delta).Result()
	if err != nil {
		return 0, err
	}
	return N(n), nil
}
