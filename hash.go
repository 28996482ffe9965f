package keycache

import (
	"context"

	c "github.com/unkn0wn-root/keycache/codec"
)

// HashCache stores a redis hash of encoded F fields to encoded V values.
// Fields use codec.Default[F] unless a field codec is given.
type HashCache[F comparable, V any] struct {
	*Base
	vals   values[V]
	fields values[F]
}

func NewHashCache[F comparable, V any](node, item string, opts Options[V], fieldCodec c.Codec[F]) (*HashCache[F, V], error) {
	b, vals, err := bind(node, item, opts)
	if err != nil {
		return nil, err
	}
	return &HashCache[F, V]{
		Base:   b,
		vals:   vals,
		fields: newValues(fieldCodec, b.log, b.hooks),
	}, nil
}

func (h *HashCache[F, V]) field(f F) (string, error) {
	b, err := h.fields.encode(f)
	return string(b), err
}

func (h *HashCache[F, V]) GetAll(ctx context.Context, args ...any) (map[F]V, error) {
	key, db, err := h.target(args)
	if err != nil {
		return nil, err
	}
	m, err := db.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	out := make(map[F]V, len(m))
	for fs, vs := range m {
		f, err := h.fields.decodeString(key, fs)
		if err != nil {
			return nil, err
		}
		v, err := h.vals.decodeString(key, vs)
		if err != nil {
			return nil, err
		}
		out[f] = v
	}
	return out, nil
}

func (h *HashCache[F, V]) Get(ctx context.Context, field F, args ...any) (V, bool, error) {
	var zero V
	key, db, err := h.target(args)
	if err != nil {
		return zero, false, err
	}
	f, err := h.field(field)
	if err != nil {
		return zero, false, err
	}
	return h.vals.fromCmd(key, db.HGet(ctx, key, f))
}

// GetMany returns the values of the fields that exist; missing fields are
// absent from the map.
func (h *HashCache[F, V]) GetMany(ctx context.Context, fields []F, args ...any) (map[F]V, error) {
	key, db, err := h.target(args)
	if err != nil {
		return nil, err
	}
	out := make(map[F]V, len(fields))
	if len(fields) == 0 {
		return out, nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		if names[i], err = h.field(f); err != nil {
			return nil, err
		}
	}
	res, err := db.HMGet(ctx, key, names...).Result()
	if err != nil {
		return nil, err
	}
	for i, r := range res {
		s, ok := r.(string)
		if !ok {
			continue // nil for a missing field
		}
		v, err := h.vals.decodeString(key, s)
		if err != nil {
			return nil, err
		}
		out[fields[i]] = v
	}
	return out, nil
}

func (h *HashCache[F, V]) Fields(ctx context.Context, args ...any) ([]F, error) {
	key, db, err := h.target(args)
	if err != nil {
		return nil, err
	}
	ss, err := db.HKeys(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return h.fields.decodeAll(key, ss)
}

func (h *HashCache[F, V]) Values(ctx context.Context, args ...any) ([]V, error) {
	key, db, err := h.target(args)
	if err != nil {
		return nil, err
	}
	ss, err := db.HVals(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return h.vals.decodeAll(key, ss)
}

func (h *HashCache[F, V]) Count(ctx context.Context, args ...any) (int64, error) {
	key, db, err := h.target(args)
	if err != nil {
		return 0, err
	}
	return db.HLen(ctx, key).Result()
}

func (h *HashCache[F, V]) Exists(ctx context.Context, field F, args ...any) (bool, error) {
	key, db, err := h.target(args)
	if err != nil {
		return false, err
	}
	f, err := h.field(field)
	if err != nil {
		return false, err
	}
	return db.HExists(ctx, key, f).Result()
}

// Set writes one field. WhenNotExists maps to HSETNX; redis has no
// conditional "only if present" hash write, so WhenExists is rejected.
// The result reports whether a value was written.
func (h *HashCache[F, V]) Set(ctx context.Context, field F, v V, when When, args ...any) (bool, error) {
	if when != WhenAlways && when != WhenNotExists {
		return false, ErrUnsupportedWhen
	}
	key, db, err := h.target(args)
	if err != nil {
		return false, err
	}
	f, err := h.field(field)
	if err != nil {
		return false, err
	}
	raw, err := h.vals.encode(v)
	if err != nil {
		return false, err
	}
	if when == WhenNotExists {
		return db.HSetNX(ctx, key, f, raw).Result()
	}
	if err := db.HSet(ctx, key, f, raw).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// SetAll writes every entry of m in one HSET.
func (h *HashCache[F, V]) SetAll(ctx context.Context, m map[F]V, args ...any) error {
	key, db, err := h.target(args)
	if err != nil {
		return err
	}
	if len(m) == 0 {
		return nil
	}
	pairs := make([]any, 0, 2*len(m))
	for field, v := range m {
		f, err := h.field(field)
		if err != nil {
			return err
		}
		raw, err := h.vals.encode(v)
		if err != nil {
			return err
		}
		pairs = append(pairs, f, raw)
	}
	return db.HSet(ctx, key, pairs...).Err()
}

// Delete removes fields and returns how many existed.
func (h *HashCache[F, V]) Delete(ctx context.Context, fields []F, args ...any) (int64, error) {
	key, db, err := h.target(args)
	if err != nil {
		return 0, err
	}
	if len(fields) == 0 {
		return 0, nil
	}
	names := make([]string, len(fields))
	for i, f := range fields {
		if names[i], err = h.field(f); err != nil {
			return 0, err
		}
	}
	return db.HDel(ctx, key, names...).Result()
}
