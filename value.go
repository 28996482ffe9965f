package keycache

import (
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	c "github.com/unkn0wn-root/keycache/codec"
)

// values converts between V and the bytes stored in redis.
type values[V any] struct {
	codec c.Codec[V]
	log   Logger
	hooks Hooks
}

func newValues[V any](cd c.Codec[V], log Logger, hooks Hooks) values[V] {
	if cd == nil {
		cd = c.Default[V]()
	}
	return values[V]{codec: cd, log: log, hooks: hooks}
}

func (v values[V]) encode(x V) ([]byte, error) {
	b, err := v.codec.Encode(x)
	if err != nil {
		return nil, fmt.Errorf("keycache: encode: %w", err)
	}
	return b, nil
}

// encodeAll returns redis command arguments.
func (v values[V]) encodeAll(xs []V) ([]any, error) {
	out := make([]any, len(xs))
	for i, x := range xs {
		b, err := v.encode(x)
		if err != nil {
			return nil, err
		}
		out[i] = b
	}
	return out, nil
}

func (v values[V]) decode(key string, b []byte) (V, error) {
	x, err := v.codec.Decode(b)
	if err != nil {
		v.log.Warn("decode failed", Fields{"key": key, "err": err})
		v.hooks.DecodeFailed(key, err)
		var zero V
		return zero, fmt.Errorf("keycache: decode %s: %w", key, err)
	}
	return x, nil
}

func (v values[V]) decodeString(key, s string) (V, error) { return v.decode(key, []byte(s)) }

func (v values[V]) decodeAll(key string, ss []string) ([]V, error) {
	out := make([]V, 0, len(ss))
	for _, s := range ss {
		x, err := v.decode(key, []byte(s))
		if err != nil {
			return nil, err
		}
		out = append(out, x)
	}
	return out, nil
}

// fromCmd decodes a single-value reply; redis.Nil is a miss.
func (v values[V]) fromCmd(key string, cmd *redis.StringCmd) (V, bool, error) {
	var zero V
	raw, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}
	x, err := v.decode(key, raw)
	if err != nil {
		return zero, false, err
	}
	return x, true, nil
}

// bind validates opts and builds the Base shared by every wrapper.
func bind[V any](node, item string, opts Options[V]) (*Base, values[V], error) {
	log := coalesce[Logger](opts.Logger, NopLogger{})
	hooks := coalesce[Hooks](opts.Hooks, NopHooks{})
	b, err := newBase(node, item, opts.Database, opts.Keys, opts.Prefix, log, hooks)
	if err != nil {
		return nil, values[V]{}, err
	}
	return b, newValues(opts.Codec, log, hooks), nil
}
