package keycache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Base owns the resolved key config of one node/item pair and builds the
// keys and shard dbs every typed wrapper operates on.
type Base struct {
	res   *Resolver
	db    Database
	keys  KeyStore
	log   Logger
	hooks Hooks
}

// NewBase looks up node/item in keys. The config is captured once; later
// reloads of keys do not affect an existing Base.
func NewBase(node, item string, db Database, keys KeyStore, prefix string) (*Base, error) {
	return newBase(node, item, db, keys, prefix, nil, nil)
}

func newBase(node, item string, db Database, keys KeyStore, prefix string, log Logger, hooks Hooks) (*Base, error) {
	switch {
	case node == "":
		return nil, &ArgumentError{Name: "node"}
	case item == "":
		return nil, &ArgumentError{Name: "item"}
	case db == nil:
		return nil, &ArgumentError{Name: "database"}
	case keys == nil:
		return nil, &ArgumentError{Name: "key store"}
	}
	cfg, ok := keys.Get(node, item)
	if !ok {
		return nil, &KeyError{Node: node, Item: item, Err: ErrConfigNotFound}
	}
	b := &Base{
		res:   NewResolver(cfg, prefix),
		db:    db,
		keys:  keys,
		log:   coalesce[Logger](log, NopLogger{}),
		hooks: coalesce[Hooks](hooks, NopHooks{}),
	}
	b.log.Debug("cache bound", Fields{"node": node, "item": item, "dbs": cfg.Db()})
	return b, nil
}

// KeyConfig returns a copy of the bound config.
func (b *Base) KeyConfig() *KeyConfig { return b.res.Config() }

func (b *Base) Prefix() string   { return b.res.Prefix() }
func (b *Base) NodeName() string { return b.res.NodeName() }

// GetCacheKey builds the full key for args.
func (b *Base) GetCacheKey(args ...any) (string, error) { return b.res.Key(args...) }

// GetCacheDb returns the shard db that key lives in.
func (b *Base) GetCacheDb(key string) int { return b.res.DB(key) }

// target resolves args to a key and the commands of its shard.
func (b *Base) target(args []any) (string, redis.Cmdable, error) {
	key, err := b.res.Key(args...)
	if err != nil {
		return "", nil, err
	}
	return key, b.db.DB(b.res.DB(key)), nil
}

// Remove deletes the key and reports whether it existed.
func (b *Base) Remove(ctx context.Context, args ...any) (bool, error) {
	key, db, err := b.target(args)
	if err != nil {
		return false, err
	}
	n, err := db.Del(ctx, key).Result()
	return n > 0, err
}

func (b *Base) Contains(ctx context.Context, args ...any) (bool, error) {
	key, db, err := b.target(args)
	if err != nil {
		return false, err
	}
	n, err := db.Exists(ctx, key).Result()
	return n > 0, err
}

// Expire applies the configured expiration; without one the key is persisted.
func (b *Base) Expire(ctx context.Context, args ...any) (bool, error) {
	return b.ExpireIn(ctx, b.res.cfg.Expire, args...)
}

// ExpireIn sets a TTL of d; d <= 0 removes any TTL.
func (b *Base) ExpireIn(ctx context.Context, d time.Duration, args ...any) (bool, error) {
	key, db, err := b.target(args)
	if err != nil {
		return false, err
	}
	if d <= 0 {
		return db.Persist(ctx, key).Result()
	}
	return db.Expire(ctx, key, d).Result()
}

// TTL returns the remaining time to live as reported by redis:
// -1 when the key has no TTL and -2 when it does not exist.
func (b *Base) TTL(ctx context.Context, args ...any) (time.Duration, error) {
	key, db, err := b.target(args)
	if err != nil {
		return 0, err
	}
	return db.TTL(ctx, key).Result()
}

// defaultExpire is the configured expiration or 0 (no TTL).
func (b *Base) defaultExpire() time.Duration { return b.res.cfg.Expire }

// sameShard resolves each argument list and requires all keys to share one
// shard db, since redis multi-key commands run within a single db.
func (b *Base) sameShard(argLists ...[]any) ([]string, redis.Cmdable, error) {
	keys := make([]string, len(argLists))
	shard := 0
	for i, args := range argLists {
		key, err := b.res.Key(args...)
		if err != nil {
			return nil, nil, err
		}
		db := b.res.DB(key)
		if i == 0 {
			shard = db
		} else if db != shard {
			return nil, nil, fmt.Errorf("%w: %s on db %d, %s on db %d", ErrCrossShard, keys[0], shard, key, db)
		}
		keys[i] = key
	}
	return keys, b.db.DB(shard), nil
}
