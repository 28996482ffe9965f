package keycache

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// SetCache stores a redis set of encoded T. Members compare by their encoded
// bytes, so T's codec must be deterministic (see codec.NewCBOR).
type SetCache[T any] struct {
	*Base
	vals values[T]
}

func NewSetCache[T any](node, item string, opts Options[T]) (*SetCache[T], error) {
	b, vals, err := bind(node, item, opts)
	if err != nil {
		return nil, err
	}
	return &SetCache[T]{Base: b, vals: vals}, nil
}

// Add returns the number of members that were not already present.
func (s *SetCache[T]) Add(ctx context.Context, members []T, args ...any) (int64, error) {
	key, db, err := s.target(args)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}
	raws, err := s.vals.encodeAll(members)
	if err != nil {
		return 0, err
	}
	return db.SAdd(ctx, key, raws...).Result()
}

func (s *SetCache[T]) Exists(ctx context.Context, member T, args ...any) (bool, error) {
	key, db, err := s.target(args)
	if err != nil {
		return false, err
	}
	raw, err := s.vals.encode(member)
	if err != nil {
		return false, err
	}
	return db.SIsMember(ctx, key, raw).Result()
}

func (s *SetCache[T]) Members(ctx context.Context, args ...any) ([]T, error) {
	key, db, err := s.target(args)
	if err != nil {
		return nil, err
	}
	ss, err := db.SMembers(ctx, key).Result()
	if err != nil {
		return nil, err
	}
	return s.vals.decodeAll(key, ss)
}

func (s *SetCache[T]) Count(ctx context.Context, args ...any) (int64, error) {
	key, db, err := s.target(args)
	if err != nil {
		return 0, err
	}
	return db.SCard(ctx, key).Result()
}

// Random returns one member without removing it.
func (s *SetCache[T]) Random(ctx context.Context, args ...any) (T, bool, error) {
	key, db, err := s.target(args)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return s.vals.fromCmd(key, db.SRandMember(ctx, key))
}

// RandomN returns up to n distinct members without removing them.
func (s *SetCache[T]) RandomN(ctx context.Context, n int64, args ...any) ([]T, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: count %d", ErrInvalidArgument, n)
	}
	key, db, err := s.target(args)
	if err != nil {
		return nil, err
	}
	ss, err := db.SRandMemberN(ctx, key, n).Result()
	if err != nil {
		return nil, err
	}
	return s.vals.decodeAll(key, ss)
}

// Pop removes and returns one random member.
func (s *SetCache[T]) Pop(ctx context.Context, args ...any) (T, bool, error) {
	key, db, err := s.target(args)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return s.vals.fromCmd(key, db.SPop(ctx, key))
}

func (s *SetCache[T]) PopN(ctx context.Context, n int64, args ...any) ([]T, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: count %d", ErrInvalidArgument, n)
	}
	key, db, err := s.target(args)
	if err != nil {
		return nil, err
	}
	ss, err := db.SPopN(ctx, key, n).Result()
	if err != nil {
		return nil, err
	}
	return s.vals.decodeAll(key, ss)
}

// Delete removes members and returns how many were present.
func (s *SetCache[T]) Delete(ctx context.Context, members []T, args ...any) (int64, error) {
	key, db, err := s.target(args)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}
	raws, err := s.vals.encodeAll(members)
	if err != nil {
		return 0, err
	}
	return db.SRem(ctx, key, raws...).Result()
}

// Move moves member from the set at src to the set at dst.
func (s *SetCache[T]) Move(ctx context.Context, member T, src, dst []any) (bool, error) {
	keys, db, err := s.distinct(src, dst)
	if err != nil {
		return false, err
	}
	raw, err := s.vals.encode(member)
	if err != nil {
		return false, err
	}
	return db.SMove(ctx, keys[0], keys[1], raw).Result()
}

// Join combines the sets at first and second.
func (s *SetCache[T]) Join(ctx context.Context, op SetOp, first, second []any) ([]T, error) {
	keys, db, err := s.distinct(first, second)
	if err != nil {
		return nil, err
	}
	var cmd *redis.StringSliceCmd
	switch op {
	case Union:
		cmd = db.SUnion(ctx, keys...)
	case Intersect:
		cmd = db.SInter(ctx, keys...)
	case Difference:
		cmd = db.SDiff(ctx, keys...)
	default:
		return nil, fmt.Errorf("%w: set op %d", ErrInvalidArgument, op)
	}
	ss, err := cmd.Result()
	if err != nil {
		return nil, err
	}
	return s.vals.decodeAll(keys[0], ss)
}

// JoinStore combines first and second into the set at dst, replacing it,
// and returns the size of the result.
func (s *SetCache[T]) JoinStore(ctx context.Context, op SetOp, dst, first, second []any) (int64, error) {
	keys, db, err := s.distinct(first, second)
	if err != nil {
		return 0, err
	}
	all, _, err := s.sameShard(dst, first)
	if err != nil {
		return 0, err
	}
	dstKey := all[0]
	switch op {
	case Union:
		return db.SUnionStore(ctx, dstKey, keys...).Result()
	case Intersect:
		return db.SInterStore(ctx, dstKey, keys...).Result()
	case Difference:
		return db.SDiffStore(ctx, dstKey, keys...).Result()
	default:
		return 0, fmt.Errorf("%w: set op %d", ErrInvalidArgument, op)
	}
}

// Scan iterates members with SSCAN. match is a glob over the encoded member
// bytes ("" matches all). A returned cursor of 0 ends the iteration.
func (s *SetCache[T]) Scan(ctx context.Context, cursor uint64, match string, count int64, args ...any) ([]T, uint64, error) {
	key, db, err := s.target(args)
	if err != nil {
		return nil, 0, err
	}
	ss, next, err := db.SScan(ctx, key, cursor, match, count).Result()
	if err != nil {
		return nil, 0, err
	}
	vs, err := s.vals.decodeAll(key, ss)
	if err != nil {
		return nil, 0, err
	}
	return vs, next, nil
}

// distinct resolves two argument lists that must name different keys on one shard.
func (s *SetCache[T]) distinct(a, b []any) ([]string, redis.Cmdable, error) {
	keys, db, err := s.sameShard(a, b)
	if err != nil {
		return nil, nil, err
	}
	if keys[0] == keys[1] {
		return nil, nil, fmt.Errorf("%w: %s", ErrSameKey, keys[0])
	}
	return keys, db, nil
}
