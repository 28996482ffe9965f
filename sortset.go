package keycache

import (
	"context"
	"fmt"
	"math"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Scored is a sorted set member with its score.
type Scored[T any] struct {
	Member T
	Score  float64
}

// SortSetCache stores a redis sorted set of encoded T.
type SortSetCache[T any] struct {
	*Base
	vals values[T]
}

func NewSortSetCache[T any](node, item string, opts Options[T]) (*SortSetCache[T], error) {
	b, vals, err := bind(node, item, opts)
	if err != nil {
		return nil, err
	}
	return &SortSetCache[T]{Base: b, vals: vals}, nil
}

// Add writes one member and reports whether it was added or its score changed.
func (z *SortSetCache[T]) Add(ctx context.Context, member T, score float64, when When, args ...any) (bool, error) {
	n, err := z.AddMany(ctx, []Scored[T]{{Member: member, Score: score}}, when, args...)
	return n > 0, err
}

// AddMany returns the number of members added or whose score changed.
func (z *SortSetCache[T]) AddMany(ctx context.Context, members []Scored[T], when When, args ...any) (int64, error) {
	key, db, err := z.target(args)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}
	za := redis.ZAddArgs{Ch: true, Members: make([]redis.Z, len(members))}
	switch when {
	case WhenAlways:
	case WhenNotExists:
		za.NX = true
	case WhenExists:
		za.XX = true
	default:
		return 0, ErrUnsupportedWhen
	}
	for i, m := range members {
		raw, err := z.vals.encode(m.Member)
		if err != nil {
			return 0, err
		}
		za.Members[i] = redis.Z{Score: m.Score, Member: raw}
	}
	return db.ZAddArgs(ctx, key, za).Result()
}

// Increment adds by to member's score, creating it at by when missing.
func (z *SortSetCache[T]) Increment(ctx context.Context, member T, by float64, args ...any) (float64, error) {
	key, db, err := z.target(args)
	if err != nil {
		return 0, err
	}
	raw, err := z.vals.encode(member)
	if err != nil {
		return 0, err
	}
	return db.ZIncrBy(ctx, key, by, string(raw)).Result()
}

func (z *SortSetCache[T]) Decrement(ctx context.Context, member T, by float64, args ...any) (float64, error) {
	return z.Increment(ctx, member, -by, args...)
}

// Count returns the number of members scored within min..max. Use
// math.Inf for open bounds.
func (z *SortSetCache[T]) Count(ctx context.Context, min, max float64, ex Exclude, args ...any) (int64, error) {
	key, db, err := z.target(args)
	if err != nil {
		return 0, err
	}
	lo, hi := scoreRange(min, max, ex)
	return db.ZCount(ctx, key, lo, hi).Result()
}

// Range returns members by rank, start..stop inclusive.
func (z *SortSetCache[T]) Range(ctx context.Context, start, stop int64, order Order, args ...any) ([]T, error) {
	key, db, err := z.target(args)
	if err != nil {
		return nil, err
	}
	ss, err := db.ZRangeArgs(ctx, redis.ZRangeArgs{
		Key: key, Start: start, Stop: stop, Rev: order == Desc,
	}).Result()
	if err != nil {
		return nil, err
	}
	return z.vals.decodeAll(key, ss)
}

func (z *SortSetCache[T]) RangeWithScores(ctx context.Context, start, stop int64, order Order, args ...any) ([]Scored[T], error) {
	key, db, err := z.target(args)
	if err != nil {
		return nil, err
	}
	zs, err := db.ZRangeArgsWithScores(ctx, redis.ZRangeArgs{
		Key: key, Start: start, Stop: stop, Rev: order == Desc,
	}).Result()
	if err != nil {
		return nil, err
	}
	return z.scored(key, zs)
}

// RangeByScore returns members scored within min..max in order. count <= 0
// returns every match after offset.
func (z *SortSetCache[T]) RangeByScore(ctx context.Context, min, max float64, ex Exclude, order Order, offset, count int64, args ...any) ([]T, error) {
	key, db, err := z.target(args)
	if err != nil {
		return nil, err
	}
	ss, err := db.ZRangeArgs(ctx, byScore(key, min, max, ex, order, offset, count)).Result()
	if err != nil {
		return nil, err
	}
	return z.vals.decodeAll(key, ss)
}

func (z *SortSetCache[T]) RangeByScoreWithScores(ctx context.Context, min, max float64, ex Exclude, order Order, offset, count int64, args ...any) ([]Scored[T], error) {
	key, db, err := z.target(args)
	if err != nil {
		return nil, err
	}
	zs, err := db.ZRangeArgsWithScores(ctx, byScore(key, min, max, ex, order, offset, count)).Result()
	if err != nil {
		return nil, err
	}
	return z.scored(key, zs)
}

// Pop removes the lowest (Asc) or highest (Desc) scored member.
func (z *SortSetCache[T]) Pop(ctx context.Context, order Order, args ...any) (Scored[T], bool, error) {
	out, err := z.PopN(ctx, 1, order, args...)
	if err != nil || len(out) == 0 {
		return Scored[T]{}, false, err
	}
	return out[0], true, nil
}

func (z *SortSetCache[T]) PopN(ctx context.Context, n int64, order Order, args ...any) ([]Scored[T], error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: count %d", ErrInvalidArgument, n)
	}
	key, db, err := z.target(args)
	if err != nil {
		return nil, err
	}
	var cmd *redis.ZSliceCmd
	if order == Desc {
		cmd = db.ZPopMax(ctx, key, n)
	} else {
		cmd = db.ZPopMin(ctx, key, n)
	}
	zs, err := cmd.Result()
	if err != nil {
		return nil, err
	}
	return z.scored(key, zs)
}

// Delete removes members and returns how many were present.
func (z *SortSetCache[T]) Delete(ctx context.Context, members []T, args ...any) (int64, error) {
	key, db, err := z.target(args)
	if err != nil {
		return 0, err
	}
	if len(members) == 0 {
		return 0, nil
	}
	raws, err := z.vals.encodeAll(members)
	if err != nil {
		return 0, err
	}
	return db.ZRem(ctx, key, raws...).Result()
}

// DeleteRange removes members ranked start..stop in ascending order.
func (z *SortSetCache[T]) DeleteRange(ctx context.Context, start, stop int64, args ...any) (int64, error) {
	key, db, err := z.target(args)
	if err != nil {
		return 0, err
	}
	return db.ZRemRangeByRank(ctx, key, start, stop).Result()
}

func (z *SortSetCache[T]) DeleteByScore(ctx context.Context, min, max float64, ex Exclude, args ...any) (int64, error) {
	key, db, err := z.target(args)
	if err != nil {
		return 0, err
	}
	lo, hi := scoreRange(min, max, ex)
	return db.ZRemRangeByScore(ctx, key, lo, hi).Result()
}

func (z *SortSetCache[T]) scored(key string, zs []redis.Z) ([]Scored[T], error) {
	out := make([]Scored[T], 0, len(zs))
	for _, m := range zs {
		s, _ := m.Member.(string)
		v, err := z.vals.decodeString(key, s)
		if err != nil {
			return nil, err
		}
		out = append(out, Scored[T]{Member: v, Score: m.Score})
	}
	return out, nil
}

func byScore(key string, min, max float64, ex Exclude, order Order, offset, count int64) redis.ZRangeArgs {
	lo, hi := scoreRange(min, max, ex)
	za := redis.ZRangeArgs{Key: key, Start: lo, Stop: hi, ByScore: true, Rev: order == Desc}
	if count > 0 || offset > 0 {
		za.Offset = offset
		za.Count = count
		if count <= 0 {
			za.Count = -1
		}
	}
	return za
}

// scoreRange renders score bounds in redis syntax: "(" marks an exclusive
// bound and infinities become -inf/+inf.
func scoreRange(min, max float64, ex Exclude) (string, string) {
	return scoreBound(min, ex == ExcludeStart || ex == ExcludeBoth),
		scoreBound(max, ex == ExcludeStop || ex == ExcludeBoth)
}

func scoreBound(v float64, exclusive bool) string {
	var s string
	switch {
	case math.IsInf(v, -1):
		s = "-inf"
	case math.IsInf(v, 1):
		s = "+inf"
	default:
		s = strconv.FormatFloat(v, 'f', -1, 64)
	}
	if exclusive {
		return "(" + s
	}
	return s
}
