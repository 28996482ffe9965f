package keycache

import "context"

// ListCache stores a redis list of encoded T.
type ListCache[T any] struct {
	*Base
	vals values[T]
}

func NewListCache[T any](node, item string, opts Options[T]) (*ListCache[T], error) {
	b, vals, err := bind(node, item, opts)
	if err != nil {
		return nil, err
	}
	return &ListCache[T]{Base: b, vals: vals}, nil
}

// PushLeft prepends vs in order (the last one ends up first) and returns the new length.
func (l *ListCache[T]) PushLeft(ctx context.Context, vs []T, args ...any) (int64, error) {
	return l.push(ctx, true, vs, args)
}

// PushRight appends vs and returns the new length.
func (l *ListCache[T]) PushRight(ctx context.Context, vs []T, args ...any) (int64, error) {
	return l.push(ctx, false, vs, args)
}

func (l *ListCache[T]) push(ctx context.Context, left bool, vs []T, args []any) (int64, error) {
	key, db, err := l.target(args)
	if err != nil {
		return 0, err
	}
	if len(vs) == 0 {
		return db.LLen(ctx, key).Result()
	}
	raws, err := l.vals.encodeAll(vs)
	if err != nil {
		return 0, err
	}
	if left {
		return db.LPush(ctx, key, raws...).Result()
	}
	return db.RPush(ctx, key, raws...).Result()
}

// Index returns the element at i; negative indexes count from the tail.
func (l *ListCache[T]) Index(ctx context.Context, i int64, args ...any) (T, bool, error) {
	key, db, err := l.target(args)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return l.vals.fromCmd(key, db.LIndex(ctx, key, i))
}

// Range returns elements start..stop inclusive; stop -1 means the last element.
func (l *ListCache[T]) Range(ctx context.Context, start, stop int64, args ...any) ([]T, error) {
	key, db, err := l.target(args)
	if err != nil {
		return nil, err
	}
	ss, err := db.LRange(ctx, key, start, stop).Result()
	if err != nil {
		return nil, err
	}
	return l.vals.decodeAll(key, ss)
}

// InsertBefore inserts v before the first occurrence of pivot. It returns the
// new length, or -1 when pivot was not found.
func (l *ListCache[T]) InsertBefore(ctx context.Context, pivot, v T, args ...any) (int64, error) {
	return l.insert(ctx, "BEFORE", pivot, v, args)
}

func (l *ListCache[T]) InsertAfter(ctx context.Context, pivot, v T, args ...any) (int64, error) {
	return l.insert(ctx, "AFTER", pivot, v, args)
}

func (l *ListCache[T]) insert(ctx context.Context, op string, pivot, v T, args []any) (int64, error) {
	key, db, err := l.target(args)
	if err != nil {
		return 0, err
	}
	p, err := l.vals.encode(pivot)
	if err != nil {
		return 0, err
	}
	raw, err := l.vals.encode(v)
	if err != nil {
		return 0, err
	}
	return db.LInsert(ctx, key, op, p, raw).Result()
}

func (l *ListCache[T]) PopLeft(ctx context.Context, args ...any) (T, bool, error) {
	key, db, err := l.target(args)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return l.vals.fromCmd(key, db.LPop(ctx, key))
}

func (l *ListCache[T]) PopRight(ctx context.Context, args ...any) (T, bool, error) {
	key, db, err := l.target(args)
	if err != nil {
		var zero T
		return zero, false, err
	}
	return l.vals.fromCmd(key, db.RPop(ctx, key))
}

// Update replaces the element at i. Redis reports an out of range index as an error.
func (l *ListCache[T]) Update(ctx context.Context, i int64, v T, args ...any) error {
	key, db, err := l.target(args)
	if err != nil {
		return err
	}
	raw, err := l.vals.encode(v)
	if err != nil {
		return err
	}
	return db.LSet(ctx, key, i, raw).Err()
}

// Delete removes occurrences of v: count > 0 from the head, count < 0 from
// the tail, 0 all of them. It returns the number removed.
func (l *ListCache[T]) Delete(ctx context.Context, v T, count int64, args ...any) (int64, error) {
	key, db, err := l.target(args)
	if err != nil {
		return 0, err
	}
	raw, err := l.vals.encode(v)
	if err != nil {
		return 0, err
	}
	return db.LRem(ctx, key, count, raw).Result()
}

// Trim keeps only elements start..stop inclusive.
func (l *ListCache[T]) Trim(ctx context.Context, start, stop int64, args ...any) error {
	key, db, err := l.target(args)
	if err != nil {
		return err
	}
	return db.LTrim(ctx, key, start, stop).Err()
}

func (l *ListCache[T]) Count(ctx context.Context, args ...any) (int64, error) {
	key, db, err := l.target(args)
	if err != nil {
		return 0, err
	}
	return db.LLen(ctx, key).Result()
}
