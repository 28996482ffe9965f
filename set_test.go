package keycache

import (
	"context"
	"errors"
	"reflect"
	"sort"
	"testing"
)

func sorted(xs []string) []string {
	sort.Strings(xs)
	return xs
}

// shardArgs finds two distinct args whose keys share a shard, and one that does not.
func shardArgs(t *testing.T, b *Base) (a, same, other int) {
	t.Helper()
	key := func(i int) int {
		k, _ := b.GetCacheKey(i)
		return b.GetCacheDb(k)
	}
	a, same, other = 0, -1, -1
	for i := 1; i < 200 && (same < 0 || other < 0); i++ {
		if key(i) == key(a) {
			if same < 0 {
				same = i
			}
		} else if other < 0 {
			other = i
		}
	}
	if same < 0 || other < 0 {
		t.Fatalf("could not find shard args")
	}
	return a, same, other
}

func TestSetCache(t *testing.T) {
	_, pool := newTestRedis(t)
	ctx := context.Background()
	s, err := NewSetDb[string]("Tags", testOptions[string](t, pool))
	if err != nil {
		t.Fatalf("NewSetDb: %v", err)
	}

	if n, err := s.Add(ctx, []string{"go", "redis", "go"}, 1); err != nil || n != 2 {
		t.Fatalf("Add = %d %v", n, err)
	}
	if ok, _ := s.Exists(ctx, "go", 1); !ok {
		t.Fatalf("go should be a member")
	}
	if got, err := s.Members(ctx, 1); err != nil || !reflect.DeepEqual(sorted(got), []string{"go", "redis"}) {
		t.Fatalf("Members = %v %v", got, err)
	}
	if n, _ := s.Count(ctx, 1); n != 2 {
		t.Fatalf("Count = %d", n)
	}
	if v, ok, err := s.Random(ctx, 1); err != nil || !ok || (v != "go" && v != "redis") {
		t.Fatalf("Random = %q %v %v", v, ok, err)
	}
	if vs, err := s.RandomN(ctx, 5, 1); err != nil || len(vs) != 2 {
		t.Fatalf("RandomN = %v %v", vs, err)
	}
	if _, err := s.RandomN(ctx, 0, 1); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("RandomN(0) = %v", err)
	}

	var all []string
	var cursor uint64
	for {
		page, next, err := s.Scan(ctx, cursor, "", 10, 1)
		if err != nil {
			t.Fatalf("Scan: %v", err)
		}
		all = append(all, page...)
		if next == 0 {
			break
		}
		cursor = next
	}
	if !reflect.DeepEqual(sorted(all), []string{"go", "redis"}) {
		t.Fatalf("Scan = %v", all)
	}

	if n, err := s.Delete(ctx, []string{"redis", "nope"}, 1); err != nil || n != 1 {
		t.Fatalf("Delete = %d %v", n, err)
	}
	if v, ok, _ := s.Pop(ctx, 1); !ok || v != "go" {
		t.Fatalf("Pop = %q %v", v, ok)
	}
	if _, ok, err := s.Pop(ctx, 1); err != nil || ok {
		t.Fatalf("Pop on empty set = %v %v", ok, err)
	}
	s.Add(ctx, []string{"x", "y"}, 1)
	if vs, err := s.PopN(ctx, 2, 1); err != nil || len(vs) != 2 {
		t.Fatalf("PopN = %v %v", vs, err)
	}
}

// TestSetCacheMultiKey covers Move, Join and JoinStore on one shard.
func TestSetCacheMultiKey(t *testing.T) {
	_, pool := newTestRedis(t)
	ctx := context.Background()
	s, err := NewSetDb[string]("Tags", testOptions[string](t, pool))
	if err != nil {
		t.Fatal(err)
	}
	a, b, other := shardArgs(t, s.Base)

	s.Add(ctx, []string{"1", "2", "3"}, a)
	s.Add(ctx, []string{"2", "3", "4"}, b)

	if got, err := s.Join(ctx, Intersect, []any{a}, []any{b}); err != nil || !reflect.DeepEqual(sorted(got), []string{"2", "3"}) {
		t.Fatalf("Intersect = %v %v", got, err)
	}
	if got, _ := s.Join(ctx, Union, []any{a}, []any{b}); !reflect.DeepEqual(sorted(got), []string{"1", "2", "3", "4"}) {
		t.Fatalf("Union = %v", got)
	}
	if got, _ := s.Join(ctx, Difference, []any{a}, []any{b}); !reflect.DeepEqual(got, []string{"1"}) {
		t.Fatalf("Difference = %v", got)
	}

	if ok, err := s.Move(ctx, "1", []any{a}, []any{b}); err != nil || !ok {
		t.Fatalf("Move = %v %v", ok, err)
	}
	if ok, _ := s.Exists(ctx, "1", b); !ok {
		t.Fatalf("moved member missing")
	}

	if _, err := s.Move(ctx, "2", []any{a}, []any{a}); !errors.Is(err, ErrSameKey) {
		t.Fatalf("expected ErrSameKey, got %v", err)
	}
	if _, err := s.Join(ctx, Union, []any{a}, []any{other}); !errors.Is(err, ErrCrossShard) {
		t.Fatalf("expected ErrCrossShard, got %v", err)
	}

	// dst must share the shard too
	if _, err := s.JoinStore(ctx, Union, []any{other}, []any{a}, []any{b}); !errors.Is(err, ErrCrossShard) {
		t.Fatalf("expected ErrCrossShard for dst, got %v", err)
	}
	if n, err := s.JoinStore(ctx, Union, []any{a}, []any{a}, []any{b}); err != nil || n != 4 {
		t.Fatalf("JoinStore = %d %v", n, err)
	}
}
