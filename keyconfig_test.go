package keycache

import (
	"reflect"
	"testing"
	"time"
)

func TestKeyConfigCopyIsIndependent(t *testing.T) {
	src := []int{1, 2, 3}
	cfg := NewKeyConfig("HashDb", "Users", "users", time.Minute, src)

	src[0] = 99
	if got := cfg.Db(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("constructor must copy db, got %v", got)
	}

	dbs := cfg.Db()
	dbs[1] = 42
	if got := cfg.Db(); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Fatalf("Db() must return a copy, got %v", got)
	}

	cp := cfg.Copy()
	if cp == cfg {
		t.Fatalf("Copy returned the same pointer")
	}
	if cp.Node != cfg.Node || cp.Item != cfg.Item || cp.Key != cfg.Key || cp.Expire != cfg.Expire {
		t.Fatalf("Copy mismatch: %+v vs %+v", cp, cfg)
	}
	cp.db[0] = 7
	if cfg.db[0] != 1 {
		t.Fatalf("Copy shares db storage with the original")
	}
}

func TestKeyConfigNilDbAndExpire(t *testing.T) {
	cfg := NewKeyConfig("SetDb", "Tags", "tags", -time.Second, nil)
	if got := cfg.Db(); got == nil || len(got) != 0 {
		t.Fatalf("nil db should become empty list, got %#v", got)
	}
	if cfg.HasExpire() || cfg.Expire != 0 {
		t.Fatalf("negative expire should be absent, got %v", cfg.Expire)
	}
}
