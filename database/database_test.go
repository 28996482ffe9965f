package database

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
)

func TestNewRequiresOptionsOrClient(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNilClient) {
		t.Fatalf("expected ErrNilClient, got %v", err)
	}
}

// Each index gets its own client bound to that db.
func TestPoolSelectsDb(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	p, err := New(Config{Options: &goredis.Options{Addr: mr.Addr()}})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer p.Close()

	if err := p.DB(2).Set(ctx, "k", "two", 0).Err(); err != nil {
		t.Fatalf("set db2: %v", err)
	}
	if err := p.DB(0).Set(ctx, "k", "zero", 0).Err(); err != nil {
		t.Fatalf("set db0: %v", err)
	}
	if got, _ := mr.DB(2).Get("k"); got != "two" {
		t.Fatalf("db 2 holds %q", got)
	}
	if got, _ := mr.DB(0).Get("k"); got != "zero" {
		t.Fatalf("db 0 holds %q", got)
	}
	if p.DB(2) != p.DB(2) {
		t.Fatalf("clients should be reused per index")
	}
}

func TestSharedClientServesAllIndexes(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	p, err := New(Config{Client: rdb, CloseClient: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if p.DB(0) != p.DB(7) {
		t.Fatalf("shared client expected for every index")
	}
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := p.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}

func TestClosedPoolFailsCommands(t *testing.T) {
	mr := miniredis.RunT(t)
	p, _ := New(Config{Options: &goredis.Options{Addr: mr.Addr()}})
	_ = p.DB(0)
	if err := p.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	err := p.DB(0).Ping(context.Background()).Err()
	if !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}
