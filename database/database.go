// Package database hands out go-redis clients per logical db index.
package database

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"

	goredis "github.com/redis/go-redis/v9"
)

var (
	ErrNilClient = errors.New("database: neither Options nor Client set")
	ErrClosed    = errors.New("database: pool closed")
)

type Config struct {
	// Options is the template for per-index clients; DB is overridden by the index.
	Options *goredis.Options

	// Client serves every index instead, e.g. a cluster client where only db 0
	// exists. Ignored when Options is set.
	Client      goredis.UniversalClient
	CloseClient bool // set true only if the pool exclusively owns Client
}

// Pool implements keycache.Database.
type Pool struct {
	opts        *goredis.Options
	shared      goredis.UniversalClient
	closeShared bool

	mu      sync.Mutex
	clients map[int]*goredis.Client
	dead    *goredis.Client // non-nil once closed
}

func New(cfg Config) (*Pool, error) {
	switch {
	case cfg.Options != nil:
		o := *cfg.Options
		return &Pool{opts: &o, clients: make(map[int]*goredis.Client)}, nil
	case cfg.Client != nil:
		return &Pool{shared: cfg.Client, closeShared: cfg.CloseClient}, nil
	default:
		return nil, ErrNilClient
	}
}

// DB returns the client for index, creating it on first use. A closed pool
// returns a client whose commands all fail with ErrClosed.
func (p *Pool) DB(index int) goredis.Cmdable {
	if p.shared != nil {
		return p.shared
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dead != nil {
		return p.dead
	}
	if c, ok := p.clients[index]; ok {
		return c
	}
	o := *p.opts
	o.DB = index
	c := goredis.NewClient(&o)
	p.clients[index] = c
	return c
}

// Close closes every client the pool created, and the shared client when owned.
// Repeated calls are no-ops.
func (p *Pool) Close() error {
	if p.shared != nil {
		if !p.closeShared {
			return nil
		}
		if err := p.shared.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			return err
		}
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.dead != nil {
		return nil
	}
	p.dead = closedClient()
	var errs []error
	for idx, c := range p.clients {
		if err := c.Close(); err != nil && !errors.Is(err, goredis.ErrClosed) {
			errs = append(errs, fmt.Errorf("db %d: %w", idx, err))
		}
	}
	p.clients = nil
	return errors.Join(errs...)
}

// closedClient never dials; every command fails with ErrClosed.
func closedClient() *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Dialer: func(context.Context, string, string) (net.Conn, error) {
			return nil, ErrClosed
		},
		MaxRetries: -1,
	})
}
