// Package asynchook moves keycache hook calls off the caller's goroutine.
//
//	raw := sloghooks.New(slog.Default(), sloghooks.Options{DecodeFailedEvery: 10})
//	hooks := asynchook.New(raw, 1, 1000) // 1 worker; queue 1000 events
//	defer hooks.Close()
//
//	keys, _ := keycache.NewFileKeyStore("cache.xml", keycache.KeyStoreOptions{Hooks: hooks})
//
// Events are dropped when the queue is full; Dropped reports how many.
package asynchook

import (
	"sync"
	"sync/atomic"

	"github.com/unkn0wn-root/keycache"
)

type Hooks struct {
	inner   keycache.Hooks
	q       chan func()
	wg      sync.WaitGroup
	once    sync.Once
	mu      sync.RWMutex // guards closed against sends on a closed queue
	closed  bool
	dropped atomic.Uint64
}

var _ keycache.Hooks = (*Hooks)(nil)

func New(inner keycache.Hooks, workers, qlen int) *Hooks {
	if inner == nil {
		inner = keycache.NopHooks{}
	}
	if workers <= 0 {
		workers = 1
	}
	if qlen <= 0 {
		qlen = 1024
	}

	h := &Hooks{inner: inner, q: make(chan func(), qlen)}
	h.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer h.wg.Done()
			for f := range h.q {
				f()
			}
		}()
	}
	return h
}

// Close drains queued events and stops the workers. Later events are dropped.
func (h *Hooks) Close() {
	h.once.Do(func() {
		h.mu.Lock()
		h.closed = true
		close(h.q)
		h.mu.Unlock()
		h.wg.Wait()
	})
}

func (h *Hooks) Dropped() uint64 { return h.dropped.Load() }

func (h *Hooks) try(f func()) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.closed {
		h.dropped.Add(1)
		return
	}
	select {
	case h.q <- f:
	default:
		h.dropped.Add(1)
	}
}

func (h *Hooks) KeysLoaded(src string, n int) { h.try(func() { h.inner.KeysLoaded(src, n) }) }
func (h *Hooks) ReloadFailed(src string, err error) {
	h.try(func() { h.inner.ReloadFailed(src, err) })
}
func (h *Hooks) DbTokenSkipped(node, item, tok string) {
	h.try(func() { h.inner.DbTokenSkipped(node, item, tok) })
}
func (h *Hooks) ExpireIgnored(node, item, v string) {
	h.try(func() { h.inner.ExpireIgnored(node, item, v) })
}
func (h *Hooks) DecodeFailed(key string, err error) { h.try(func() { h.inner.DecodeFailed(key, err) }) }
