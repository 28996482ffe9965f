// Package gen tracks per-key write generations for the in-process tier.
//
// A reader snapshots the generation before fetching from redis and tags the
// local entry with it. Writers bump the generation, so entries fetched before
// a write no longer match and are discarded on their next read.
package gen

import (
	"sync"
	"time"
)

type entry struct {
	gen     uint64
	touched time.Time
}

// Store keeps generations in memory. With a retention, a background loop
// forgets keys that have not been bumped for that long.
type Store struct {
	mu   sync.RWMutex
	gens map[string]entry

	retention time.Duration
	stop      chan struct{}
	wg        sync.WaitGroup
	once      sync.Once
}

func New(retention time.Duration) *Store {
	s := &Store{gens: make(map[string]entry), retention: retention}
	if retention > 0 {
		s.stop = make(chan struct{})
		s.wg.Add(1)
		go s.loop()
	}
	return s
}

func (s *Store) loop() {
	defer s.wg.Done()
	t := time.NewTicker(s.retention)
	defer t.Stop()
	for {
		select {
		case <-t.C:
			s.Prune(time.Now().Add(-s.retention))
		case <-s.stop:
			return
		}
	}
}

// Get returns the current generation; unknown keys are at 0.
func (s *Store) Get(key string) uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gens[key].gen
}

func (s *Store) Bump(key string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.gens[key]
	e.gen++
	e.touched = time.Now()
	s.gens[key] = e
	return e.gen
}

// Prune drops keys last bumped before cutoff.
func (s *Store) Prune(cutoff time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k, e := range s.gens {
		if e.touched.Before(cutoff) {
			delete(s.gens, k)
			n++
		}
	}
	return n
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.gens)
}

// Close stops the prune loop. Safe to call more than once.
func (s *Store) Close() {
	s.once.Do(func() {
		if s.stop != nil {
			close(s.stop)
			s.wg.Wait()
		}
	})
}
