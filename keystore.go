package keycache

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// KeyStore resolves node/item pairs to key configs. Lookups never fail;
// absence is reported through the bool result.
type KeyStore interface {
	Get(node, item string) (*KeyConfig, bool)
	GetKey(node, item string) (string, bool)
	GetExpire(node, item string) (time.Duration, bool)
	GetDb(node, item string) ([]int, bool)
}

// Format selects the key config source syntax.
type Format int

const (
	FormatXML Format = iota
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatXML:
		return "xml"
	case FormatYAML:
		return "yaml"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

// FormatOf picks the format from a file extension; anything but .yaml/.yml is XML.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatXML
	}
}

type KeyStoreOptions struct {
	Logger Logger // if nil, NopLogger is used
	Hooks  Hooks  // if nil, NopHooks is used
}

type pairKey struct{ node, item string }

// keySet is immutable once published.
type keySet struct {
	list  []*KeyConfig
	index map[pairKey]*KeyConfig
}

func newKeySet(list []*KeyConfig) *keySet {
	s := &keySet{list: list, index: make(map[pairKey]*KeyConfig, len(list))}
	for _, c := range list {
		k := pairKey{c.Node, c.Item}
		if _, dup := s.index[k]; !dup { // first match wins
			s.index[k] = c
		}
	}
	return s
}

// FileKeyStore holds the configs parsed from one source. The current set is
// swapped atomically, so readers see either the old or the new set in full.
type FileKeyStore struct {
	log   Logger
	hooks Hooks

	set atomic.Pointer[keySet]

	mu      sync.Mutex // serializes loads
	path    string
	format  Format
	modTime time.Time
}

var _ KeyStore = (*FileKeyStore)(nil)

// NewFileKeyStore loads path and returns a ready store.
func NewFileKeyStore(path string, opts KeyStoreOptions) (*FileKeyStore, error) {
	s := newFileKeyStore(opts)
	if err := s.Load(path); err != nil {
		return nil, err
	}
	return s, nil
}

// ReadKeyStore builds a store from r. Such a store has no file to Reload or Watch.
func ReadKeyStore(r io.Reader, format Format, opts KeyStoreOptions) (*FileKeyStore, error) {
	s := newFileKeyStore(opts)
	if r == nil {
		return nil, &ConfigError{Err: errors.New("nil reader")}
	}
	list, err := parseSource(r, format, s.log, s.hooks)
	if err != nil {
		return nil, &ConfigError{Source: format.String(), Err: err}
	}
	s.format = format
	s.publish(format.String(), list)
	return s, nil
}

func newFileKeyStore(opts KeyStoreOptions) *FileKeyStore {
	return &FileKeyStore{
		log:   coalesce[Logger](opts.Logger, NopLogger{}),
		hooks: coalesce[Hooks](opts.Hooks, NopHooks{}),
	}
}

// Load parses path and replaces the current configs. On failure nothing is
// replaced and a *ConfigError is returned.
func (s *FileKeyStore) Load(path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.loadLocked(path)
	if err != nil && s.set.Load() != nil {
		s.log.Error("key config reload failed; keeping previous configs", Fields{"source": path, "err": err})
		s.hooks.ReloadFailed(path, err)
	}
	return err
}

func (s *FileKeyStore) loadLocked(path string) error {
	if path == "" {
		return &ConfigError{Err: errors.New("source is not specified")}
	}
	f, err := os.Open(path)
	if err != nil {
		return &ConfigError{Source: path, Err: err}
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return &ConfigError{Source: path, Err: err}
	}
	if st.IsDir() {
		return &ConfigError{Source: path, Err: errors.New("is a directory")}
	}

	format := FormatOf(path)
	list, err := parseSource(f, format, s.log, s.hooks)
	if err != nil {
		return &ConfigError{Source: path, Err: err}
	}

	s.path = path
	s.format = format
	s.modTime = st.ModTime()
	s.publish(path, list)
	return nil
}

func (s *FileKeyStore) publish(source string, list []*KeyConfig) {
	s.set.Store(newKeySet(list))
	s.log.Info("key config loaded", Fields{"source": source, "items": len(list)})
	s.hooks.KeysLoaded(source, len(list))
}

func parseSource(r io.Reader, format Format, log Logger, hooks Hooks) ([]*KeyConfig, error) {
	var (
		nodes []rawNode
		err   error
	)
	switch format {
	case FormatXML:
		nodes, err = decodeXML(r)
	case FormatYAML:
		nodes, err = decodeYAML(r)
	default:
		err = fmt.Errorf("unknown format %v", format)
	}
	if err != nil {
		return nil, err
	}
	return buildConfigs(nodes, log, hooks), nil
}

// Reload re-reads the file the store was loaded from.
func (s *FileKeyStore) Reload() error {
	s.mu.Lock()
	path := s.path
	s.mu.Unlock()
	if path == "" {
		return &ConfigError{Err: errors.New("store was not loaded from a file")}
	}
	return s.Load(path)
}

// Watch polls the source file every interval and reloads it when its
// modification time changes. Failed reloads are logged and the previous
// configs stay active. Watch blocks until ctx is done.
func (s *FileKeyStore) Watch(ctx context.Context, interval time.Duration) error {
	s.mu.Lock()
	path := s.path
	s.mu.Unlock()
	if path == "" {
		return &ConfigError{Err: errors.New("store was not loaded from a file")}
	}
	interval = coalesce[time.Duration](interval, 5*time.Second)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if !s.changed(path) {
				continue
			}
			_ = s.Load(path) // failures are logged and hooked by Load
		}
	}
}

func (s *FileKeyStore) changed(path string) bool {
	st, err := os.Stat(path)
	if err != nil {
		// let Load report the failure once per tick
		return true
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !st.ModTime().Equal(s.modTime)
}

// Get returns a copy of the first config matching node and item exactly.
func (s *FileKeyStore) Get(node, item string) (*KeyConfig, bool) {
	set := s.set.Load()
	if set == nil {
		return nil, false
	}
	c, ok := set.index[pairKey{node, item}]
	if !ok {
		return nil, false
	}
	return c.Copy(), true
}

func (s *FileKeyStore) GetKey(node, item string) (string, bool) {
	c, ok := s.Get(node, item)
	if !ok {
		return "", false
	}
	return c.Key, true
}

func (s *FileKeyStore) GetExpire(node, item string) (time.Duration, bool) {
	c, ok := s.Get(node, item)
	if !ok {
		return 0, false
	}
	return c.Expire, true
}

func (s *FileKeyStore) GetDb(node, item string) ([]int, bool) {
	c, ok := s.Get(node, item)
	if !ok {
		return nil, false
	}
	return c.Db(), true
}

// Configs returns copies of all configs in source order.
func (s *FileKeyStore) Configs() []*KeyConfig {
	set := s.set.Load()
	if set == nil {
		return nil
	}
	out := make([]*KeyConfig, len(set.list))
	for i, c := range set.list {
		out[i] = c.Copy()
	}
	return out
}
