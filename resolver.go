package keycache

import (
	"strings"

	"github.com/unkn0wn-root/keycache/internal/util"
)

// NodeName returns the key namespace for a node: "HashDb" -> "hash_db:".
func NodeName(node string) string { return util.NodeName(node) }

// ComposeKey builds prefix + nodeName + cfg.Key, followed by one ":arg"
// segment per argument in the given order.
func ComposeKey(cfg *KeyConfig, prefix, nodeName string, args ...any) (string, error) {
	if cfg.Key == "" {
		return "", &KeyError{Node: cfg.Node, Item: cfg.Item, Err: ErrInvalidKeyConfig}
	}
	var b strings.Builder
	b.Grow(len(prefix) + len(nodeName) + len(cfg.Key) + 8*len(args))
	b.WriteString(prefix)
	b.WriteString(nodeName)
	b.WriteString(cfg.Key)
	for _, a := range args {
		b.WriteByte(':')
		b.WriteString(util.FormatArg(a))
	}
	return b.String(), nil
}

// ResolveShardDb picks the shard db for a resolved key.
//
// With two or more dbs the index is a rolling rune checksum of the key
// (sum reduced mod 255 whenever it exceeds 255) modulo the number of dbs.
// Placement depends on this exact arithmetic: changing it moves existing keys.
func ResolveShardDb(cfg *KeyConfig, key string) int {
	switch len(cfg.db) {
	case 0:
		return 0
	case 1:
		return cfg.db[0]
	}
	return cfg.db[shardIndex(key, len(cfg.db))]
}

func shardIndex(key string, n int) int {
	sum := 0
	for _, r := range key {
		sum += int(r)
		if sum > 255 {
			sum %= 255
		}
	}
	return sum % n
}

// Resolver binds a key config to a prefix. It is immutable and safe for
// concurrent use.
type Resolver struct {
	cfg      *KeyConfig
	prefix   string
	nodeName string
}

func NewResolver(cfg *KeyConfig, prefix string) *Resolver {
	c := cfg.Copy()
	return &Resolver{cfg: c, prefix: prefix, nodeName: NodeName(c.Node)}
}

func (r *Resolver) Key(args ...any) (string, error) {
	return ComposeKey(r.cfg, r.prefix, r.nodeName, args...)
}

func (r *Resolver) DB(key string) int { return ResolveShardDb(r.cfg, key) }

func (r *Resolver) Prefix() string   { return r.prefix }
func (r *Resolver) NodeName() string { return r.nodeName }

// Config returns a copy of the bound config.
func (r *Resolver) Config() *KeyConfig { return r.cfg.Copy() }
