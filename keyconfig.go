package keycache

import "time"

// KeyConfig maps one node/item pair to a key template, a default expiration
// and the shard dbs its keys are spread over. Treat it as read-only.
type KeyConfig struct {
	Node   string
	Item   string
	Key    string        // template; empty configs cannot build keys
	Expire time.Duration // 0 => no default expiration

	db []int
}

// NewKeyConfig copies db; nil becomes an empty list.
func NewKeyConfig(node, item, key string, expire time.Duration, db []int) *KeyConfig {
	if expire < 0 {
		expire = 0
	}
	return &KeyConfig{
		Node:   node,
		Item:   item,
		Key:    key,
		Expire: expire,
		db:     cloneInts(db),
	}
}

// Db returns a copy of the shard db indices.
func (c *KeyConfig) Db() []int { return cloneInts(c.db) }

func (c *KeyConfig) HasExpire() bool { return c.Expire > 0 }

// Copy returns an equal config that shares no mutable state with c.
func (c *KeyConfig) Copy() *KeyConfig {
	return NewKeyConfig(c.Node, c.Item, c.Key, c.Expire, c.db)
}

func cloneInts(in []int) []int {
	out := make([]int, len(in))
	copy(out, in)
	return out
}
