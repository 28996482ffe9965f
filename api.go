package keycache

import (
	"time"

	"github.com/redis/go-redis/v9"

	c "github.com/unkn0wn-root/keycache/codec"
	pr "github.com/unkn0wn-root/keycache/provider"
)

// Database hands out the redis commands bound to one logical db index.
// See package database for a go-redis backed implementation.
type Database interface {
	DB(index int) redis.Cmdable
}

// Options configure a typed cache wrapper.
// Only Database and Keys are required; others have sensible defaults.
type Options[V any] struct {
	// Required
	Database Database
	Keys     KeyStore

	Prefix string     // prepended to every key. e.g. "app:prod:"
	Codec  c.Codec[V] // nil => codec.Default[V]()
	Logger Logger     // if nil, NopLogger is used
	Hooks  Hooks      // if nil, NopHooks is used

	// String caches only: optional in-process tier in front of redis.
	// Entries are per process; other processes' writes become visible after LocalTTL.
	Local    pr.Provider
	LocalTTL time.Duration // <= 0 => 1s
}

// When is the write condition for set-like commands.
type When int

const (
	WhenAlways When = iota
	WhenExists
	WhenNotExists
)

// Order of sorted set results.
type Order int

const (
	Asc Order = iota
	Desc
)

// Exclude marks which score bounds are exclusive.
type Exclude int

const (
	ExcludeNone Exclude = iota
	ExcludeStart
	ExcludeStop
	ExcludeBoth
)

type SetOp int

const (
	Union SetOp = iota
	Intersect
	Difference
)

type DistUnit int

const (
	Meters DistUnit = iota
	Kilometers
	Miles
	Feet
)

func (u DistUnit) String() string {
	switch u {
	case Kilometers:
		return "km"
	case Miles:
		return "mi"
	case Feet:
		return "ft"
	default:
		return "m"
	}
}
