package keycache

import c "github.com/unkn0wn-root/keycache/codec"

// Node names of the conventional key config layout.
const (
	NodeDataDb            = "DataDb"
	NodeParamDb           = "ParamDb"
	NodeSessionDb         = "SessionDb"
	NodeHashDb            = "HashDb"
	NodeLinkListDb        = "LinkListDb"
	NodeSetDb             = "SetDb"
	NodeSortSetDb         = "SortSetDb"
	NodeGeoDb             = "GeoDb"
	NodeDistributedLockDb = "DistributedLockDb"
)

func NewDataDb[T any](item string, opts Options[T]) (*StringCache[T], error) {
	return NewStringCache(NodeDataDb, item, opts)
}

func NewParamDb[T any](item string, opts Options[T]) (*StringCache[T], error) {
	return NewStringCache(NodeParamDb, item, opts)
}

func NewSessionDb[T any](item string, opts Options[T]) (*StringCache[T], error) {
	return NewStringCache(NodeSessionDb, item, opts)
}

func NewHashDb[F comparable, V any](item string, opts Options[V], fieldCodec c.Codec[F]) (*HashCache[F, V], error) {
	return NewHashCache(NodeHashDb, item, opts, fieldCodec)
}

func NewLinkListDb[T any](item string, opts Options[T]) (*ListCache[T], error) {
	return NewListCache(NodeLinkListDb, item, opts)
}

func NewSetDb[T any](item string, opts Options[T]) (*SetCache[T], error) {
	return NewSetCache(NodeSetDb, item, opts)
}

func NewSortSetDb[T any](item string, opts Options[T]) (*SortSetCache[T], error) {
	return NewSortSetCache(NodeSortSetDb, item, opts)
}

func NewGeoDb(item string, opts Options[string]) (*GeoCache, error) {
	return NewGeoCache(NodeGeoDb, item, opts)
}

func NewDistributedLockDb(item string, opts Options[string]) (*LockCache, error) {
	return NewLockCache(NodeDistributedLockDb, item, opts)
}
