// Package keycache maps logical node/item names to redis keys, shard dbs and
// expirations, and exposes typed wrappers over the redis data structures.
//
// Components:
//   - KeyStore: node/item -> KeyConfig, loaded from an XML or YAML file and
//     swapped atomically on Reload/Watch.
//   - Resolver: builds keys and picks the shard db of a key.
//   - Base: a resolved node/item bound to a Database; embedded by every wrapper.
//   - Wrappers: StringCache, HashCache, ListCache, SetCache, SortSetCache,
//     GeoCache, LockCache. Values are (de)serialized by a codec.Codec[V].
//
// Keys:
//
//	<prefix><node_name>:<key>[:<arg>]...
//
// e.g. node "HashDb", key "users", args (42, "EU") -> "app:hash_db:users:42:eu".
//
// Config (XML):
//
//	<Cache>
//	  <HashDb db="0-2" expire="0:30:0">
//	    <Users key="users" />
//	    <Roles key="roles" db="3" expire="1:0:0:0" />
//	  </HashDb>
//	</Cache>
//
// Usage:
//
//	keys, _ := keycache.NewFileKeyStore("cache.xml", keycache.KeyStoreOptions{})
//	pool, _ := database.New(database.Config{Options: &redis.Options{Addr: "localhost:6379"}})
//	users, _ := keycache.NewHashDb[int, User]("Users", keycache.Options[User]{Database: pool, Keys: keys}, nil)
//	_, _ = users.Set(ctx, 42, u, keycache.WhenAlways, "EU")
package keycache
