// Package codec converts cached values to and from the bytes stored in redis.
package codec

// Codec encodes/decodes values V to []byte for storage.
type Codec[V any] interface {
	Encode(V) ([]byte, error)
	Decode([]byte) (V, error)
}

// Default returns String for string values, Bytes for []byte and JSON for
// everything else.
func Default[V any]() Codec[V] {
	var zero V
	switch any(zero).(type) {
	case string:
		return any(String{}).(Codec[V])
	case []byte:
		return any(Bytes{}).(Codec[V])
	}
	return JSON[V]{}
}
