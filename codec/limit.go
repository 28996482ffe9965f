package codec

import "fmt"

// Limit bounds payload sizes around Inner. A zero bound disables that check.
//
// MaxDecode guards against oversized values written to a shared redis by
// other services; MaxEncode keeps this process from writing them.
type Limit[V any] struct {
	Inner     Codec[V]
	MaxEncode int
	MaxDecode int
}

func (l Limit[V]) Encode(v V) ([]byte, error) {
	b, err := l.Inner.Encode(v)
	if err != nil {
		return nil, err
	}
	if l.MaxEncode > 0 && len(b) > l.MaxEncode {
		return nil, fmt.Errorf("codec: encoded payload too large: %d > %d", len(b), l.MaxEncode)
	}
	return b, nil
}

func (l Limit[V]) Decode(b []byte) (V, error) {
	if l.MaxDecode > 0 && len(b) > l.MaxDecode {
		var zero V
		return zero, fmt.Errorf("codec: payload too large: %d > %d", len(b), l.MaxDecode)
	}
	return l.Inner.Decode(b)
}
