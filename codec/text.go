package codec

// String stores Go strings as their UTF-8 bytes, so values stay readable
// with redis-cli and compatible with INCRBY/APPEND on plain string keys.
type String struct{}

func (String) Encode(s string) ([]byte, error) { return []byte(s), nil }
func (String) Decode(b []byte) (string, error) { return string(b), nil }

// Bytes passes raw payloads through unchanged.
type Bytes struct{}

func (Bytes) Encode(b []byte) ([]byte, error) { return b, nil }
func (Bytes) Decode(b []byte) ([]byte, error) { return b, nil }
