package codec

import (
	"github.com/fxamacker/cbor/v2"
	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/proto"
)

// CBOR serializes values with fxamacker/cbor. Construct with NewCBOR or MustCBOR.
//
// Deterministic mode uses RFC 8949 core deterministic encoding, which keeps
// encoded set and sorted set members byte-stable so SREM/ZREM match the
// bytes written by SADD/ZADD even for map-typed values.
type CBOR[V any] struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCBOR[V any](deterministic bool) (CBOR[V], error) {
	eo := cbor.PreferredUnsortedEncOptions()
	if deterministic {
		eo = cbor.CoreDetEncOptions()
	}
	eo.Time = cbor.TimeRFC3339Nano

	em, err := eo.EncMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	dm, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return CBOR[V]{}, err
	}
	return CBOR[V]{enc: em, dec: dm}, nil
}

// MustCBOR is NewCBOR for package-level variables; it panics on error.
func MustCBOR[V any](deterministic bool) CBOR[V] {
	c, err := NewCBOR[V](deterministic)
	if err != nil {
		panic(err)
	}
	return c
}

func (c CBOR[V]) Encode(v V) ([]byte, error) { return c.enc.Marshal(v) }

func (c CBOR[V]) Decode(b []byte) (V, error) {
	var v V
	err := c.dec.Unmarshal(b, &v)
	return v, err
}

// Msgpack uses vmihailenco/msgpack struct tags (`msgpack:"name"`).
// The zero value is ready to use.
type Msgpack[V any] struct{}

func (Msgpack[V]) Encode(v V) ([]byte, error) { return msgpack.Marshal(v) }

func (Msgpack[V]) Decode(b []byte) (V, error) {
	var v V
	err := msgpack.Unmarshal(b, &v)
	return v, err
}

// Protobuf stores generated messages in their wire format.
type Protobuf[M proto.Message] struct {
	newMsg func() M // e.g. func() *pb.User { return new(pb.User) }
}

func NewProtobuf[M proto.Message](ctor func() M) Protobuf[M] {
	return Protobuf[M]{newMsg: ctor}
}

func (Protobuf[M]) Encode(m M) ([]byte, error) { return proto.Marshal(m) }

func (p Protobuf[M]) Decode(b []byte) (M, error) {
	m := p.newMsg()
	return m, proto.Unmarshal(b, m)
}
