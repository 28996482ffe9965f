// Package wire frames payloads stored in the in-process tier.
//
//	magic(4) | ver(1) | gen(u64 be) | vlen(u32 be) | payload(vlen)
package wire

import (
	"bytes"
	"encoding/binary"
	"errors"
)

const (
	version byte = 1
	header       = 4 + 1 + 8 + 4
)

var (
	ErrCorrupt = errors.New("keycache: corrupt local entry")
	magic      = [...]byte{'K', 'C', 'L', 'T'}
)

// Encode tags payload with the generation it was read at.
func Encode(gen uint64, payload []byte) []byte {
	b := make([]byte, header+len(payload))
	copy(b, magic[:])
	b[4] = version
	binary.BigEndian.PutUint64(b[5:13], gen)
	binary.BigEndian.PutUint32(b[13:17], uint32(len(payload)))
	copy(b[header:], payload)
	return b
}

// Decode returns the generation and a view of the payload inside b.
func Decode(b []byte) (gen uint64, payload []byte, err error) {
	if len(b) < header || !bytes.Equal(b[:4], magic[:]) || b[4] != version {
		return 0, nil, ErrCorrupt
	}
	gen = binary.BigEndian.Uint64(b[5:13])
	n := binary.BigEndian.Uint32(b[13:17])
	if uint64(n) != uint64(len(b)-header) {
		return 0, nil, ErrCorrupt
	}
	return gen, b[header:], nil
}
