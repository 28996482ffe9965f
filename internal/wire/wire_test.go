package wire

import (
	"bytes"
	"errors"
	"math"
	"testing"
)

func TestRoundTrip(t *testing.T) {
	cases := []struct {
		gen     uint64
		payload []byte
	}{
		{0, nil},
		{7, []byte(`{"id":1}`)},
		{math.MaxUint64, []byte{0, 1, 2}},
	}
	for _, tc := range cases {
		gen, p, err := Decode(Encode(tc.gen, tc.payload))
		if err != nil {
			t.Fatalf("decode gen=%d: %v", tc.gen, err)
		}
		if gen != tc.gen || !bytes.Equal(p, tc.payload) {
			t.Fatalf("got gen=%d payload=%q, want gen=%d payload=%q", gen, p, tc.gen, tc.payload)
		}
	}
}

func TestCorrupt(t *testing.T) {
	good := Encode(3, []byte("abc"))

	badMagic := append([]byte(nil), good...)
	badMagic[0] = 'X'
	badVersion := append([]byte(nil), good...)
	badVersion[4] = 9

	for name, b := range map[string][]byte{
		"empty":     nil,
		"short":     good[:header-1],
		"truncated": good[:len(good)-1],
		"trailing":  append(append([]byte(nil), good...), 0),
		"magic":     badMagic,
		"version":   badVersion,
		"raw value": []byte(`{"id":1,"name":"plain json"}`),
	} {
		if _, _, err := Decode(b); !errors.Is(err, ErrCorrupt) {
			t.Fatalf("%s: err = %v, want ErrCorrupt", name, err)
		}
	}
}
