package codec

import (
	"bytes"
	"strings"
	"testing"

	"google.golang.org/protobuf/types/known/wrapperspb"
)

type point struct {
	X int `json:"x" msgpack:"x" cbor:"x"`
	Y int `json:"y" msgpack:"y" cbor:"y"`
}

func TestDefaultPicksPassthroughForText(t *testing.T) {
	if _, ok := Default[string]().(String); !ok {
		t.Fatalf("Default[string] should be String")
	}
	if _, ok := Default[[]byte]().(Bytes); !ok {
		t.Fatalf("Default[[]byte] should be Bytes")
	}
	if _, ok := Default[point]().(JSON[point]); !ok {
		t.Fatalf("Default[point] should be JSON")
	}

	b, err := Default[string]().Encode("Hello")
	if err != nil || string(b) != "Hello" {
		t.Fatalf("string passthrough: %q %v", b, err)
	}
}

func TestStructuredCodecs(t *testing.T) {
	in := point{X: 3, Y: -4}
	codecs := map[string]Codec[point]{
		"json":    JSON[point]{},
		"msgpack": Msgpack[point]{},
		"cbor":    MustCBOR[point](false),
		"cbor-d":  MustCBOR[point](true),
	}
	for name, cd := range codecs {
		b, err := cd.Encode(in)
		if err != nil {
			t.Fatalf("%s encode: %v", name, err)
		}
		out, err := cd.Decode(b)
		if err != nil {
			t.Fatalf("%s decode: %v", name, err)
		}
		if out != in {
			t.Fatalf("%s: got %+v want %+v", name, out, in)
		}
	}
}

func TestDeterministicCBORIsStable(t *testing.T) {
	cd := MustCBOR[map[string]int](true)
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	first, err := cd.Encode(m)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 20; i++ {
		again, _ := cd.Encode(m)
		if !bytes.Equal(first, again) {
			t.Fatalf("deterministic CBOR changed between encodes")
		}
	}
}

func TestProtobuf(t *testing.T) {
	cd := NewProtobuf(func() *wrapperspb.StringValue { return new(wrapperspb.StringValue) })
	b, err := cd.Encode(wrapperspb.String("ada"))
	if err != nil {
		t.Fatal(err)
	}
	m, err := cd.Decode(b)
	if err != nil {
		t.Fatal(err)
	}
	if m.GetValue() != "ada" {
		t.Fatalf("got %q", m.GetValue())
	}
}

func TestLimit(t *testing.T) {
	cd := Limit[string]{Inner: String{}, MaxEncode: 4, MaxDecode: 3}
	if _, err := cd.Encode("12345"); err == nil {
		t.Fatalf("expected encode limit error")
	}
	if _, err := cd.Decode([]byte("1234")); err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected decode limit error, got %v", err)
	}
	if v, err := cd.Decode([]byte("123")); err != nil || v != "123" {
		t.Fatalf("within limit: %q %v", v, err)
	}
}
