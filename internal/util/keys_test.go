package util

import (
	"errors"
	"testing"
)

type color int

const (
	red color = iota
	green
)

func (c color) String() string { return [...]string{"Red", "Green"}[c] }

type label string

func TestNodeName(t *testing.T) {
	cases := map[string]string{
		"HashDb":            "hash_db:",
		"SortSetDb":         "sort_set_db:",
		"abc":               "abc:",
		"DistributedLockDb": "distributed_lock_db:",
		"":                  ":",
		"a-B_c":             "a-_b_c:",
		"ÄbC":               "Äb_c:", // only ASCII letters are folded
	}
	for in, want := range cases {
		if got := NodeName(in); got != want {
			t.Fatalf("NodeName(%q)=%q want %q", in, got, want)
		}
	}
}

func TestFormatArg(t *testing.T) {
	var nilPtr *int
	var nilErr error
	cases := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{nilPtr, "null"},
		{nilErr, "null"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint8(9), "9"},
		{green, "1"},
		{"MiXeD", "mixed"},
		{label("ABC"), "abc"},
		{true, "true"},
		{1.5, "1.5"},
		{errors.New("Boom"), "boom"},
	}
	for _, tc := range cases {
		if got := FormatArg(tc.in); got != tc.want {
			t.Fatalf("FormatArg(%#v)=%q want %q", tc.in, got, tc.want)
		}
	}
	if FormatArg(red) != "0" {
		t.Fatalf("enum should render its integer value")
	}
}
