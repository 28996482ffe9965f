package dblist

import (
	"reflect"
	"testing"
)

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want []int
		ok   bool
	}{
		{"2,4-6,9", []int{2, 4, 5, 6, 9}, true},
		{"1-1", []int{1}, true},
		{"0", []int{0}, true},
		{" 3 , 1 - 2 ", []int{3, 1, 2}, true},
		{"1,1,0-1", []int{1, 1, 0, 1}, true}, // duplicates kept
		{"5-3", []int{}, true},
		{"a,b-c,-1,1-2-3", []int{}, true},
		{"7,x,8", []int{7, 8}, true},
		{",,", []int{}, true},
	}
	for _, tc := range cases {
		got, ok := Parse(tc.in)
		if ok != tc.ok {
			t.Fatalf("Parse(%q) ok=%v want %v", tc.in, ok, tc.ok)
		}
		if got == nil {
			t.Fatalf("Parse(%q) returned nil for a present db list", tc.in)
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Parse(%q)=%v want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseEmptyIsAbsent(t *testing.T) {
	got, ok := Parse("")
	if ok || got != nil {
		t.Fatalf("empty list should be absent, got %v ok=%v", got, ok)
	}
}

func TestParseFuncReportsSkippedTokens(t *testing.T) {
	var skipped []string
	got, ok := ParseFunc("1,5-3,x,2", func(tok string) { skipped = append(skipped, tok) })
	if !ok || !reflect.DeepEqual(got, []int{1, 2}) {
		t.Fatalf("got %v ok=%v", got, ok)
	}
	if !reflect.DeepEqual(skipped, []string{"5-3", "x"}) {
		t.Fatalf("skipped=%v", skipped)
	}
}

func TestParseResultCannotGrowIntoShared(t *testing.T) {
	got, _ := Parse("1,2")
	if cap(got) != len(got) {
		t.Fatalf("expected trimmed capacity, len=%d cap=%d", len(got), cap(got))
	}
}
