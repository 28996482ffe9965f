// Package dblist parses shard specifications such as "2,4-6,9" into an
// explicit list of db indices.
package dblist

import (
	"strconv"
	"strings"
)

// Parse expands list into shard ids. Tokens are either a single non-negative
// integer or an inclusive "lo-hi" range with lo <= hi; anything else is skipped.
//
// ok is false only when list is empty, which callers treat as "not configured".
// A list whose tokens are all invalid yields a non-nil empty slice and ok=true.
func Parse(list string) (ids []int, ok bool) {
	return ParseFunc(list, nil)
}

// ParseFunc is Parse with a callback invoked for every skipped token.
func ParseFunc(list string, onSkip func(token string)) ([]int, bool) {
	if list == "" {
		return nil, false
	}
	ids := make([]int, 0, 4)
	for _, raw := range strings.Split(list, ",") {
		tok := strings.TrimSpace(raw)
		if tok == "" {
			continue
		}
		if !strings.Contains(tok, "-") {
			v, err := atoi(tok)
			if err != nil {
				skip(onSkip, tok)
				continue
			}
			ids = append(ids, v)
			continue
		}
		lo, hi, found := strings.Cut(tok, "-")
		if !found || strings.Contains(hi, "-") {
			skip(onSkip, tok)
			continue
		}
		bv, err1 := atoi(strings.TrimSpace(lo))
		ev, err2 := atoi(strings.TrimSpace(hi))
		if err1 != nil || err2 != nil || bv > ev {
			skip(onSkip, tok)
			continue
		}
		for v := bv; v <= ev; v++ {
			ids = append(ids, v)
		}
	}
	return ids[:len(ids):len(ids)], true
}

// atoi accepts plain non-negative decimal integers only.
func atoi(s string) (int, error) {
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, strconv.ErrSyntax
	}
	return strconv.Atoi(s)
}

func skip(onSkip func(string), tok string) {
	if onSkip != nil {
		onSkip(tok)
	}
}
