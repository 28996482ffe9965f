// Package expire parses the colon-delimited expiration attribute used by key
// config sources: [[[days:]hours:]minutes:]seconds.
package expire

import (
	"strconv"
	"strings"
	"time"
)

const maxSegments = 4

// Parse converts s into a duration. Missing leading segments count as zero.
// Hours must be below 24 and minutes and seconds below 60; the seconds segment
// may carry a fractional part. ok is false for an empty, malformed or
// non-positive value.
func Parse(s string) (d time.Duration, ok bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	parts := strings.Split(s, ":")
	if len(parts) > maxSegments {
		return 0, false
	}
	for len(parts) < maxSegments {
		parts = append([]string{"0"}, parts...)
	}

	days, err := segment(parts[0], -1)
	if err != nil {
		return 0, false
	}
	hours, err := segment(parts[1], 24)
	if err != nil {
		return 0, false
	}
	minutes, err := segment(parts[2], 60)
	if err != nil {
		return 0, false
	}
	secs, err := seconds(parts[3])
	if err != nil {
		return 0, false
	}

	d = time.Duration(days)*24*time.Hour +
		time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		secs
	if d <= 0 {
		return 0, false
	}
	return d, true
}

// segment parses a non-negative integer below limit (limit < 0 disables the bound).
func segment(s string, limit int64) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" || s[0] == '+' || s[0] == '-' {
		return 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseInt(s, 10, 32)
	if err != nil {
		return 0, err
	}
	if limit >= 0 && v >= limit {
		return 0, strconv.ErrRange
	}
	return v, nil
}

func seconds(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	whole, frac, hasFrac := strings.Cut(s, ".")
	sec, err := segment(whole, 60)
	if err != nil {
		return 0, err
	}
	d := time.Duration(sec) * time.Second
	if !hasFrac {
		return d, nil
	}
	if frac == "" || len(frac) > 7 || strings.ContainsAny(frac, "+-") {
		return 0, strconv.ErrSyntax
	}
	n, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, err
	}
	for i := len(frac); i < 9; i++ {
		n *= 10
	}
	return d + time.Duration(n), nil
}
