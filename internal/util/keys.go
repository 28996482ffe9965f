package util

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// NodeName turns a node name into its key namespace: "SortSetDb" -> "sort_set_db:".
func NodeName(node string) string {
	var b strings.Builder
	b.Grow(len(node) + 4)
	for _, r := range node {
		if 'A' <= r && r <= 'Z' {
			if b.Len() > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte(':')
	return b.String()
}

// FormatArg renders one key argument, lower-cased.
// Integer kinds render their numeric value even when the type has a String
// method, so enum-like constants keep a stable key segment.
func FormatArg(v any) string {
	if v == nil {
		return "null"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		if rv.IsNil() {
			return "null"
		}
	}
	return strings.ToLower(fmt.Sprint(v))
}
