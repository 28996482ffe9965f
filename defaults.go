package keycache

// coalesce resolves an unset option: the zero T selects def. Options whose
// invalid range is wider than the zero value (negative durations) check
// their bounds at the call site.
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
