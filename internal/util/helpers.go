package util

import "cmp"

// Ptr returns a pointer to the value, for building optional patch fields.
func Ptr[T any](v T) *T {
	return &v
}

// Clamp constrains v to [lo, hi]. When hi < lo the result is hi, so an empty
// range clamps to -1 for index math.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return min(max(v, lo), hi)
}
