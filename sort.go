package main

import (
	"cmp"
)

// Wraps an anonymous getter function and produces a comparator
// suitable for slices.SortFunc
func makeComparator[T cmp.Ordered](getter func(ProcessRecord) T) func(a, b ProcessRecord) int {
	return func(a, b ProcessRecord) int {
		return cmp.Compare(getter(a), getter(b))
	}
}

var (
	byName = makeComparator(func(r ProcessRecord) string { return r.Name })
	byPss  = makeComparator(func(r ProcessRecord) float32 { return r.Pss })
)

// byPssThenName orders by ascending pss; equal pss falls back to name.
func byPssThenName(a, b ProcessRecord) int {
	if c := byPss(a, b); c != 0 {
		return c
	}
	return byName(a, b)
}
