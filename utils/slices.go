package utils

import (
	"golang.org/x/exp/constraints"
	"golang.org/x/exp/slices"
)

// GetKeys returns the keys of the input map.
// Order is not guaranteed.
func GetKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {

	keys = make([]K, len(m))

	var i int
	for key := range m {
		keys[i] = key
		i++
	}

	return
}

// GetSortedKeys returns the sorted keys of a map.
func GetSortedKeys[K constraints.Ordered, V any](m map[K]V) (keys []K) {
	keys = GetKeys(m)
	slices.Sort(keys)
	return
}

// ConvertSlice copies src on dst converting each value to the integer type of dst.
// The copy is truncated to the shortest of both slices.
func ConvertSlice[T, V constraints.Integer](dst []T, src []V) {
	for i := range dst[:min(len(dst), len(src))] {
		dst[i] = T(src[i])
	}
}
