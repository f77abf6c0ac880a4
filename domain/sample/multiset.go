package sample

import "sort"

// SameMultiset reports whether two columns contain exactly the same values,
// ignoring order. This is the marginal-preservation check: a reordered
// column must be a permutation of its source column.
func SameMultiset(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	sortedA := make([]float64, len(a))
	sortedB := make([]float64, len(b))
	copy(sortedA, a)
	copy(sortedB, b)
	sort.Float64s(sortedA)
	sort.Float64s(sortedB)
	for i := range sortedA {
		if sortedA[i] != sortedB[i] {
			return false
		}
	}
	return true
}
