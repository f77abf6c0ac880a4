package reorder

import (
	"sort"
)

// TiePolicy controls how equal sample values are ranked. Every policy must
// yield a permutation of 0..S-1: the gather step indexes sorted marginals
// by rank, so averaged ranks (as used for Spearman) are not valid here.
type TiePolicy string

const (
	// TieFirstWins breaks ties by original position: the earlier sample
	// gets the lower rank. This is the default because it makes output
	// reproducible for identical input, including identical tie patterns.
	TieFirstWins TiePolicy = "first_wins"

	// TieLastWins gives the later of two equal samples the lower rank.
	// Provided for parity with reference implementations that rank ties
	// in reverse encounter order.
	TieLastWins TiePolicy = "last_wins"
)

// Valid reports whether the policy is one of the defined constants
func (p TiePolicy) Valid() bool {
	return p == TieFirstWins || p == TieLastWins
}

// Ranks computes the 0-based rank of each value among its peers (0 = smallest).
// The result is always a permutation of 0..len(values)-1; ties are resolved
// deterministically according to the policy.
func Ranks(values []float64, policy TiePolicy) []int {
	n := len(values)

	type pair struct {
		value float64
		index int
	}

	pairs := make([]pair, n)
	for i, v := range values {
		pairs[i] = pair{value: v, index: i}
	}

	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].value != pairs[j].value {
			return pairs[i].value < pairs[j].value
		}
		if policy == TieLastWins {
			return pairs[i].index > pairs[j].index
		}
		return pairs[i].index < pairs[j].index
	})

	ranks := make([]int, n)
	for k, p := range pairs {
		ranks[p.index] = k
	}
	return ranks
}

// AverageRanks converts values to 1-based ranks with ties averaged, the
// convention rank correlation expects. Not usable for reordering; see Ranks.
func AverageRanks(data []float64) []float64 {
	n := len(data)
	if n == 0 {
		return []float64{}
	}

	type pair struct {
		value float64
		index int
	}

	pairs := make([]pair, n)
	for i, v := range data {
		pairs[i] = pair{v, i}
	}

	sort.Slice(pairs, func(i, j int) bool {
		return pairs[i].value < pairs[j].value
	})

	ranks := make([]float64, n)

	// Assign ranks, handling ties by averaging
	i := 0
	for i < n {
		j := i + 1
		for j < n && pairs[j].value == pairs[i].value {
			j++
		}

		groupSize := j - i
		avgRank := float64(i+1) + float64(groupSize-1)/2.0

		for k := i; k < j; k++ {
			ranks[pairs[k].index] = avgRank
		}

		i = j
	}

	return ranks
}
