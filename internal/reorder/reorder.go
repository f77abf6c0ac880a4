// Package reorder implements rank reordering: permuting independently
// drawn marginal samples so their joint rank pattern matches a batch of
// copula samples (the Iman-Conover construction). Each variable keeps its
// empirical marginal distribution exactly; only the ordering changes.
package reorder

import (
	"context"
	"sort"
	"sync"

	"golang.org/x/sync/semaphore"

	"gocopula/domain/core"
	"gocopula/domain/sample"
)

// Column reorders one variable: sort the marginal samples, rank the copula
// samples, then gather the r-th smallest marginal value into the position
// holding copula rank r. The input slices are not modified.
func Column(marginal, copula []float64, policy TiePolicy) []float64 {
	sorted := make([]float64, len(marginal))
	copy(sorted, marginal)
	sort.Float64s(sorted)

	ranks := Ranks(copula, policy)

	out := make([]float64, len(copula))
	for j, r := range ranks {
		out[j] = sorted[r]
	}
	return out
}

// Reorderer applies rank reordering across a whole batch pair.
// The per-variable transforms share no state, so they can run under a
// bounded number of workers; Workers <= 1 keeps the plain sequential loop.
type Reorderer struct {
	policy  TiePolicy
	workers int
}

// NewReorderer creates a reorderer with the default tie policy and
// sequential execution
func NewReorderer() *Reorderer {
	return &Reorderer{policy: TieFirstWins, workers: 1}
}

// SetTiePolicy configures tie breaking for equal copula sample values
func (r *Reorderer) SetTiePolicy(policy TiePolicy) error {
	if !policy.Valid() {
		return core.NewValidationError("tie_policy", "unknown policy "+string(policy))
	}
	r.policy = policy
	return nil
}

// TiePolicy returns the configured tie policy
func (r *Reorderer) TiePolicy() TiePolicy {
	return r.policy
}

// SetWorkers bounds concurrent per-variable transforms
func (r *Reorderer) SetWorkers(n int) {
	if n < 1 {
		n = 1
	}
	r.workers = n
}

// Reorder produces a batch whose columns are permutations of the marginal
// columns, ordered by the copula columns' ranks. Validation failures
// surface before any computation and no partial batch is ever returned.
func (r *Reorderer) Reorder(ctx context.Context, marginals, copulaSamples *sample.Batch) (*sample.Batch, error) {
	if marginals == nil || copulaSamples == nil {
		return nil, core.NewValidationError("batch", "marginal and copula batches are both required")
	}
	if err := marginals.ShapeEquals(copulaSamples); err != nil {
		return nil, err
	}

	n := marginals.VariableCount()
	out := make([][]float64, n)

	if r.workers <= 1 || n == 1 {
		for i := 0; i < n; i++ {
			out[i] = Column(marginals.ColumnAt(i), copulaSamples.ColumnAt(i), r.policy)
		}
		return sample.FromColumns(marginals.Keys(), out)
	}

	sem := semaphore.NewWeighted(int64(r.workers))
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer sem.Release(1)
			// Disjoint writes per variable; no shared state
			out[i] = Column(marginals.ColumnAt(i), copulaSamples.ColumnAt(i), r.policy)
		}(i)
	}
	wg.Wait()

	return sample.FromColumns(marginals.Keys(), out)
}
