// Package testkit provides deterministic fixtures for tests: seeded RNG
// streams and synthetic sample batches with known rank structure.
package testkit

import (
	"context"
	"fmt"
	"hash/fnv"
	"math/rand"
	"sort"
	"sync"

	"gocopula/domain/core"
	"gocopula/domain/sample"
	"gocopula/ports"
)

// TestKit provides testing utilities and fixtures
type TestKit struct {
	rng *RNGAdapter
}

// NewTestKit creates a new test kit instance
func NewTestKit() *TestKit {
	return &TestKit{rng: NewRNGAdapter()}
}

// RNGAdapter returns the seeded RNG port implementation
func (t *TestKit) RNGAdapter() ports.RNGPort {
	return t.rng
}

// IndependentBatch draws n independent uniform columns of s samples
func (t *TestKit) IndependentBatch(n, s int, seed int64) (*sample.Batch, error) {
	rng, err := t.rng.SeededStream(context.Background(), "independent_batch", seed)
	if err != nil {
		return nil, err
	}
	keys := make([]core.VariableKey, n)
	columns := make([][]float64, n)
	for i := 0; i < n; i++ {
		keys[i] = core.VariableKey(fmt.Sprintf("u%d", i+1))
		columns[i] = make([]float64, s)
		for j := 0; j < s; j++ {
			columns[i][j] = rng.Float64()
		}
	}
	return sample.FromColumns(keys, columns)
}

// ComonotonicBatch draws one uniform column and repeats its rank pattern
// across all n variables (perfect positive dependence), with small
// per-variable jitter that never crosses rank boundaries.
func (t *TestKit) ComonotonicBatch(n, s int, seed int64) (*sample.Batch, error) {
	rng, err := t.rng.SeededStream(context.Background(), "comonotonic_batch", seed)
	if err != nil {
		return nil, err
	}

	base := make([]float64, s)
	for j := range base {
		base[j] = rng.Float64()
	}
	// Spread ranks evenly so jitter below half a slot preserves order
	order := make([]int, s)
	for j := range order {
		order[j] = j
	}
	sort.Slice(order, func(a, b int) bool { return base[order[a]] < base[order[b]] })
	slot := 1.0 / float64(s)
	ranked := make([]float64, s)
	for r, idx := range order {
		ranked[idx] = (float64(r) + 0.5) * slot
	}

	keys := make([]core.VariableKey, n)
	columns := make([][]float64, n)
	for i := 0; i < n; i++ {
		keys[i] = core.VariableKey(fmt.Sprintf("u%d", i+1))
		columns[i] = make([]float64, s)
		for j := 0; j < s; j++ {
			columns[i][j] = ranked[j] + (rng.Float64()-0.5)*slot*0.4
		}
	}
	return sample.FromColumns(keys, columns)
}

// RNGAdapter implements RNGPort with cached named streams
type RNGAdapter struct {
	mu      sync.Mutex
	streams map[string]*rand.Rand
}

// NewRNGAdapter creates a deterministic RNG adapter
func NewRNGAdapter() *RNGAdapter {
	return &RNGAdapter{streams: make(map[string]*rand.Rand)}
}

// SeededStream creates or returns a deterministic RNG for a named operation
func (a *RNGAdapter) SeededStream(ctx context.Context, name string, seed int64) (*rand.Rand, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	key := fmt.Sprintf("%s:%d", name, seed)
	if stream, ok := a.streams[key]; ok {
		return stream, nil
	}

	h := fnv.New64a()
	h.Write([]byte(name))
	stream := rand.New(rand.NewSource(seed ^ int64(h.Sum64())))
	a.streams[key] = stream
	return stream, nil
}
