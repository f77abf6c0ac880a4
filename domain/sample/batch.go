package sample

import (
	"fmt"
	"math"

	"gocopula/domain/core"
)

// Batch holds equal-length sample columns for an ordered set of variables.
// A batch is the shape shared by marginal draws, copula draws, and reordered
// output: n variables, S samples per variable. Columns are stored in
// insertion order so positional rank alignment across two batches is
// meaningful.
type Batch struct {
	keys    []core.VariableKey
	columns [][]float64
	index   map[core.VariableKey]int
}

// NewBatch creates an empty batch
func NewBatch() *Batch {
	return &Batch{index: make(map[core.VariableKey]int)}
}

// FromColumns builds a batch from parallel key and column slices.
// Fails fast on ragged, empty, duplicate-key, or non-finite input so no
// partially valid batch ever reaches the reorderer.
func FromColumns(keys []core.VariableKey, columns [][]float64) (*Batch, error) {
	if len(keys) != len(columns) {
		return nil, core.NewValidationError("columns", "key count does not match column count")
	}
	b := NewBatch()
	for i, key := range keys {
		if err := b.AddColumn(key, columns[i]); err != nil {
			return nil, err
		}
	}
	if b.VariableCount() == 0 {
		return nil, core.NewValidationError("columns", "batch must contain at least one variable")
	}
	return b, nil
}

// AddColumn appends one variable's samples to the batch
func (b *Batch) AddColumn(key core.VariableKey, values []float64) error {
	if key.IsEmpty() {
		return core.NewValidationError("key", "variable key cannot be empty")
	}
	if _, exists := b.index[key]; exists {
		return core.ErrDuplicateKey
	}
	if len(values) == 0 {
		return core.NewValidationError(key.String(), "column must contain at least one sample")
	}
	if len(b.columns) > 0 && len(values) != len(b.columns[0]) {
		return core.NewShapeMismatchError(key, len(b.columns[0]), len(values))
	}
	for j, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return core.NewNonFiniteError(key, j)
		}
	}
	col := make([]float64, len(values))
	copy(col, values)
	b.index[key] = len(b.keys)
	b.keys = append(b.keys, key)
	b.columns = append(b.columns, col)
	return nil
}

// Keys returns the variable keys in column order
func (b *Batch) Keys() []core.VariableKey {
	keys := make([]core.VariableKey, len(b.keys))
	copy(keys, b.keys)
	return keys
}

// Column returns the samples for a variable key.
// The returned slice is the backing array; callers must not mutate it.
func (b *Batch) Column(key core.VariableKey) ([]float64, bool) {
	i, ok := b.index[key]
	if !ok {
		return nil, false
	}
	return b.columns[i], true
}

// ColumnAt returns the samples at a column position
func (b *Batch) ColumnAt(i int) []float64 {
	return b.columns[i]
}

// KeyAt returns the variable key at a column position
func (b *Batch) KeyAt(i int) core.VariableKey {
	return b.keys[i]
}

// VariableCount returns n, the number of variables
func (b *Batch) VariableCount() int {
	return len(b.keys)
}

// SampleCount returns S, the per-variable sample count
func (b *Batch) SampleCount() int {
	if len(b.columns) == 0 {
		return 0
	}
	return len(b.columns[0])
}

// ShapeEquals reports whether two batches share variable keys, key order,
// and sample count. Rank transfer between batches requires exactly this.
func (b *Batch) ShapeEquals(other *Batch) error {
	if other == nil {
		return core.NewValidationError("batch", "cannot compare against nil batch")
	}
	if b.VariableCount() != other.VariableCount() {
		return fmt.Errorf("%w: variable counts differ: %d vs %d",
			core.ErrShapeMismatch, b.VariableCount(), other.VariableCount())
	}
	for i, key := range b.keys {
		if other.keys[i] != key {
			return fmt.Errorf("%w: variable keys differ at position %d", core.ErrShapeMismatch, i)
		}
	}
	if b.SampleCount() != other.SampleCount() {
		return core.NewShapeMismatchError(b.keys[0], b.SampleCount(), other.SampleCount())
	}
	return nil
}

// Clone returns a deep copy of the batch
func (b *Batch) Clone() *Batch {
	out := NewBatch()
	for i, key := range b.keys {
		// AddColumn copies the slice and cannot fail on an already-valid batch
		_ = out.AddColumn(key, b.columns[i])
	}
	return out
}

// Hash fingerprints the batch contents for audit trails
func (b *Batch) Hash() core.BatchHash {
	return core.ComputeBatchHash(b.keys, b.columns)
}
