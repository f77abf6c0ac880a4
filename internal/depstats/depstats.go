// Package depstats computes dependence summaries over sample batches:
// rank correlations and empirical tail-dependence coefficients. These are
// consumer-side diagnostics; nothing here feeds back into reordering.
package depstats

import (
	"fmt"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"gocopula/domain/core"
	"gocopula/domain/sample"
	"gocopula/internal/reorder"
)

// DefaultTailQuantile is the cutoff used for empirical tail dependence
const DefaultTailQuantile = 0.05

// PairSummary holds dependence measures for one variable pair
type PairSummary struct {
	VariableX   core.VariableKey `json:"variable_x"`
	VariableY   core.VariableKey `json:"variable_y"`
	SpearmanRho float64          `json:"spearman_rho"`
	KendallTau  float64          `json:"kendall_tau"`
	PearsonR    float64          `json:"pearson_r"`
	LowerTail   float64          `json:"lower_tail"`
	UpperTail   float64          `json:"upper_tail"`
}

// Summary holds pairwise dependence measures for a whole batch
type Summary struct {
	SampleCount  int           `json:"sample_count"`
	TailQuantile float64       `json:"tail_quantile"`
	Pairs        []PairSummary `json:"pairs"`
}

// Pair computes dependence measures for two equal-length columns.
// tailQuantile must lie in (0, 0.5); DefaultTailQuantile is a sensible pick.
func Pair(x, y []float64, tailQuantile float64) (PairSummary, error) {
	if len(x) != len(y) {
		return PairSummary{}, core.NewValidationError("pair",
			fmt.Sprintf("column lengths differ: %d vs %d", len(x), len(y)))
	}
	if len(x) < 2 {
		return PairSummary{}, core.ErrInsufficientData
	}
	if tailQuantile <= 0 || tailQuantile >= 0.5 {
		return PairSummary{}, core.NewValidationError("tail_quantile",
			fmt.Sprintf("must be in (0, 0.5), got %v", tailQuantile))
	}

	xRanks := reorder.AverageRanks(x)
	yRanks := reorder.AverageRanks(y)

	// A constant column has no rank variance, so its correlations are
	// undefined; report zero dependence instead of NaN, which neither JSON
	// nor the run store can represent.
	var rho, tau, pearson float64
	if !isConstant(x) && !isConstant(y) {
		// Spearman's rho is Pearson correlation of the average ranks
		rho = stat.Correlation(xRanks, yRanks, nil)
		tau = stat.Kendall(x, y, nil)

		p, err := stats.Pearson(stats.Float64Data(x), stats.Float64Data(y))
		if err != nil {
			return PairSummary{}, fmt.Errorf("pearson correlation: %w", err)
		}
		pearson = p
	}

	lower, upper := tailDependence(xRanks, yRanks, len(x), tailQuantile)

	return PairSummary{
		SpearmanRho: rho,
		KendallTau:  tau,
		PearsonR:    pearson,
		LowerTail:   lower,
		UpperTail:   upper,
	}, nil
}

// Summarize computes PairSummary for every variable pair in the batch
func Summarize(b *sample.Batch, tailQuantile float64) (*Summary, error) {
	if b == nil {
		return nil, core.NewValidationError("batch", "batch is required")
	}
	if b.SampleCount() < 2 {
		return nil, core.ErrInsufficientData
	}
	if tailQuantile == 0 {
		tailQuantile = DefaultTailQuantile
	}

	summary := &Summary{
		SampleCount:  b.SampleCount(),
		TailQuantile: tailQuantile,
	}

	n := b.VariableCount()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			pair, err := Pair(b.ColumnAt(i), b.ColumnAt(j), tailQuantile)
			if err != nil {
				return nil, fmt.Errorf("pair %s/%s: %w", b.KeyAt(i), b.KeyAt(j), err)
			}
			pair.VariableX = b.KeyAt(i)
			pair.VariableY = b.KeyAt(j)
			summary.Pairs = append(summary.Pairs, pair)
		}
	}
	return summary, nil
}

func isConstant(values []float64) bool {
	for _, v := range values[1:] {
		if v != values[0] {
			return false
		}
	}
	return true
}

// tailDependence estimates lower and upper tail dependence from rank
// pseudo-observations: the share of samples jointly inside the q (resp.
// 1-q) rank corner, normalized by q.
func tailDependence(xRanks, yRanks []float64, n int, q float64) (lower, upper float64) {
	lowCut := q * float64(n)
	highCut := (1 - q) * float64(n)

	lowCount, highCount := 0, 0
	for i := 0; i < n; i++ {
		if xRanks[i] <= lowCut && yRanks[i] <= lowCut {
			lowCount++
		}
		if xRanks[i] > highCut && yRanks[i] > highCut {
			highCount++
		}
	}

	denom := q * float64(n)
	if denom == 0 {
		return 0, 0
	}
	return float64(lowCount) / denom, float64(highCount) / denom
}
