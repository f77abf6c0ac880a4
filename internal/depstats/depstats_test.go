package depstats

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"gocopula/domain/core"
	"gocopula/domain/sample"
)

func TestPairComonotonic(t *testing.T) {
	n := 100
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = float64(i) * 2.5
	}

	pair, err := Pair(x, y, DefaultTailQuantile)
	if err != nil {
		t.Fatalf("Pair failed: %v", err)
	}

	if math.Abs(pair.SpearmanRho-1.0) > 1e-9 {
		t.Errorf("Expected rho 1.0, got %v", pair.SpearmanRho)
	}
	if math.Abs(pair.KendallTau-1.0) > 1e-9 {
		t.Errorf("Expected tau 1.0, got %v", pair.KendallTau)
	}
	if math.Abs(pair.PearsonR-1.0) > 1e-9 {
		t.Errorf("Expected pearson 1.0, got %v", pair.PearsonR)
	}
	if math.Abs(pair.LowerTail-1.0) > 1e-9 {
		t.Errorf("Expected lower tail 1.0 for comonotonic data, got %v", pair.LowerTail)
	}
	if math.Abs(pair.UpperTail-1.0) > 1e-9 {
		t.Errorf("Expected upper tail 1.0 for comonotonic data, got %v", pair.UpperTail)
	}
}

func TestPairCountermonotonic(t *testing.T) {
	n := 100
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i)
		y[i] = float64(n - i)
	}

	pair, err := Pair(x, y, DefaultTailQuantile)
	if err != nil {
		t.Fatalf("Pair failed: %v", err)
	}

	if math.Abs(pair.SpearmanRho+1.0) > 1e-9 {
		t.Errorf("Expected rho -1.0, got %v", pair.SpearmanRho)
	}
	if math.Abs(pair.KendallTau+1.0) > 1e-9 {
		t.Errorf("Expected tau -1.0, got %v", pair.KendallTau)
	}
	if pair.LowerTail != 0 || pair.UpperTail != 0 {
		t.Errorf("Expected zero tail dependence, got lower=%v upper=%v", pair.LowerTail, pair.UpperTail)
	}
}

func TestPairConstantColumn(t *testing.T) {
	x := []float64{3, 1, 4, 1, 5}
	y := []float64{0.5, 0.5, 0.5, 0.5, 0.5}

	pair, err := Pair(x, y, DefaultTailQuantile)
	if err != nil {
		t.Fatalf("Pair failed: %v", err)
	}

	// A constant column gives zero rank variance; correlations must come
	// back as zero, never NaN
	for name, v := range map[string]float64{
		"rho":        pair.SpearmanRho,
		"tau":        pair.KendallTau,
		"pearson":    pair.PearsonR,
		"lower tail": pair.LowerTail,
		"upper tail": pair.UpperTail,
	} {
		if math.IsNaN(v) {
			t.Errorf("Expected finite %s for constant column, got NaN", name)
		}
	}
	if pair.SpearmanRho != 0 || pair.KendallTau != 0 || pair.PearsonR != 0 {
		t.Errorf("Expected zero dependence for constant column, got rho=%v tau=%v pearson=%v",
			pair.SpearmanRho, pair.KendallTau, pair.PearsonR)
	}

	if _, err := json.Marshal(pair); err != nil {
		t.Errorf("Pair summary with constant column is not JSON-encodable: %v", err)
	}
}

func TestPairValidation(t *testing.T) {
	if _, err := Pair([]float64{1, 2}, []float64{1, 2, 3}, 0.05); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for ragged pair, got %v", err)
	}
	if _, err := Pair([]float64{1}, []float64{2}, 0.05); !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData for single sample, got %v", err)
	}
	if _, err := Pair([]float64{1, 2}, []float64{3, 4}, 0.7); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput for bad quantile, got %v", err)
	}
}

func TestSummarize(t *testing.T) {
	b, err := sample.FromColumns(
		[]core.VariableKey{"a", "b", "c"},
		[][]float64{
			{1, 2, 3, 4, 5},
			{2, 4, 6, 8, 10},
			{5, 4, 3, 2, 1},
		},
	)
	if err != nil {
		t.Fatalf("Failed to build batch: %v", err)
	}

	summary, err := Summarize(b, 0)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}

	if summary.TailQuantile != DefaultTailQuantile {
		t.Errorf("Expected default tail quantile, got %v", summary.TailQuantile)
	}
	if len(summary.Pairs) != 3 {
		t.Fatalf("Expected 3 pairs for 3 variables, got %d", len(summary.Pairs))
	}

	// a/b move together, a/c move opposite
	ab := summary.Pairs[0]
	if ab.VariableX != "a" || ab.VariableY != "b" {
		t.Fatalf("Unexpected pair ordering: %s/%s", ab.VariableX, ab.VariableY)
	}
	if math.Abs(ab.SpearmanRho-1.0) > 1e-9 {
		t.Errorf("Expected rho(a,b)=1, got %v", ab.SpearmanRho)
	}
	ac := summary.Pairs[1]
	if math.Abs(ac.SpearmanRho+1.0) > 1e-9 {
		t.Errorf("Expected rho(a,c)=-1, got %v", ac.SpearmanRho)
	}
}

func TestSummarizeInsufficientData(t *testing.T) {
	b, err := sample.FromColumns([]core.VariableKey{"a", "b"}, [][]float64{{1}, {2}})
	if err != nil {
		t.Fatalf("Failed to build batch: %v", err)
	}
	if _, err := Summarize(b, 0); !errors.Is(err, core.ErrInsufficientData) {
		t.Errorf("Expected ErrInsufficientData, got %v", err)
	}
}
