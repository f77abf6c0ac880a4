package ports

import (
	"context"

	"gocopula/domain/core"
	"gocopula/domain/sample"
)

// MarginalSpec describes one variable's marginal distribution for sampling
type MarginalSpec struct {
	Key    core.VariableKey   `json:"key"`
	Family string             `json:"family"` // "normal", "lognormal", "gamma", ...
	Params map[string]float64 `json:"params"`
}

// MarginalSamplerPort draws independent marginal samples, one column per
// spec. Implementations must produce finite values and honor the seed:
// identical specs and seed yield an identical batch.
type MarginalSamplerPort interface {
	Sample(ctx context.Context, specs []MarginalSpec, sampleCount int, seed int64) (*sample.Batch, error)
}

// CopulaSourcePort supplies copula samples (uniform margins, jointly
// dependent). Generation of these samples is outside this system; a source
// only hands over pre-generated draws, e.g. loaded from a file.
type CopulaSourcePort interface {
	CopulaSamples(ctx context.Context) (*sample.Batch, error)
}
