package run

import (
	"fmt"

	"gocopula/domain/core"
	"gocopula/internal/depstats"
)

// Manifest records one reorder invocation: input shapes, tie policy,
// fingerprints of both input batches and the output, and dependence
// summaries measured on the copula input and on the reordered output.
// This is the audit trail a downstream consumer sees.
type Manifest struct {
	RunID         core.RunID        `json:"run_id"`
	VariableCount int               `json:"variable_count"`
	SampleCount   int               `json:"sample_count"`
	TiePolicy     string            `json:"tie_policy"`
	MarginalHash  core.BatchHash    `json:"marginal_hash"`
	CopulaHash    core.BatchHash    `json:"copula_hash"`
	OutputHash    core.BatchHash    `json:"output_hash"`
	TargetDep     *depstats.Summary `json:"target_dependence,omitempty"`
	AchievedDep   *depstats.Summary `json:"achieved_dependence,omitempty"`
	CreatedAt     core.Timestamp    `json:"created_at"`
}

// NewManifest creates a manifest with a fresh run ID
func NewManifest(variableCount, sampleCount int, tiePolicy string) *Manifest {
	return &Manifest{
		RunID:         core.RunID(core.NewID()),
		VariableCount: variableCount,
		SampleCount:   sampleCount,
		TiePolicy:     tiePolicy,
		CreatedAt:     core.Now(),
	}
}

// Fingerprint combines the three batch hashes into one replay check:
// two runs with the same fingerprint saw identical inputs and produced
// identical output.
func (m *Manifest) Fingerprint() core.Hash {
	data := fmt.Sprintf("marginal:%s|copula:%s|output:%s|policy:%s",
		m.MarginalHash, m.CopulaHash, m.OutputHash, m.TiePolicy)
	return core.NewHash([]byte(data))
}

// Validate checks if the manifest is complete
func (m *Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("manifest", "run_id cannot be empty")
	}
	if m.VariableCount < 1 {
		return core.NewValidationError("manifest", "variable_count must be at least 1")
	}
	if m.SampleCount < 1 {
		return core.NewValidationError("manifest", "sample_count must be at least 1")
	}
	if m.TiePolicy == "" {
		return core.NewValidationError("manifest", "tie_policy cannot be empty")
	}
	if core.Hash(m.MarginalHash).IsEmpty() || core.Hash(m.CopulaHash).IsEmpty() || core.Hash(m.OutputHash).IsEmpty() {
		return core.NewValidationError("manifest", "batch hashes cannot be empty")
	}
	return nil
}
