package app

import (
	"context"

	"gocopula/domain/core"
	"gocopula/domain/run"
	"gocopula/domain/sample"
	"gocopula/internal"
	"gocopula/internal/depstats"
	"gocopula/internal/errors"
	"gocopula/internal/reorder"
	"gocopula/ports"
)

// ReorderService orchestrates a full dependence-imposition run: validate
// the batch pair, reorder, measure the dependence actually achieved, and
// persist an audit manifest when a repository is configured.
type ReorderService struct {
	reorderer    *reorder.Reorderer
	runs         ports.RunRepository // nil disables persistence
	logger       *internal.Logger
	tailQuantile float64
}

// ReorderResult bundles the reordered batch with its run manifest
type ReorderResult struct {
	Output   *sample.Batch
	Manifest *run.Manifest
}

// NewReorderService creates a service around a configured reorderer
func NewReorderService(reorderer *reorder.Reorderer, runs ports.RunRepository, logger *internal.Logger) *ReorderService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &ReorderService{
		reorderer:    reorderer,
		runs:         runs,
		logger:       logger.WithScope("reorder"),
		tailQuantile: depstats.DefaultTailQuantile,
	}
}

// SetTailQuantile overrides the quantile used for tail-dependence summaries
func (s *ReorderService) SetTailQuantile(q float64) {
	if q > 0 && q < 0.5 {
		s.tailQuantile = q
	}
}

// Reorder imposes the copula batch's rank structure onto the marginal
// batch. Fails atomically: any validation error means no output and no
// persisted manifest.
func (s *ReorderService) Reorder(ctx context.Context, marginals, copulaSamples *sample.Batch) (*ReorderResult, error) {
	output, err := s.reorderer.Reorder(ctx, marginals, copulaSamples)
	if err != nil {
		return nil, err
	}

	manifest := run.NewManifest(output.VariableCount(), output.SampleCount(), string(s.reorderer.TiePolicy()))
	manifest.MarginalHash = marginals.Hash()
	manifest.CopulaHash = copulaSamples.Hash()
	manifest.OutputHash = output.Hash()

	// Dependence summaries need at least two samples and two variables;
	// a degenerate run still gets a manifest, just without them.
	if output.SampleCount() >= 2 && output.VariableCount() >= 2 {
		target, err := depstats.Summarize(copulaSamples, s.tailQuantile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to summarize copula dependence")
		}
		achieved, err := depstats.Summarize(output, s.tailQuantile)
		if err != nil {
			return nil, errors.Wrap(err, "failed to summarize achieved dependence")
		}
		manifest.TargetDep = target
		manifest.AchievedDep = achieved
	}

	if s.runs != nil {
		if err := s.runs.SaveRun(ctx, manifest); err != nil {
			return nil, errors.Wrap(err, "failed to persist run manifest")
		}
	}

	s.logger.Info("run %s: reordered %d variables x %d samples (policy %s)",
		manifest.RunID, manifest.VariableCount, manifest.SampleCount, manifest.TiePolicy)

	return &ReorderResult{Output: output, Manifest: manifest}, nil
}

// ReorderFromPorts resolves inputs through the collaborator ports: copula
// samples from the source, then marginals drawn to the matching sample
// count, then the reorder itself.
func (s *ReorderService) ReorderFromPorts(
	ctx context.Context,
	sampler ports.MarginalSamplerPort,
	specs []ports.MarginalSpec,
	copulaSource ports.CopulaSourcePort,
	seed int64,
) (*ReorderResult, error) {
	copulaSamples, err := copulaSource.CopulaSamples(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load copula samples")
	}

	marginals, err := sampler.Sample(ctx, specs, copulaSamples.SampleCount(), seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to draw marginal samples")
	}

	return s.Reorder(ctx, marginals, copulaSamples)
}

// GetRun fetches a persisted run manifest
func (s *ReorderService) GetRun(ctx context.Context, id core.RunID) (*run.Manifest, error) {
	if s.runs == nil {
		return nil, core.NewNotFoundError("run", id.String())
	}
	return s.runs.GetRun(ctx, id)
}

// ListRuns fetches recent run manifests
func (s *ReorderService) ListRuns(ctx context.Context, limit int) ([]*run.Manifest, error) {
	if s.runs == nil {
		return []*run.Manifest{}, nil
	}
	return s.runs.ListRuns(ctx, limit)
}
