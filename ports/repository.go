package ports

import (
	"context"

	"gocopula/domain/core"
	"gocopula/domain/run"
)

// RunRepository persists reorder run manifests
type RunRepository interface {
	SaveRun(ctx context.Context, manifest *run.Manifest) error
	GetRun(ctx context.Context, id core.RunID) (*run.Manifest, error)
	ListRuns(ctx context.Context, limit int) ([]*run.Manifest, error)
}
