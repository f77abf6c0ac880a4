package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"gocopula/domain/core"
	"gocopula/domain/run"
	"gocopula/internal/depstats"
	"gocopula/ports"
)

// RunRepositoryImpl implements RunRepository for PostgreSQL
type RunRepositoryImpl struct {
	db *sqlx.DB
}

// NewRunRepository creates a new PostgreSQL run repository
func NewRunRepository(db *sqlx.DB) ports.RunRepository {
	return &RunRepositoryImpl{db: db}
}

// Schema creates the reorder_runs table
const Schema = `
CREATE TABLE IF NOT EXISTS reorder_runs (
	id             TEXT PRIMARY KEY,
	variable_count INTEGER NOT NULL,
	sample_count   INTEGER NOT NULL,
	tie_policy     TEXT NOT NULL,
	marginal_hash  TEXT NOT NULL,
	copula_hash    TEXT NOT NULL,
	output_hash    TEXT NOT NULL,
	target_dep     JSONB,
	achieved_dep   JSONB,
	created_at     TIMESTAMPTZ NOT NULL
)`

type runRow struct {
	ID            string    `db:"id"`
	VariableCount int       `db:"variable_count"`
	SampleCount   int       `db:"sample_count"`
	TiePolicy     string    `db:"tie_policy"`
	MarginalHash  string    `db:"marginal_hash"`
	CopulaHash    string    `db:"copula_hash"`
	OutputHash    string    `db:"output_hash"`
	TargetDep     []byte    `db:"target_dep"`
	AchievedDep   []byte    `db:"achieved_dep"`
	CreatedAt     time.Time `db:"created_at"`
}

// SaveRun persists a run manifest
func (r *RunRepositoryImpl) SaveRun(ctx context.Context, manifest *run.Manifest) error {
	if err := manifest.Validate(); err != nil {
		return err
	}

	targetDep, err := marshalSummary(manifest.TargetDep)
	if err != nil {
		return err
	}
	achievedDep, err := marshalSummary(manifest.AchievedDep)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO reorder_runs (id, variable_count, sample_count, tie_policy,
			marginal_hash, copula_hash, output_hash, target_dep, achieved_dep, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, manifest.RunID.String(), manifest.VariableCount, manifest.SampleCount, manifest.TiePolicy,
		manifest.MarginalHash.String(), manifest.CopulaHash.String(), manifest.OutputHash.String(),
		targetDep, achievedDep, manifest.CreatedAt.Time())

	return err
}

// GetRun retrieves a run manifest by ID
func (r *RunRepositoryImpl) GetRun(ctx context.Context, id core.RunID) (*run.Manifest, error) {
	var row runRow
	err := r.db.GetContext(ctx, &row, `
		SELECT id, variable_count, sample_count, tie_policy,
			marginal_hash, copula_hash, output_hash, target_dep, achieved_dep, created_at
		FROM reorder_runs
		WHERE id = $1
	`, id.String())
	if errors.Is(err, sql.ErrNoRows) {
		return nil, core.NewNotFoundError("run", id.String())
	}
	if err != nil {
		return nil, err
	}
	return rowToManifest(&row)
}

// ListRuns returns the most recent run manifests
func (r *RunRepositoryImpl) ListRuns(ctx context.Context, limit int) ([]*run.Manifest, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []runRow
	err := r.db.SelectContext(ctx, &rows, `
		SELECT id, variable_count, sample_count, tie_policy,
			marginal_hash, copula_hash, output_hash, target_dep, achieved_dep, created_at
		FROM reorder_runs
		ORDER BY created_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}

	manifests := make([]*run.Manifest, 0, len(rows))
	for i := range rows {
		m, err := rowToManifest(&rows[i])
		if err != nil {
			return nil, err
		}
		manifests = append(manifests, m)
	}
	return manifests, nil
}

func marshalSummary(s *depstats.Summary) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return json.Marshal(s)
}

func unmarshalSummary(data []byte) (*depstats.Summary, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var s depstats.Summary
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func rowToManifest(row *runRow) (*run.Manifest, error) {
	targetDep, err := unmarshalSummary(row.TargetDep)
	if err != nil {
		return nil, err
	}
	achievedDep, err := unmarshalSummary(row.AchievedDep)
	if err != nil {
		return nil, err
	}
	return &run.Manifest{
		RunID:         core.RunID(row.ID),
		VariableCount: row.VariableCount,
		SampleCount:   row.SampleCount,
		TiePolicy:     row.TiePolicy,
		MarginalHash:  core.BatchHash(row.MarginalHash),
		CopulaHash:    core.BatchHash(row.CopulaHash),
		OutputHash:    core.BatchHash(row.OutputHash),
		TargetDep:     targetDep,
		AchievedDep:   achievedDep,
		CreatedAt:     core.NewTimestamp(row.CreatedAt),
	}, nil
}
