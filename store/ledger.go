package store

import (
	"context"
	"fmt"

	"github.com/voxbench/voxbench/sweep"
)

// errText converts an error into a nullable column value.
func errText(err error) *string {
	if err == nil {
		return nil
	}
	text := err.Error()
	return &text
}

// SweepStarted opens a new sweep row and remembers its id for the rows
// that follow. The orchestrator is strictly sequential, so a single
// current run id is enough.
func (s *Store) SweepStarted(ctx context.Context, models []string, datasets []sweep.DatasetSpec) error {
	err := s.conn.QueryRow(ctx,
		`INSERT INTO sweep_runs (models, dataset_count) VALUES ($1, $2) RETURNING id`,
		models, len(datasets),
	).Scan(&s.runID)
	if err != nil {
		return fmt.Errorf("inserting sweep run: %w", err)
	}

	return nil
}

func (s *Store) JobFinished(ctx context.Context, job sweep.Job, jobErr error) error {
	_, err := s.conn.Exec(ctx,
		`INSERT INTO eval_jobs (run_id, model_id, dataset, split, dataset_path, batch_size, device, max_eval_samples, error)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		s.runID, job.ModelID, job.Dataset.Name, job.Dataset.Split, job.Dataset.Path,
		job.Settings.BatchSize, job.Settings.Device, job.Settings.MaxEvalSamples,
		errText(jobErr),
	)
	if err != nil {
		return fmt.Errorf("inserting eval job: %w", err)
	}

	return nil
}

func (s *Store) ModelScored(ctx context.Context, modelID string, scoreErr error) error {
	_, err := s.conn.Exec(ctx,
		`INSERT INTO score_runs (run_id, model_id, error) VALUES ($1, $2, $3)`,
		s.runID, modelID, errText(scoreErr),
	)
	if err != nil {
		return fmt.Errorf("inserting score run: %w", err)
	}

	return nil
}

func (s *Store) SweepFinished(ctx context.Context, sweepErr error) error {
	_, err := s.conn.Exec(ctx,
		`UPDATE sweep_runs SET finished_at = now(), error = $2 WHERE id = $1`,
		s.runID, errText(sweepErr),
	)
	if err != nil {
		return fmt.Errorf("updating sweep run: %w", err)
	}

	return nil
}
