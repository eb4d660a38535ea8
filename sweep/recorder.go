package sweep

import (
	"context"
	"errors"
)

// Recorder observes sweep progress. Implementations must tolerate being
// called with a nil error (success) and a non-nil error (failure); their
// own errors are logged by the orchestrator, never propagated.
type Recorder interface {
	SweepStarted(ctx context.Context, models []string, datasets []DatasetSpec) error
	JobFinished(ctx context.Context, job Job, jobErr error) error
	ModelScored(ctx context.Context, modelID string, scoreErr error) error
	SweepFinished(ctx context.Context, sweepErr error) error
}

type NopRecorder struct{}

func (NopRecorder) SweepStarted(ctx context.Context, models []string, datasets []DatasetSpec) error {
	return nil
}

func (NopRecorder) JobFinished(ctx context.Context, job Job, jobErr error) error {
	return nil
}

func (NopRecorder) ModelScored(ctx context.Context, modelID string, scoreErr error) error {
	return nil
}

func (NopRecorder) SweepFinished(ctx context.Context, sweepErr error) error {
	return nil
}

type multiRecorder []Recorder

// MultiRecorder fans out every event to all recorders, joining their
// errors. A failing recorder does not stop the others from seeing the
// event.
func MultiRecorder(recorders ...Recorder) Recorder {
	return multiRecorder(recorders)
}

func (m multiRecorder) SweepStarted(ctx context.Context, models []string, datasets []DatasetSpec) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.SweepStarted(ctx, models, datasets))
	}
	return errors.Join(errs...)
}

func (m multiRecorder) JobFinished(ctx context.Context, job Job, jobErr error) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.JobFinished(ctx, job, jobErr))
	}
	return errors.Join(errs...)
}

func (m multiRecorder) ModelScored(ctx context.Context, modelID string, scoreErr error) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.ModelScored(ctx, modelID, scoreErr))
	}
	return errors.Join(errs...)
}

func (m multiRecorder) SweepFinished(ctx context.Context, sweepErr error) error {
	var errs []error
	for _, r := range m {
		errs = append(errs, r.SweepFinished(ctx, sweepErr))
	}
	return errors.Join(errs...)
}
