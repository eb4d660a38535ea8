package sweep

import (
	"context"
	"fmt"

	"github.com/voxbench/voxbench/utils"
	"go.uber.org/zap"
)

var ErrNoModels = fmt.Errorf("no models configured for sweep")

// DatasetSpec is one evaluation slice: a dataset and split, loadable
// from Path by the external evaluator.
type DatasetSpec struct {
	Path  string
	Name  string
	Split string
}

func (d DatasetSpec) String() string {
	return d.Name + "/" + d.Split
}

// Settings are shared by every job in a sweep. MaxEvalSamples of -1
// means no cap, and is passed to the evaluator verbatim.
type Settings struct {
	Device         int
	BatchSize      int
	MaxEvalSamples int
}

// Job is one (model, dataset spec) pairing submitted to the evaluator.
type Job struct {
	ModelID  string
	Dataset  DatasetSpec
	Settings Settings
}

type Evaluator interface {
	Evaluate(ctx context.Context, job Job) error
}

type Scorer interface {
	Score(ctx context.Context, resultsDir string, modelID string) error
}

// JobError is returned when an evaluator invocation fails. It carries
// the failing pair so callers can tell which job halted the sweep.
type JobError struct {
	ModelID string
	Dataset DatasetSpec
	Err     error
}

func (e *JobError) Error() string {
	return fmt.Sprintf("evaluating %s on %s: %v", e.ModelID, e.Dataset, e.Err)
}

func (e *JobError) Unwrap() error {
	return e.Err
}

// ScoringError is returned when the scoring pass for a model fails.
type ScoringError struct {
	ModelID string
	Err     error
}

func (e *ScoringError) Error() string {
	return fmt.Sprintf("scoring %s: %v", e.ModelID, e.Err)
}

func (e *ScoringError) Unwrap() error {
	return e.Err
}

type Orchestrator struct {
	log *zap.Logger

	evaluator Evaluator
	scorer    Scorer
	recorder  Recorder

	resultsDir string
	datasets   []DatasetSpec
	settings   Settings
}

type OrchestratorOptions struct {
	ParentLogger *zap.Logger
	Evaluator    Evaluator
	Scorer       Scorer

	// ResultsDir is where evaluator runs accumulate manifests, and what
	// the scorer is pointed at. Owned by the external tooling.
	ResultsDir string
}

type OrchestratorExtraOption func(*Orchestrator)

func WithDatasets(datasets []DatasetSpec) OrchestratorExtraOption {
	return func(o *Orchestrator) {
		o.datasets = datasets
	}
}

func WithSettings(settings Settings) OrchestratorExtraOption {
	return func(o *Orchestrator) {
		o.settings = settings
	}
}

func WithRecorder(recorder Recorder) OrchestratorExtraOption {
	return func(o *Orchestrator) {
		o.recorder = recorder
	}
}

func NewOrchestrator(options OrchestratorOptions, extraOptions ...OrchestratorExtraOption) *Orchestrator {
	o := &Orchestrator{
		log: options.ParentLogger.Named("sweep"),

		evaluator: options.Evaluator,
		scorer:    options.Scorer,
		recorder:  NopRecorder{},

		resultsDir: options.ResultsDir,
		datasets:   ESBDatasets,
		settings:   DefaultSettings,
	}
	for _, option := range extraOptions {
		option(o)
	}

	return o
}

// Run evaluates every configured dataset spec for each model in order,
// scoring each model once after all of its jobs finish. The first failed
// evaluation or scoring pass halts the sweep; there are no retries.
func (o *Orchestrator) Run(ctx context.Context, models []string) error {
	if len(models) == 0 {
		return ErrNoModels
	}

	o.record(ctx, "sweep started", o.recorder.SweepStarted(ctx, models, o.datasets))

	for _, modelID := range models {
		modelCtx, log := utils.LogContextWith(ctx, o.log, zap.String("model_id", modelID))

		for _, dataset := range o.datasets {
			if err := modelCtx.Err(); err != nil {
				o.record(ctx, "sweep finished", o.recorder.SweepFinished(ctx, err))
				return fmt.Errorf("sweep canceled: %w", err)
			}

			job := Job{
				ModelID:  modelID,
				Dataset:  dataset,
				Settings: o.settings,
			}

			log.With(zap.String("dataset", dataset.String())).Info("running evaluation job")
			err := o.evaluator.Evaluate(modelCtx, job)
			o.record(ctx, "job finished", o.recorder.JobFinished(ctx, job, err))
			if err != nil {
				jobErr := &JobError{
					ModelID: modelID,
					Dataset: dataset,
					Err:     err,
				}
				o.record(ctx, "sweep finished", o.recorder.SweepFinished(ctx, jobErr))
				return jobErr
			}
		}

		// All of the model's jobs are done, scoring can aggregate them.
		log.Info("scoring model results")
		err := o.scorer.Score(modelCtx, o.resultsDir, modelID)
		o.record(ctx, "model scored", o.recorder.ModelScored(ctx, modelID, err))
		if err != nil {
			scoringErr := &ScoringError{
				ModelID: modelID,
				Err:     err,
			}
			o.record(ctx, "sweep finished", o.recorder.SweepFinished(ctx, scoringErr))
			return scoringErr
		}
	}

	o.record(ctx, "sweep finished", o.recorder.SweepFinished(ctx, nil))
	return nil
}

// record logs recorder failures instead of surfacing them: the ledger and
// notifications must not be able to halt a multi-hour benchmark run.
func (o *Orchestrator) record(ctx context.Context, event string, err error) {
	if err == nil {
		return
	}
	utils.GetLogFromContext(ctx, o.log).
		With(zap.String("event", event)).
		Warn("recorder error", zap.Error(err))
}
