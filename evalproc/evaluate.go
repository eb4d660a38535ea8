package evalproc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/voxbench/voxbench/sweep"
	"github.com/voxbench/voxbench/utils"
	"go.uber.org/zap"
)

func (r *Runner) evalArgs(job sweep.Job) []string {
	return []string{
		r.evalScript,
		"--model_id", job.ModelID,
		"--dataset_path", job.Dataset.Path,
		"--dataset", job.Dataset.Name,
		"--split", job.Dataset.Split,
		"--device", strconv.Itoa(job.Settings.Device),
		"--batch_size", strconv.Itoa(job.Settings.BatchSize),
		"--max_eval_samples", strconv.Itoa(job.Settings.MaxEvalSamples),
	}
}

// Evaluate runs the external evaluator for one job and blocks until it
// exits. The evaluator's stdout (sample progress, WER/RTFx summary) is
// streamed through; on failure the tail of stderr is attached to the
// returned error.
func (r *Runner) Evaluate(ctx context.Context, job sweep.Job) error {
	if r.commandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.commandTimeout)
		defer cancel()
	}

	tail := utils.NewTailWriter(r.stderrLimit)

	cmd := exec.CommandContext(ctx, r.pythonBinary, r.evalArgs(job)...)
	cmd.Dir = r.scriptDir
	cmd.Env = r.processEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = tail

	r.log.With(
		zap.String("model_id", job.ModelID),
		zap.String("dataset", job.Dataset.String()),
		zap.Strings("args", cmd.Args),
	).Debug("starting evaluator")

	err := cmd.Run()
	if err != nil {
		return fmt.Errorf("running evaluator: %w: %s", err, tail)
	}

	return nil
}
