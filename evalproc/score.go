package evalproc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/voxbench/voxbench/utils"
	"go.uber.org/zap"
)

var ErrUnquotablePath = fmt.Errorf("path or model id not representable in scoring snippet")

// scoreSnippet builds the inline python that aggregates a model's
// manifests. The arguments end up inside single-quoted python string
// literals, so values containing quotes or backslashes are rejected
// rather than escaped.
func scoreSnippet(resultsDir string, modelID string) (string, error) {
	if strings.ContainsAny(resultsDir+modelID, `'\`) {
		return "", ErrUnquotablePath
	}

	return fmt.Sprintf("import eval_utils; eval_utils.score_results('%s', '%s')", resultsDir, modelID), nil
}

// Score invokes eval_utils.score_results over the model's accumulated
// manifests under resultsDir, blocking until the report is written.
func (r *Runner) Score(ctx context.Context, resultsDir string, modelID string) error {
	if r.commandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.commandTimeout)
		defer cancel()
	}

	snippet, err := scoreSnippet(resultsDir, modelID)
	if err != nil {
		return err
	}

	tail := utils.NewTailWriter(r.stderrLimit)

	cmd := exec.CommandContext(ctx, r.pythonBinary, "-c", snippet)
	cmd.Dir = r.scriptDir
	cmd.Env = r.processEnv()
	cmd.Stdout = os.Stdout
	cmd.Stderr = tail

	r.log.With(
		zap.String("model_id", modelID),
		zap.String("results_dir", resultsDir),
	).Debug("starting scorer")

	err = cmd.Run()
	if err != nil {
		return fmt.Errorf("running scorer: %w: %s", err, tail)
	}

	return nil
}
