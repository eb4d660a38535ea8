// Package evalproc drives the external python evaluation tooling: the
// run_eval entry point for single jobs, and eval_utils.score_results for
// the per-model aggregation pass.
package evalproc

import (
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

const DefaultPythonBinary = "python3"
const DefaultEvalScript = "run_eval.py"

// DefaultCommandTimeout of zero means no timeout: a full evaluation of a
// large checkpoint can take hours, so bounding it is opt-in.
const DefaultCommandTimeout = time.Duration(0)

// how much stderr to keep for error reporting
const DefaultStderrCaptureLimit = 16 * 1024

type RunnerOption func(*Runner)

type Runner struct {
	log *zap.Logger

	pythonBinary string
	evalScript   string
	scriptDir    string
	modulePath   []string

	commandTimeout time.Duration
	stderrLimit    int
}

func WithPythonBinary(pythonBinary string) RunnerOption {
	return func(r *Runner) {
		r.pythonBinary = pythonBinary
	}
}

func WithEvalScript(evalScript string) RunnerOption {
	return func(r *Runner) {
		r.evalScript = evalScript
	}
}

// WithModulePath adds directories to PYTHONPATH for the spawned
// processes, so eval_utils and the text normalizer resolve.
func WithModulePath(dirs ...string) RunnerOption {
	return func(r *Runner) {
		r.modulePath = append(r.modulePath, dirs...)
	}
}

func WithCommandTimeout(timeout time.Duration) RunnerOption {
	return func(r *Runner) {
		r.commandTimeout = timeout
	}
}

func WithStderrCaptureLimit(limit int) RunnerOption {
	return func(r *Runner) {
		r.stderrLimit = limit
	}
}

func NewRunner(parentLogger *zap.Logger, scriptDir string, options ...RunnerOption) *Runner {
	r := &Runner{
		log: parentLogger.Named("evalproc"),

		pythonBinary: DefaultPythonBinary,
		evalScript:   DefaultEvalScript,
		scriptDir:    scriptDir,

		commandTimeout: DefaultCommandTimeout,
		stderrLimit:    DefaultStderrCaptureLimit,
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// processEnv extends the inherited environment so the script dir and any
// configured module dirs are importable, keeping whatever PYTHONPATH the
// caller already had at the end.
func (r *Runner) processEnv() []string {
	pythonPath := append([]string{r.scriptDir}, r.modulePath...)
	if existing := os.Getenv("PYTHONPATH"); existing != "" {
		pythonPath = append(pythonPath, existing)
	}

	return append(os.Environ(), "PYTHONPATH="+strings.Join(pythonPath, string(os.PathListSeparator)))
}
