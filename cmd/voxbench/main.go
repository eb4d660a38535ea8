package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/voxbench/voxbench/evalproc"
	"github.com/voxbench/voxbench/messages"
	"github.com/voxbench/voxbench/notify"
	"github.com/voxbench/voxbench/store"
	"github.com/voxbench/voxbench/sweep"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

var CommitHash = ""

type config struct {
	// where run_eval.py and eval_utils live
	ScriptDir  string `env:"SCRIPT_DIR" envDefault:"."`
	ResultsDir string `env:"RESULTS_DIR"`

	PythonBinary   string        `env:"PYTHON_BINARY"`
	PythonPath     []string      `env:"PYTHON_PATH"`
	CommandTimeout time.Duration `env:"COMMAND_TIMEOUT"`

	Models         []string `env:"MODELS"`
	Device         int      `env:"DEVICE" envDefault:"0"`
	BatchSize      int      `env:"BATCH_SIZE" envDefault:"1"`
	MaxEvalSamples int      `env:"MAX_EVAL_SAMPLES" envDefault:"-1"`

	// optional run ledger
	PostgresDSN string `env:"POSTGRES_DSN"`

	// optional progress notifications
	DiscordWebhookID    string `env:"DISCORD_WEBHOOK_ID"`
	DiscordWebhookToken string `env:"DISCORD_WEBHOOK_TOKEN"`
}

const environmentPrefix = "VOXBENCH_"
const logLevelEnvKey = environmentPrefix + "LOG_LEVEL"

func createLog() *zap.Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = ""

	logLevelValue := os.Getenv(logLevelEnvKey)
	logLevel, logLevelErr := zapcore.ParseLevel(logLevelValue)

	if logLevelErr != nil {
		logLevel = zapcore.InfoLevel
	}

	rawLog := zap.New(zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderCfg),
		zapcore.Lock(os.Stderr),
		logLevel,
	)).Named("voxbench")

	if CommitHash != "" {
		rawLog = rawLog.With(zap.String("commit", CommitHash))
	}

	if logLevelErr != nil && logLevelValue != "" {
		rawLog.With(zap.String(logLevelEnvKey, logLevelValue)).Warn("unable to parse log level, using INFO")
	}

	return rawLog
}

func main() {
	parentLogger := createLog()
	defer parentLogger.Sync()

	log := parentLogger.Named("main")
	log.With(zap.String("min_log_level", parentLogger.Level().String())).Info("starting")

	cfg := config{}
	if err := env.ParseWithOptions(&cfg, env.Options{
		Prefix: environmentPrefix,
	}); err != nil {
		log.Fatal("failed to parse config", zap.Error(err))
	}

	if cfg.ResultsDir == "" {
		// run_eval writes manifests under ./results relative to its cwd
		cfg.ResultsDir = filepath.Join(cfg.ScriptDir, "results")
	}

	var recorders []sweep.Recorder

	if cfg.PostgresDSN != "" {
		s := store.NewStore(context.Background(), parentLogger)
		if err := s.Connect(context.Background(), cfg.PostgresDSN); err != nil {
			log.Fatal("failed to connect store", zap.Error(err))
		}
		defer s.Close()
		recorders = append(recorders, s)
	}

	if cfg.DiscordWebhookID != "" {
		messageProvider, err := messages.NewMessageProvider()
		if err != nil {
			log.Fatal("failed to create message provider", zap.Error(err))
		}

		notifier, err := notify.NewNotifier(notify.NotifierOptions{
			ParentLogger: parentLogger,
			Messages:     messageProvider,
			WebhookID:    cfg.DiscordWebhookID,
			WebhookToken: cfg.DiscordWebhookToken,
		})
		if err != nil {
			log.Fatal("failed to create notifier", zap.Error(err))
		}
		recorders = append(recorders, notifier)
	}

	runnerOptions := []evalproc.RunnerOption{
		evalproc.WithModulePath(cfg.PythonPath...),
	}
	if cfg.PythonBinary != "" {
		runnerOptions = append(runnerOptions, evalproc.WithPythonBinary(cfg.PythonBinary))
	}
	if cfg.CommandTimeout > 0 {
		runnerOptions = append(runnerOptions, evalproc.WithCommandTimeout(cfg.CommandTimeout))
	}
	runner := evalproc.NewRunner(parentLogger, cfg.ScriptDir, runnerOptions...)

	orchestrator := sweep.NewOrchestrator(sweep.OrchestratorOptions{
		ParentLogger: parentLogger,
		Evaluator:    runner,
		Scorer:       runner,
		ResultsDir:   cfg.ResultsDir,
	},
		sweep.WithSettings(sweep.Settings{
			Device:         cfg.Device,
			BatchSize:      cfg.BatchSize,
			MaxEvalSamples: cfg.MaxEvalSamples,
		}),
		sweep.WithRecorder(sweep.MultiRecorder(recorders...)),
	)

	models := cfg.Models
	if len(models) == 0 {
		models = sweep.DefaultModels
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g := errgroup.Group{}

	// Sweep
	g.Go(func() error {
		defer cancel()

		return orchestrator.Run(ctx, models)
	})

	shutdownSignal := make(chan os.Signal, 1)
	signal.Notify(shutdownSignal, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-shutdownSignal:
		cancel()
		log.Info("received signal, shutting down")
	case <-ctx.Done():
	}

	err := g.Wait()
	if err != nil {
		log.Fatal("sweep failed", zap.Error(err))
	}

	log.Info("sweep complete")
}
