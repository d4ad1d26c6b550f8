package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/utkarsh5026/sysbench/internal/bench"
	"github.com/utkarsh5026/sysbench/internal/config"
	"github.com/utkarsh5026/sysbench/internal/report"
)

type runFlags struct {
	only        []string
	skip        []string
	delay       time.Duration
	output      string
	metricsFile string
	tempDir     string
	logLevel    string
	affinity    bool
}

func newRunCmd(cfgFile *string) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the benchmark suite",
		Long: `Run the selected workloads one after another and report a score for each.
Interrupting the run (Ctrl+C) lets the current workload finish and still
prints the results collected so far.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*cfgFile)
			if err != nil {
				return err
			}
			f.apply(cmd, cfg)
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}
			return runBenchmark(cmd, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringSliceVar(&f.only, "only", nil, "run only these workload ids (comma separated)")
	flags.StringSliceVar(&f.skip, "skip", nil, "skip these workload ids (comma separated)")
	flags.DurationVar(&f.delay, "delay", bench.DefaultDelay, "pause between workloads")
	flags.StringVar(&f.output, "output", config.OutputTable, "summary format (table, json)")
	flags.StringVar(&f.metricsFile, "metrics-file", "", "write Prometheus textfile metrics to this path")
	flags.StringVar(&f.tempDir, "temp-dir", "", "directory for temporary files (default: system temp dir)")
	flags.StringVar(&f.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flags.BoolVar(&f.affinity, "affinity", false, "pin worker pool threads to CPU cores")
	return cmd
}

// apply overrides cfg with every flag set on the command line.
func (f *runFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("only") {
		cfg.Workloads.Only = f.only
	}
	if changed("skip") {
		cfg.Workloads.Skip = f.skip
	}
	if changed("delay") {
		cfg.Delay = f.delay
	}
	if changed("output") {
		cfg.Output = f.output
	}
	if changed("metrics-file") {
		cfg.MetricsFile = f.metricsFile
	}
	if changed("temp-dir") {
		cfg.TempDir = f.tempDir
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("affinity") {
		cfg.Pool.Affinity = f.affinity
	}
}

func runBenchmark(cmd *cobra.Command, cfg *config.Config) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	level, err := cfg.Level()
	if err != nil {
		return err
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	catalog := bench.Catalog()
	sel, err := cfg.Selection(catalog)
	if err != nil {
		return err
	}

	runner := bench.NewRunner(
		bench.WithCatalog(catalog),
		bench.WithDelay(cfg.Delay),
		bench.WithLogger(logger),
		bench.WithTempDir(cfg.TempDir),
		bench.WithPoolOptions(cfg.PoolOptions()...),
	)

	history := report.NewHistory()

	// JSON goes to stdout on its own; human-readable lines move to stderr.
	consoleOut := stdout
	if cfg.Output == config.OutputJSON {
		consoleOut = stderr
	}
	console := report.NewConsole(consoleOut, stderr)
	console.Header(runner.RunID(), sel.Count())

	sinks := report.Multi{history.Sink(runner.RunID()), console}

	var metrics *report.Metrics
	if cfg.MetricsFile != "" {
		metrics = report.NewMetrics(runner.RunID(), cfg.MetricsFile)
		sinks = append(sinks, metrics)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runErr := runner.Run(ctx, sel, sinks)

	if metrics != nil {
		if err := metrics.Err(); err != nil {
			logger.Warn("metrics export failed", "path", cfg.MetricsFile, "error", err)
		}
	}

	results := history.All()
	switch cfg.Output {
	case config.OutputJSON:
		out := report.NewJSONOutput(runner.RunID(), runner.State().State, results)
		if err := report.WriteJSON(stdout, out); err != nil {
			return err
		}
	default:
		if err := report.RenderTable(stdout, results); err != nil {
			return err
		}
	}

	if runErr != nil {
		return fmt.Errorf("benchmark run failed: %w", runErr)
	}
	return nil
}
