package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ChicagoDave/netviability/internal/logging"
	"github.com/ChicagoDave/netviability/internal/observability"
	"github.com/ChicagoDave/netviability/internal/server"
	"github.com/ChicagoDave/netviability/pkg/pipeline"
	"github.com/ChicagoDave/netviability/pkg/spec"
	"github.com/ChicagoDave/netviability/pkg/validation"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

// runOptions are the command-line overrides shared by the root and run commands.
type runOptions struct {
	countries []string
	decisions []string
	workbook  bool
	metrics   string
}

func (o *runOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&o.countries, "country", nil, "limit the run to these ISO3 codes")
	cmd.Flags().StringSliceVar(&o.decisions, "decision-option", nil, "limit the run to these decision options")
	cmd.Flags().BoolVar(&o.workbook, "workbook", false, "also write an xlsx workbook per decision option")
	cmd.Flags().StringVar(&o.metrics, "metrics-file", "", "Prometheus textfile path (default processed/metrics.prom)")
}

func (o runOptions) apply(cfg *spec.Config) {
	if len(o.countries) > 0 {
		cfg.Countries = o.countries
	}
	if len(o.decisions) > 0 {
		cfg.DecisionOptions = o.decisions
	}
	if o.workbook {
		cfg.Workbook = true
	}
	if o.metrics != "" {
		cfg.MetricsFile = o.metrics
	}
}

// loadConfig accepts either a YAML file or a project directory. A directory
// without a config file runs on the built-in dictionaries.
func loadConfig(projectPath string) (*spec.Config, error) {
	ext := strings.ToLower(filepath.Ext(projectPath))
	if ext == ".yaml" || ext == ".yml" {
		return spec.Load(projectPath)
	}
	if _, err := os.Stat(filepath.Join(projectPath, spec.ConfigFileName)); err == nil {
		return spec.LoadProject(projectPath)
	}
	cfg := spec.Default()
	cfg.BasePath = projectPath
	return cfg, nil
}

// loadAndValidate loads the configuration and checks its parameters.
func loadAndValidate(projectPath string) (*spec.Config, *validation.Report, error) {
	cfg, err := loadConfig(projectPath)
	if err != nil {
		return nil, nil, eris.Wrap(err, "loading config")
	}
	return cfg, validation.ValidateConfig(cfg), nil
}

func newLogger(cfg *spec.Config) logging.Logger {
	return logging.New(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
}

func runValidate(projectPath string) error {
	_, report, err := loadAndValidate(projectPath)
	if err != nil {
		return err
	}

	printValidationReport(report)

	if !report.Valid {
		os.Exit(1)
	}
	return nil
}

func runModel(ctx context.Context, projectPath string, opts runOptions) error {
	cfg, err := loadConfig(projectPath)
	if err != nil {
		return eris.Wrap(err, "loading config")
	}
	opts.apply(cfg)
	report := validation.ValidateConfig(cfg)
	if !report.Valid {
		printValidationReport(report)
		return report.Err()
	}

	log := newLogger(cfg)
	paths := cfg.Paths()

	traceFile := cfg.Tracing.File
	if traceFile == "" {
		traceFile = filepath.Join(paths.Processed(), "traces.json")
	}
	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     cfg.Tracing.Enabled,
		ServiceName: "netviability",
		Exporter:    cfg.Tracing.Exporter,
		Endpoint:    cfg.Tracing.Endpoint,
		File:        traceFile,
		SampleRatio: cfg.Tracing.SampleRatio,
	}, log)
	if err != nil {
		return err
	}
	defer observability.ShutdownWithTimeout(context.Background(), shutdown, log)

	metrics, err := observability.NewPipelineCollector(prometheus.NewRegistry())
	if err != nil {
		return err
	}

	res, err := pipeline.New(cfg, log, metrics).Run(ctx)
	if err != nil {
		log.Error(ctx, "run failed", logging.Err(err))
		return err
	}

	metricsFile := cfg.MetricsPath()
	if err := os.MkdirAll(filepath.Dir(metricsFile), 0o755); err != nil {
		return eris.Wrapf(err, "creating %s", filepath.Dir(metricsFile))
	}
	if err := metrics.WriteTextfile(metricsFile); err != nil {
		return err
	}

	log.Info(ctx, "run finished",
		logging.String("run_id", res.RunID),
		logging.Int("files", len(res.Files)),
		logging.Int("passes", len(res.Totals)),
	)
	fmt.Printf("Wrote %d files to %s (run %s)\n", len(res.Files), paths.Results(), res.RunID)
	return nil
}

func runSummary(ctx context.Context, projectPath, country, decision string) error {
	cfg, err := loadConfig(projectPath)
	if err != nil {
		return eris.Wrap(err, "loading config")
	}
	cfg.Countries = []string{strings.ToUpper(country)}
	cfg.DecisionOptions = []string{decision}
	report := validation.ValidateConfig(cfg)
	if !report.Valid {
		printValidationReport(report)
		return eris.Wrap(report.Err(), "fix before summarising")
	}

	runner := pipeline.New(cfg, newLogger(cfg), nil)
	runner.Write = false
	res, err := runner.Run(ctx)
	if err != nil {
		return err
	}

	printSummary(cfg.Countries[0], decision, res.Totals)

	if len(report.Warnings) > 0 {
		fmt.Println()
		printValidationReport(report)
	}
	return nil
}

func runServe(ctx context.Context, projectPath string, port int) error {
	cfg, err := loadConfig(projectPath)
	if err != nil {
		return eris.Wrap(err, "loading config")
	}
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	gatherers := prometheus.Gatherers{reg, observability.TextfileGatherer(cfg.MetricsPath())}
	return server.New(cfg, gatherers, newLogger(cfg), port).Start(ctx)
}
