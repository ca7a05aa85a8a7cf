package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/urfave/cli/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"quizstats/internal/config"
	"quizstats/internal/dataprocessing"
	"quizstats/internal/exporter"
	"quizstats/internal/files"
	"quizstats/internal/infrastructure"
	"quizstats/internal/validation"
	"quizstats/pkg/contracts"
	"quizstats/pkg/contracts/domain"
)

// runner holds the process streams shared by every command.
type runner struct {
	stdout io.Writer
	stderr io.Writer
	// logger overrides the configured logger when set.
	logger *slog.Logger
}

func newRunner(stdout, stderr io.Writer) *runner {
	return &runner{stdout: stdout, stderr: stderr}
}

// setup loads configuration, initialises logging and resolves paths. The
// returned cleanup closes the log file.
func (r *runner) setup(c *cli.Context) (*config.Config, *config.Paths, *slog.Logger, func(), error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, nil, nil, nil, err
	}

	logger := r.logger
	cleanup := func() {}
	if logger == nil {
		logger, err = infrastructure.InitializeLogger(cfg.Logging)
		if err != nil {
			return nil, nil, nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
		}
		cleanup = func() { _ = infrastructure.CloseLogFile() }
	}

	paths, err := config.ResolvePaths(cfg, "")
	if err != nil {
		cleanup()
		return nil, nil, nil, nil, err
	}
	paths.LogPathResolution(logger)
	return cfg, paths, logger, cleanup, nil
}

// compile aggregates every scoresheet and writes the season report.
func (r *runner) compile(c *cli.Context) error {
	cfg, paths, logger, cleanup, err := r.setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	ctx := infrastructure.EnsureTraceID(c.Context)
	logger = logger.With(slog.String("run_id", infrastructure.GetTraceID(ctx)))
	logger.InfoContext(ctx, "Starting season compilation",
		slog.String("version", contracts.Version),
		slog.String("commit", contracts.GitCommit),
		slog.String("config", cfg.String()))

	otelCfg := infrastructure.NewOTelConfig(cfg.Telemetry)
	otelCfg.TraceWriter = r.stderr
	providers, err := infrastructure.InitializeOTel(otelCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := providers.Shutdown(shutdownCtx); err != nil {
			infrastructure.WithError(logger, err).Warn("Telemetry shutdown failed")
		}
	}()

	metrics, err := infrastructure.CreateRunMetrics(providers.Meter)
	if err != nil {
		return fmt.Errorf("failed to create metrics: %w", err)
	}

	ctx, span := providers.Tracer.Start(ctx, "compile")
	defer span.End()
	infrastructure.SetSpanAttributes(ctx, map[string]interface{}{
		"tournament.rooms":  cfg.Tournament.Rooms,
		"tournament.rounds": cfg.Tournament.Rounds,
		"parse.mode":        cfg.Tournament.ParseMode,
		"report.format":     cfg.Report.Format,
	})

	written, err := r.runCompile(ctx, cfg, paths, logger, providers, metrics)
	if err != nil {
		infrastructure.RecordError(ctx, err)
		infrastructure.WithError(logger, err).ErrorContext(ctx, "Season compilation failed")
		return err
	}

	if cfg.Telemetry.MetricsFile != "" {
		if err := providers.WriteMetrics(cfg.Telemetry.MetricsFile); err != nil {
			infrastructure.WithError(logger, err).WarnContext(ctx, "Failed to write metrics file",
				slog.String("path", cfg.Telemetry.MetricsFile))
		}
	}

	logger.InfoContext(ctx, "Season compilation finished", slog.Any("files", written))
	fmt.Fprintln(r.stdout, config.CompletionMessage)
	return nil
}

func (r *runner) runCompile(ctx context.Context, cfg *config.Config, paths *config.Paths, logger *slog.Logger,
	providers *infrastructure.OTelProviders, metrics *infrastructure.RunMetrics) ([]string, error) {
	validator := validation.NewFileValidator(logger)
	if err := validator.ValidateInputDirectory(paths.InputDir); err != nil {
		return nil, err
	}
	if err := validator.ValidateOutputDirectory(paths.OutputDir); err != nil {
		return nil, err
	}

	mode := dataprocessing.ParseLenient
	if cfg.Tournament.Strict() {
		mode = dataprocessing.ParseStrict
	}
	discovery := files.NewDiscovery(paths.InputDir, cfg.Tournament.FilePrefix)
	extractor := dataprocessing.NewExtractor(discovery, logger, dataprocessing.ExtractorConfig{
		Mode:    mode,
		Tracer:  providers.Tracer,
		Metrics: metrics,
	})

	tournament := cfg.Tournament
	tournament.InputDir = paths.InputDir
	season, err := dataprocessing.NewAggregator(tournament, extractor, logger).
		WithTelemetry(providers.Tracer, metrics).
		Run(ctx)
	if err != nil {
		return nil, err
	}

	report := dataprocessing.BuildReport(season)
	metrics.EntitiesRanked.Record(ctx, int64(len(report.Teams)),
		metric.WithAttributes(attribute.String("table", "teams")))
	metrics.EntitiesRanked.Record(ctx, int64(len(report.Players)),
		metric.WithAttributes(attribute.String("table", "players")))

	writer, err := exporter.NewReportWriter(cfg.Report.Format, paths, logger)
	if err != nil {
		return nil, err
	}
	return writer.Write(ctx, report)
}

// check reports missing, unreadable and unexpected scoresheets.
func (r *runner) check(c *cli.Context) error {
	cfg, paths, logger, cleanup, err := r.setup(c)
	if err != nil {
		return err
	}
	defer cleanup()

	discovery := files.NewDiscovery(paths.InputDir, cfg.Tournament.FilePrefix)
	result, err := validation.NewFileValidator(logger).
		CheckScoresheets(discovery, cfg.Tournament.Rooms, cfg.Tournament.Rounds)
	if err != nil {
		return err
	}

	for _, ref := range result.Missing {
		fmt.Fprintf(r.stdout, "missing     %s (%s)\n", filepath.Base(discovery.Path(ref)), ref)
	}
	invalid := make([]domain.GameRef, 0, len(result.Invalid))
	for ref := range result.Invalid {
		invalid = append(invalid, ref)
	}
	sort.Slice(invalid, func(i, j int) bool {
		if invalid[i].Room != invalid[j].Room {
			return invalid[i].Room < invalid[j].Room
		}
		return invalid[i].Round < invalid[j].Round
	})
	for _, ref := range invalid {
		fmt.Fprintf(r.stdout, "invalid     %s (%s): %v\n", filepath.Base(discovery.Path(ref)), ref, result.Invalid[ref])
	}
	for _, f := range result.Unexpected {
		fmt.Fprintf(r.stdout, "unexpected  %s\n", f.Name)
	}

	if !result.OK() {
		return fmt.Errorf("%d of %d scoresheets missing or invalid",
			len(result.Missing)+len(result.Invalid), result.Expected)
	}
	fmt.Fprintf(r.stdout, "All %d scoresheets present in %s\n", result.Expected, paths.InputDir)
	return nil
}
