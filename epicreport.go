package epicreport

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/ethereum-optimism/infra/epic-report/aggregate"
	"github.com/ethereum-optimism/infra/epic-report/loader"
	"github.com/ethereum-optimism/infra/epic-report/reporting"
	"github.com/ethereum-optimism/infra/epic-report/types"
	"github.com/ethereum-optimism/optimism/op-service/cliapp"
)

// epicReport implements the cliapp.Lifecycle interface.
var _ cliapp.Lifecycle = &epicReport{}

// epicReport loads a results CSV, summarises it per Epic and writes the
// configured report artifacts.
type epicReport struct {
	config    *Config
	version   string
	runID     string
	formatter SummaryFormatter
	reporter  MetricsReporter
	tracer    trace.Tracer
	summary   *types.Summary

	running atomic.Bool

	shutdownCallback func(error) // Callback to signal application shutdown
}

func New(ctx context.Context, config *Config, version string, shutdownCallback func(error)) (*epicReport, error) {
	if config == nil {
		return nil, errors.New("config is required")
	}
	if config.Input == "" {
		return nil, errors.New("input CSV is required")
	}

	runID := uuid.New().String()
	config.Log.Debug("Creating epic-report with config",
		"run_id", runID,
		"input", config.Input,
		"tableOut", config.TableOut,
		"pieOut", config.PieOut,
		"barOut", config.BarOut,
		"xlsx", config.WorkbookPaths(),
		"sortByStatus", config.SortByStatus,
		"labelUntagged", config.LabelUntagged)

	return &epicReport{
		config:           config,
		version:          version,
		runID:            runID,
		formatter:        NewConsoleSummaryFormatter(config.Log),
		reporter:         NewDefaultMetricsReporter(),
		tracer:           otel.Tracer("epic report"),
		shutdownCallback: shutdownCallback,
	}, nil
}

// Start builds the report once and then asks the application to exit.
// Start implements the cliapp.Lifecycle interface.
func (r *epicReport) Start(ctx context.Context) error {
	r.running.Store(true)
	r.config.Log.Info("Starting epic-report", "version", r.version, "run_id", r.runID, "input", r.config.Input)

	summary, err := r.Run(ctx)
	if err != nil {
		r.running.Store(false)
		r.config.Log.Error("Report failed", "run_id", r.runID, "error", err)
		return err
	}
	r.summary = summary

	r.config.Log.Info("Report completed, exiting",
		"run_id", r.runID,
		"epics", len(summary.Epics),
		"tests", summary.TotalTests(),
		"worst_status", summary.WorstStatus())
	go func() {
		r.shutdownCallback(nil)
	}()
	return nil
}

// Stop implements the cliapp.Lifecycle interface.
func (r *epicReport) Stop(ctx context.Context) error {
	if !r.running.Load() {
		r.config.Log.Debug("epic-report already stopped, nothing to do")
		return nil
	}
	r.running.Store(false)
	r.config.Log.Info("epic-report stopped")
	return nil
}

// Stopped implements the cliapp.Lifecycle interface.
func (r *epicReport) Stopped() bool {
	return !r.running.Load()
}

// Summary returns the summary of the last successful run, or nil.
func (r *epicReport) Summary() *types.Summary {
	return r.summary
}

// Run executes load, aggregate and export. Load failures are returned as
// *types.DataLoadError. Every requested artifact is attempted; their
// failures are joined into the returned error.
func (r *epicReport) Run(ctx context.Context) (*types.Summary, error) {
	ctx, span := r.tracer.Start(ctx, "epic report", trace.WithAttributes(
		attribute.String("run_id", r.runID),
		attribute.String("input", r.config.Input),
	))
	defer span.End()

	tbl, err := r.load(ctx)
	if err != nil {
		r.reporter.ReportError("load", err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	summary := r.aggregate(ctx, tbl)
	r.reporter.ReportSummary(r.runID, summary)

	if r.config.PrintSummary {
		if err := r.formatter.FormatSummary(r.runID, summary); err != nil {
			r.config.Log.Warn("Failed to print summary", "error", err)
		}
	}

	errs := r.export(ctx, summary)
	if err := r.reporter.Flush(r.config.MetricsTextfile); err != nil {
		errs = append(errs, NewRuntimeError(err))
	} else if r.config.MetricsTextfile != "" {
		r.config.Log.Info("Wrote metrics textfile", "path", r.config.MetricsTextfile)
	}

	if err := errors.Join(errs...); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return summary, err
	}
	return summary, nil
}

func (r *epicReport) load(ctx context.Context) (*types.Table, error) {
	_, span := r.tracer.Start(ctx, fmt.Sprintf("load %s", r.config.Input))
	defer span.End()

	tbl, err := loader.Load(r.config.Input)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.Int("records", len(tbl.Records)))
	r.config.Log.Info("Loaded results", "path", r.config.Input, "records", len(tbl.Records))
	return tbl, nil
}

func (r *epicReport) aggregate(ctx context.Context, tbl *types.Table) *types.Summary {
	_, span := r.tracer.Start(ctx, "aggregate")
	defer span.End()

	var opts []aggregate.Option
	if r.config.LabelUntagged {
		opts = append(opts, aggregate.WithUntaggedLabels())
	}
	summary := aggregate.Aggregate(tbl.Records, opts...)
	if r.config.SortByStatus {
		summary = aggregate.SortByStatus(summary)
	}

	span.SetAttributes(
		attribute.Int("epics", len(summary.Epics)),
		attribute.Int("tests", summary.TotalTests()),
	)
	r.config.Log.Info("Aggregated results", "epics", len(summary.Epics), "tests", summary.TotalTests())
	return summary
}

// artifact is one requested report output.
type artifact struct {
	name  string
	paths []string
	save  func() error
}

func (r *epicReport) artifacts(summary *types.Summary) []artifact {
	var out []artifact
	if path := r.config.TableOut; path != "" {
		t := reporting.NewSummaryTable(summary, reporting.WithTitle(r.config.Title))
		out = append(out, artifact{
			name:  reporting.ArtifactTable,
			paths: []string{path},
			save:  func() error { return reporting.SaveTablePNG(t, path) },
		})
	}
	if path := r.config.PieOut; path != "" {
		pie := reporting.NewStatusPie(summary)
		out = append(out, artifact{
			name:  reporting.ArtifactPie,
			paths: []string{path},
			save:  func() error { return reporting.SavePie(pie, path) },
		})
	}
	if path := r.config.BarOut; path != "" {
		bars := reporting.NewVolumeBars(summary)
		out = append(out, artifact{
			name:  reporting.ArtifactBars,
			paths: []string{path},
			save:  func() error { return reporting.SaveBars(bars, path) },
		})
	}
	if paths := r.config.WorkbookPaths(); len(paths) > 0 {
		out = append(out, artifact{
			name:  reporting.ArtifactWorkbook,
			paths: paths,
			save:  func() error { return reporting.SaveWorkbookCopies(summary, paths...) },
		})
	}
	return out
}

func (r *epicReport) export(ctx context.Context, summary *types.Summary) []error {
	ctx, span := r.tracer.Start(ctx, "export")
	defer span.End()

	artifacts := r.artifacts(summary)
	if len(artifacts) == 0 {
		r.config.Log.Warn("No artifacts requested")
		return nil
	}

	var errs []error
	for _, a := range artifacts {
		_, aspan := r.tracer.Start(ctx, fmt.Sprintf("export %s", a.name))
		if err := a.save(); err != nil {
			aspan.RecordError(err)
			aspan.SetStatus(codes.Error, err.Error())
			r.reporter.ReportError("export", err)
			r.config.Log.Error("Failed to export artifact", "artifact", a.name, "paths", a.paths, "error", err)
			errs = append(errs, err)
		} else {
			r.config.Log.Info("Wrote artifact", "artifact", a.name, "paths", a.paths)
		}
		aspan.End()
	}
	return errs
}
