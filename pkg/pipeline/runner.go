package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"infoprom/poaudit/pkg/compliance"
	"infoprom/poaudit/pkg/config"
	"infoprom/poaudit/pkg/eventlog"
	"infoprom/poaudit/pkg/report"
	"infoprom/poaudit/pkg/storage"
	"infoprom/poaudit/pkg/telemetry/metrics"
)

// ErrNoInputFiles indicates the input directory held no .xes files.
var ErrNoInputFiles = errors.New("no XES files found in input directory")

// RunResult summarizes one batch run.
type RunResult struct {
	// RunID is the unique identifier of the run, also used as the
	// verdict-store grouping key.
	RunID string `json:"run_id"`

	// StartedAt and Duration bound the run.
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`

	// Summaries holds one entry per processed category file, including
	// failed ones.
	Summaries []report.CategorySummary `json:"summaries"`

	// Processed, Failed and Skipped count input files.
	Processed int `json:"processed"`
	Failed    int `json:"failed"`
	Skipped   int `json:"skipped"`
}

// Runner executes batch compliance runs.
type Runner struct {
	cfg       *config.Config
	engine    *compliance.Engine
	store     storage.Store
	collector *metrics.Collector
	logger    *slog.Logger
}

// NewRunner creates a batch runner. store and collector may be nil to
// disable persistence and metrics.
func NewRunner(cfg *config.Config, engine *compliance.Engine, store storage.Store, collector *metrics.Collector) *Runner {
	return &Runner{
		cfg:       cfg,
		engine:    engine,
		store:     store,
		collector: collector,
		logger:    slog.Default().With("component", "pipeline.runner"),
	}
}

// Run processes every category log in the input directory. Files that
// cannot be attributed to a category are skipped; files that fail to load
// or evaluate appear in the result with their error. Run returns an error
// only when no file could be processed at all.
func (r *Runner) Run(ctx context.Context) (*RunResult, error) {
	started := time.Now()
	result := &RunResult{
		RunID:     uuid.NewString(),
		StartedAt: started,
	}

	files, err := listXESFiles(r.cfg.Input.Dir)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputFiles, r.cfg.Input.Dir)
	}

	r.logger.Info("batch run started",
		"run_id", result.RunID,
		"input_dir", r.cfg.Input.Dir,
		"files", len(files))

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		category, ok := CategoryFromFilename(file)
		if !ok {
			r.logger.Warn("cannot infer category from filename, skipping", "file", file)
			r.recordFile("skipped")
			result.Skipped++
			continue
		}

		summary, err := r.processFile(ctx, result.RunID, file, category)
		if err != nil {
			r.logger.Error("failed to process file", "file", file, "category", category, "error", err)
			r.recordFile("failed")
			result.Failed++
			result.Summaries = append(result.Summaries, report.FailedCategorySummary(string(category), file, err))
			continue
		}

		r.recordFile("ok")
		result.Processed++
		result.Summaries = append(result.Summaries, summary)
	}

	result.Duration = time.Since(started)
	if r.collector != nil {
		r.collector.ObserveRunDuration(result.Duration)
	}

	if result.Processed == 0 {
		return result, fmt.Errorf("all %d input files failed or were skipped", len(files))
	}

	r.logger.Info("batch run finished",
		"run_id", result.RunID,
		"processed", result.Processed,
		"failed", result.Failed,
		"skipped", result.Skipped,
		"duration", result.Duration)
	return result, nil
}

// processFile runs the full load → evaluate → partition → persist chain
// for one category log.
func (r *Runner) processFile(ctx context.Context, runID, file string, category compliance.Category) (report.CategorySummary, error) {
	log, err := eventlog.ReadFile(filepath.Join(r.cfg.Input.Dir, file))
	if err != nil {
		return report.CategorySummary{}, err
	}
	r.logger.Info("log loaded",
		"file", file,
		"category", category,
		"cases", len(log.Cases),
		"events", log.EventCount())

	verdicts, err := r.engine.EvaluateLog(log, category)
	if err != nil {
		return report.CategorySummary{}, err
	}

	stats := compliance.NewStats(category)
	for _, v := range verdicts {
		stats.Add(v)
		if r.collector != nil {
			r.collector.RecordCase(string(category), v.Compliant, v.Violations)
		}
	}

	compliantLog, nonCompliantLog, err := report.Partition(log, verdicts)
	if err != nil {
		return report.CategorySummary{}, err
	}

	if len(compliantLog.Cases) > 0 {
		path := filepath.Join(r.cfg.Output.Dir, r.cfg.Output.CompliantSubdir, "compliant_"+file)
		if err := eventlog.WriteFile(compliantLog, path); err != nil {
			return report.CategorySummary{}, err
		}
	}
	if len(nonCompliantLog.Cases) > 0 {
		path := filepath.Join(r.cfg.Output.Dir, r.cfg.Output.NonCompliantSubdir, "non_compliant_"+file)
		if err := eventlog.WriteFile(nonCompliantLog, path); err != nil {
			return report.CategorySummary{}, err
		}
	}

	summary := report.NewCategorySummary(stats, file)
	exporter := report.NewJSONExporter(r.cfg.Output.PrettyJSON)
	summaryPath := filepath.Join(r.cfg.Output.Dir, string(category)+"_compliance_summary.json")
	if err := exporter.ExportFile(summary, summaryPath); err != nil {
		return report.CategorySummary{}, err
	}

	if r.store != nil {
		if err := r.store.StoreVerdicts(ctx, runID, verdicts); err != nil {
			return report.CategorySummary{}, err
		}
	}

	r.logger.Info("category processed",
		"category", category,
		"total", stats.Total,
		"compliant", stats.Compliant,
		"non_compliant", stats.NonCompliant,
		"compliance_rate", fmt.Sprintf("%.2f%%", stats.Rate()))
	return summary, nil
}

func (r *Runner) recordFile(status string) {
	if r.collector != nil {
		r.collector.RecordFile(status)
	}
}

func listXESFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read input directory %q: %w", dir, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".xes") {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}
