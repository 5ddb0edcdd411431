package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"infoprom/poaudit/pkg/compliance"
	"infoprom/poaudit/pkg/config"
	"infoprom/poaudit/pkg/pipeline"
	"infoprom/poaudit/pkg/storage"
	"infoprom/poaudit/pkg/telemetry/metrics"
)

var filterFlags struct {
	inputDir  string
	outputDir string
	store     bool
	storePath string
	watch     bool
	schedule  string
}

var filterCmd = &cobra.Command{
	Use:   "filter",
	Short: "Run the compliance batch over the category logs",
	Long: `Run the compliance batch over the per-category XES logs.

Each input file's procurement category is inferred from its filename
(3_way_after, 3_way_before, 2_way, consignment). Every case is checked
against its category's rules; compliant and non-compliant cases are
written to separate logs and a JSON summary with per-reason counts is
produced per category.

Files that fail to load are logged and skipped; the batch continues with
the remaining files.

Examples:
  # One-shot batch with default configuration
  poaudit filter

  # Override input and output directories
  poaudit filter --input data/filtered --output data/filtered

  # Persist verdicts for later querying
  poaudit filter --store

  # Re-run whenever new logs land in the input directory
  poaudit filter --watch

  # Re-run every night at 02:00
  poaudit filter --schedule "0 2 * * *"`,
	RunE: runFilter,
}

func init() {
	rootCmd.AddCommand(filterCmd)

	filterCmd.Flags().StringVarP(&filterFlags.inputDir, "input", "i", "", "override input directory")
	filterCmd.Flags().StringVarP(&filterFlags.outputDir, "output", "o", "", "override output directory")
	filterCmd.Flags().BoolVar(&filterFlags.store, "store", false, "persist verdicts to the verdict database")
	filterCmd.Flags().StringVar(&filterFlags.storePath, "store-path", "", "override verdict database path")
	filterCmd.Flags().BoolVarP(&filterFlags.watch, "watch", "w", false, "keep running and re-filter on input changes")
	filterCmd.Flags().StringVar(&filterFlags.schedule, "schedule", "", "re-run on a cron schedule")
}

func runFilter(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if filterFlags.inputDir != "" {
		cfg.Input.Dir = filterFlags.inputDir
	}
	if filterFlags.outputDir != "" {
		cfg.Output.Dir = filterFlags.outputDir
	}
	if filterFlags.store {
		cfg.Storage.Enabled = true
	}
	if filterFlags.storePath != "" {
		cfg.Storage.Path = filterFlags.storePath
	}
	if filterFlags.watch {
		cfg.Watch.Enabled = true
	}
	if filterFlags.schedule != "" {
		cfg.Schedule = filterFlags.schedule
	}
	if err := config.Validate(cfg); err != nil {
		return err
	}

	engine := compliance.NewEngine(compliance.EngineConfig{
		Patterns:       compliance.MergedPatternConfig(cfg.Engine.Patterns),
		ValueTolerance: cfg.Engine.ValueTolerance,
	})

	var store storage.Store
	if cfg.Storage.Enabled {
		sqlStore, err := storage.NewSQLiteStore(&storage.SQLiteConfig{Path: cfg.Storage.Path})
		if err != nil {
			return err
		}
		defer sqlStore.Close()
		store = sqlStore
	}

	var collector *metrics.Collector
	if cfg.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Metrics, nil)
	}

	runner := pipeline.NewRunner(cfg, engine, store, collector)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if collector != nil && cfg.Metrics.ListenAddress != "" && (cfg.Watch.Enabled || cfg.Schedule != "") {
		go func() {
			if err := collector.Serve(ctx, cfg.Metrics.ListenAddress); err != nil {
				fmt.Printf("metrics endpoint error: %v\n", err)
			}
		}()
	}

	switch {
	case cfg.Watch.Enabled:
		return runWatched(ctx, cfg, runner)
	case cfg.Schedule != "":
		return runScheduled(ctx, cfg, runner)
	default:
		result, err := runner.Run(ctx)
		if result != nil {
			printRunResult(result)
		}
		return err
	}
}

// runWatched runs one batch immediately, then re-runs after every
// debounced change to the input directory until interrupted.
func runWatched(ctx context.Context, cfg *config.Config, runner *pipeline.Runner) error {
	runOnce := func() {
		result, err := runner.Run(ctx)
		if err != nil {
			fmt.Printf("batch run failed: %v\n", err)
			return
		}
		printRunResult(result)
	}

	runOnce()
	watcher := pipeline.NewWatcher(cfg.Input.Dir, cfg.Watch.Debounce)
	if err := watcher.Run(ctx, runOnce); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

// runScheduled re-runs the batch on the configured cron expression until
// interrupted.
func runScheduled(ctx context.Context, cfg *config.Config, runner *pipeline.Runner) error {
	job := func() {
		result, err := runner.Run(ctx)
		if err != nil {
			fmt.Printf("scheduled run failed: %v\n", err)
			return
		}
		printRunResult(result)
	}

	scheduler := pipeline.NewScheduler()
	if err := scheduler.Run(ctx, cfg.Schedule, job); err != nil && err != context.Canceled {
		return err
	}
	return nil
}

func printRunResult(result *pipeline.RunResult) {
	fmt.Println()
	fmt.Println("============================================================")
	fmt.Println("COMPLIANCE FILTERING SUMMARY")
	fmt.Println("============================================================")
	fmt.Printf("Run ID: %s\n", result.RunID)

	for _, s := range result.Summaries {
		fmt.Printf("\n%s:\n", s.Category)
		if s.Error != "" {
			fmt.Printf("  FAILED: %s\n", s.Error)
			continue
		}
		fmt.Printf("  Total cases: %d\n", s.Total)
		fmt.Printf("  Compliant: %d (%.2f%%)\n", s.Compliant, s.ComplianceRate)
		fmt.Printf("  Non-compliant: %d (%.2f%%)\n", s.NonCompliant, 100-s.ComplianceRate)

		printed := 0
		for _, rc := range s.Reasons {
			if rc.Reason == compliance.ReasonCompliant {
				continue
			}
			if printed == 0 {
				fmt.Println("  Top non-compliance reasons:")
			}
			fmt.Printf("    - %s: %d cases\n", rc.Reason, rc.Count)
			if printed++; printed == 3 {
				break
			}
		}
	}
	fmt.Printf("\nProcessed %d files (%d failed, %d skipped) in %s\n",
		result.Processed, result.Failed, result.Skipped, result.Duration.Round(time.Millisecond))
}
