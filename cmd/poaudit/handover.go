package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"infoprom/poaudit/pkg/analysis"
	"infoprom/poaudit/pkg/eventlog"
	"infoprom/poaudit/pkg/report"
)

// logSummary is one row of the aggregate statistics file.
type logSummary struct {
	Log string `json:"log"`
	analysis.Summary
}

var handoverFlags struct {
	inputDir  string
	outputDir string
}

var handoverCmd = &cobra.Command{
	Use:   "handover",
	Short: "Compute role handover statistics per log",
	Long: `Compute role handover statistics for every XES log in the input
directory.

For each case the consecutive role-carrying events are compared: a change
of role counts as a handover between roles, a repeat as a handover within
a role. Per log, the per-case rows are written as <log>_handovers.csv and
the aggregate mean/median statistics of all logs as
handover_statistics.json.

Examples:
  poaudit handover
  poaudit handover --input data/filtered --output data/handover`,
	RunE: runHandover,
}

func init() {
	rootCmd.AddCommand(handoverCmd)

	handoverCmd.Flags().StringVarP(&handoverFlags.inputDir, "input", "i", "", "input directory (defaults to the configured input directory)")
	handoverCmd.Flags().StringVarP(&handoverFlags.outputDir, "output", "o", "data/handover", "output directory")
}

func runHandover(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	inDir := handoverFlags.inputDir
	if inDir == "" {
		inDir = cfg.Input.Dir
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("failed to read input directory %q: %w", inDir, err)
	}

	logger := slog.Default().With("component", "handover")
	csvExporter := report.NewCSVExporter(true)
	summaries := make(map[string]analysis.Summary)

	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xes") {
			continue
		}
		name := entry.Name()
		log, err := eventlog.ReadFile(filepath.Join(inDir, name))
		if err != nil {
			logger.Error("failed to load log", "file", name, "error", err)
			continue
		}

		cases := analysis.Handovers(log)
		summary := analysis.Summarize(cases)
		base := strings.TrimSuffix(name, filepath.Ext(name))
		summaries[base] = summary

		out := filepath.Join(handoverFlags.outputDir, base+"_handovers.csv")
		if err := csvExporter.ExportHandoversFile(cases, out); err != nil {
			return err
		}
		fmt.Printf("%s: %d cases -> %s\n", base, summary.Cases, out)
		fmt.Printf("  between roles: mean %.2f, median %.1f\n", summary.MeanBetween, summary.MedianBetween)
		fmt.Printf("  within roles:  mean %.2f, median %.1f\n", summary.MeanWithin, summary.MedianWithin)
		fmt.Printf("  duration (s):  mean %.0f, median %.0f (%d zero-duration cases)\n",
			summary.MeanDurationSeconds, summary.MedianDurationSeconds, summary.ZeroDurationCases)
	}

	if len(summaries) == 0 {
		return fmt.Errorf("no XES files processed in %q", inDir)
	}

	names := make([]string, 0, len(summaries))
	for name := range summaries {
		names = append(names, name)
	}
	sort.Strings(names)
	ordered := make([]logSummary, 0, len(names))
	for _, name := range names {
		ordered = append(ordered, logSummary{Log: name, Summary: summaries[name]})
	}

	statsPath := filepath.Join(handoverFlags.outputDir, "handover_statistics.json")
	if err := report.NewJSONExporter(true).ExportFile(ordered, statsPath); err != nil {
		return err
	}
	fmt.Printf("Aggregate statistics written to %s\n", statsPath)
	return nil
}
