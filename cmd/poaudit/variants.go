package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"infoprom/poaudit/pkg/eventlog"
)

var variantsFlags struct {
	inputDir  string
	outputDir string
	coverage  float64
	topN      int
	list      int
}

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "Filter logs down to their most frequent variants",
	Long: `Filter every XES log in the input directory down to its most
frequent activity-sequence variants.

With --coverage N, the smallest set of most frequent variants whose cases
accumulate to N% of the log is kept. With --top-n N, the N most frequent
variants are kept. Both may be given; each produces its own output file.
With --list N, the N most frequent variants of each log are printed
instead.

Examples:
  poaudit variants --coverage 80
  poaudit variants --top-n 10
  poaudit variants --list 5`,
	RunE: runVariants,
}

func init() {
	rootCmd.AddCommand(variantsCmd)

	variantsCmd.Flags().StringVarP(&variantsFlags.inputDir, "input", "i", "", "input directory (defaults to the configured input directory)")
	variantsCmd.Flags().StringVarP(&variantsFlags.outputDir, "output", "o", "data/variant_filtered", "output directory")
	variantsCmd.Flags().Float64Var(&variantsFlags.coverage, "coverage", 0, "keep variants covering this percentage of cases")
	variantsCmd.Flags().IntVar(&variantsFlags.topN, "top-n", 0, "keep the N most frequent variants")
	variantsCmd.Flags().IntVar(&variantsFlags.list, "list", 0, "print the N most frequent variants instead of filtering")
}

func runVariants(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	inDir := variantsFlags.inputDir
	if inDir == "" {
		inDir = cfg.Input.Dir
	}
	if variantsFlags.coverage == 0 && variantsFlags.topN == 0 && variantsFlags.list == 0 {
		return fmt.Errorf("one of --coverage, --top-n or --list is required")
	}
	if variantsFlags.coverage < 0 || variantsFlags.coverage > 100 {
		return fmt.Errorf("--coverage must be between 0 and 100, got %v", variantsFlags.coverage)
	}

	entries, err := os.ReadDir(inDir)
	if err != nil {
		return fmt.Errorf("failed to read input directory %q: %w", inDir, err)
	}

	logger := slog.Default().With("component", "variants")
	processed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".xes") {
			continue
		}
		path := filepath.Join(inDir, entry.Name())
		if err := processVariantsFile(path, entry.Name()); err != nil {
			logger.Error("failed to process log", "file", entry.Name(), "error", err)
			continue
		}
		processed++
	}
	if processed == 0 {
		return fmt.Errorf("no XES files processed in %q", inDir)
	}
	return nil
}

func processVariantsFile(path, name string) error {
	fmt.Printf("Processing %s...\n", name)
	log, err := eventlog.ReadFile(path)
	if err != nil {
		return err
	}
	base := strings.TrimSuffix(name, filepath.Ext(name))

	if variantsFlags.list > 0 {
		variants := eventlog.Variants(log)
		n := variantsFlags.list
		if n > len(variants) {
			n = len(variants)
		}
		fmt.Printf("  %d distinct variants over %d cases\n", len(variants), len(log.Cases))
		for _, v := range variants[:n] {
			fmt.Printf("    %5d  %s\n", v.Count, v.Signature)
		}
	}

	if variantsFlags.coverage > 0 {
		filtered := eventlog.FilterCoverage(log, variantsFlags.coverage)
		out := filepath.Join(variantsFlags.outputDir, fmt.Sprintf("%s_coverage_%d.xes", base, int(variantsFlags.coverage)))
		if err := eventlog.WriteFile(filtered, out); err != nil {
			return err
		}
		fmt.Printf("  %d of %d cases at %.0f%% coverage -> %s\n",
			len(filtered.Cases), len(log.Cases), variantsFlags.coverage, out)
	}

	if variantsFlags.topN > 0 {
		filtered := eventlog.FilterTopN(log, variantsFlags.topN)
		out := filepath.Join(variantsFlags.outputDir, fmt.Sprintf("%s_top_%d.xes", base, variantsFlags.topN))
		if err := eventlog.WriteFile(filtered, out); err != nil {
			return err
		}
		fmt.Printf("  %d of %d cases in top %d variants -> %s\n",
			len(filtered.Cases), len(log.Cases), variantsFlags.topN, out)
	}
	return nil
}
