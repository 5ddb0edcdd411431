package main

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"infoprom/poaudit/pkg/compliance"
	"infoprom/poaudit/pkg/eventlog"
)

var splitFlags struct {
	input         string
	outputDir     string
	startActivity string
	from          string
	to            string
	keepRest      bool
}

var splitCmd = &cobra.Command{
	Use:   "split",
	Short: "Split the master log into per-category logs",
	Long: `Split the master event log into one log per procurement category.

Cases are first filtered to those starting with the configured start
activity and fully contained in the given time range, then grouped by the
"Item Category" case attribute. Each group is written as
group_<category>.xes into the output directory, ready for the filter
command.

Examples:
  poaudit split --input data/BPI_Challenge_2019.xes
  poaudit split --input master.xes --from 2018-01-01 --to 2019-02-01
  poaudit split --input master.xes --keep-rest`,
	RunE: runSplit,
}

func init() {
	rootCmd.AddCommand(splitCmd)

	splitCmd.Flags().StringVarP(&splitFlags.input, "input", "i", "data/BPI_Challenge_2019.xes", "master XES log")
	splitCmd.Flags().StringVarP(&splitFlags.outputDir, "output", "o", "", "output directory (defaults to the configured input directory)")
	splitCmd.Flags().StringVar(&splitFlags.startActivity, "start-activity", "Create Purchase Order Item", "required first activity of kept cases")
	splitCmd.Flags().StringVar(&splitFlags.from, "from", "2018-01-01", "start of the kept time range (YYYY-MM-DD)")
	splitCmd.Flags().StringVar(&splitFlags.to, "to", "2025-05-15", "end of the kept time range (YYYY-MM-DD)")
	splitCmd.Flags().BoolVar(&splitFlags.keepRest, "keep-rest", false, "also write cases outside the four categories as group_other.xes")
}

func runSplit(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	outDir := splitFlags.outputDir
	if outDir == "" {
		outDir = cfg.Input.Dir
	}

	from, err := time.Parse("2006-01-02", splitFlags.from)
	if err != nil {
		return fmt.Errorf("invalid --from date %q: %w", splitFlags.from, err)
	}
	to, err := time.Parse("2006-01-02", splitFlags.to)
	if err != nil {
		return fmt.Errorf("invalid --to date %q: %w", splitFlags.to, err)
	}
	if !from.Before(to) {
		return fmt.Errorf("--from %q must be before --to %q", splitFlags.from, splitFlags.to)
	}

	fmt.Printf("Loading %s\n", splitFlags.input)
	log, err := eventlog.ReadFile(splitFlags.input)
	if err != nil {
		return err
	}
	fmt.Printf("Loaded %d cases, %d events\n", len(log.Cases), log.EventCount())

	filtered := eventlog.FilterTimeRange(log, from, to)
	filtered = eventlog.FilterStartActivity(filtered, splitFlags.startActivity)
	fmt.Printf("After filtering: %d cases, %d events\n", len(filtered.Cases), filtered.EventCount())

	groups, rest := eventlog.GroupByAttribute(filtered, eventlog.KeyItemCategory, compliance.CategoryLabelGroups())

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		path := filepath.Join(outDir, fmt.Sprintf("group_%s.xes", name))
		if err := eventlog.WriteFile(groups[name], path); err != nil {
			return err
		}
		fmt.Printf("  %s: %d cases -> %s\n", name, len(groups[name].Cases), path)
	}

	if len(rest.Cases) > 0 {
		fmt.Printf("  uncategorized: %d cases\n", len(rest.Cases))
		if splitFlags.keepRest {
			path := filepath.Join(outDir, "group_other.xes")
			if err := eventlog.WriteFile(rest, path); err != nil {
				return err
			}
			fmt.Printf("  uncategorized cases written to %s\n", path)
		}
	}
	return nil
}
