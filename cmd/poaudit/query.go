package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"infoprom/poaudit/pkg/compliance"
	"infoprom/poaudit/pkg/report"
	"infoprom/poaudit/pkg/storage"
)

var queryFlags struct {
	storePath    string
	runID        string
	category     string
	compliant    bool
	nonCompliant bool
	limit        int
	format       string
	listRuns     bool
	summary      bool
}

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query verdicts persisted by past filter runs",
	Long: `Query the verdict database written by "poaudit filter --store".

Without flags the verdicts of the most recent run are listed. Results can
be narrowed by run, category and compliance result, and printed as text
or JSON.

Examples:
  # Known runs, most recent first
  poaudit query --runs

  # Per-category counts of the most recent run
  poaudit query --summary

  # Non-compliant consignment cases of a specific run, as JSON
  poaudit query --run 4f7c... --category consignment --non-compliant --format json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)

	queryCmd.Flags().StringVar(&queryFlags.storePath, "store-path", "", "override verdict database path")
	queryCmd.Flags().StringVar(&queryFlags.runID, "run", "", "restrict to one run ID (default: most recent)")
	queryCmd.Flags().StringVar(&queryFlags.category, "category", "", "restrict to one category")
	queryCmd.Flags().BoolVar(&queryFlags.compliant, "compliant", false, "only compliant cases")
	queryCmd.Flags().BoolVar(&queryFlags.nonCompliant, "non-compliant", false, "only non-compliant cases")
	queryCmd.Flags().IntVar(&queryFlags.limit, "limit", 0, "cap the number of results (0 = unlimited)")
	queryCmd.Flags().StringVar(&queryFlags.format, "format", "text", "output format: text or json")
	queryCmd.Flags().BoolVar(&queryFlags.listRuns, "runs", false, "list known run IDs")
	queryCmd.Flags().BoolVar(&queryFlags.summary, "summary", false, "print per-category counts instead of verdicts")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	path := queryFlags.storePath
	if path == "" {
		path = cfg.Storage.Path
	}
	if queryFlags.compliant && queryFlags.nonCompliant {
		return fmt.Errorf("--compliant and --non-compliant are mutually exclusive")
	}
	if queryFlags.format != "text" && queryFlags.format != "json" {
		return fmt.Errorf("unknown format %q, expected text or json", queryFlags.format)
	}
	if queryFlags.category != "" {
		if _, err := compliance.ParseCategory(queryFlags.category); err != nil {
			return err
		}
	}

	store, err := storage.NewSQLiteStore(&storage.SQLiteConfig{Path: path})
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()

	if queryFlags.listRuns {
		runs, err := store.Runs(ctx)
		if err != nil {
			return err
		}
		if queryFlags.format == "json" {
			return report.NewJSONExporter(true).Export(runs, os.Stdout)
		}
		for _, run := range runs {
			fmt.Println(run)
		}
		return nil
	}

	runID := queryFlags.runID
	if runID == "" {
		runs, err := store.Runs(ctx)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no runs recorded in %q", path)
		}
		runID = runs[0]
	}

	if queryFlags.summary {
		counts, err := store.Summary(ctx, runID)
		if err != nil {
			return err
		}
		if queryFlags.format == "json" {
			return report.NewJSONExporter(true).Export(counts, os.Stdout)
		}
		fmt.Printf("Run %s:\n", runID)
		for _, c := range counts {
			fmt.Printf("  %-12s total %6d  compliant %6d  non-compliant %6d\n",
				c.Category, c.Total, c.Compliant, c.NonCompliant)
		}
		return nil
	}

	q := &storage.Query{
		RunID:    runID,
		Category: queryFlags.category,
		Limit:    queryFlags.limit,
	}
	if queryFlags.compliant {
		yes := true
		q.Compliant = &yes
	}
	if queryFlags.nonCompliant {
		no := false
		q.Compliant = &no
	}

	verdicts, err := store.QueryVerdicts(ctx, q)
	if err != nil {
		return err
	}
	if queryFlags.format == "json" {
		return report.NewJSONExporter(true).Export(verdicts, os.Stdout)
	}
	for _, v := range verdicts {
		result := "compliant"
		if !v.Compliant {
			result = "NON-COMPLIANT: " + strings.Join(v.Violations, "; ")
		}
		fmt.Printf("%-12s %-12s %s\n", v.Category, v.CaseID, result)
	}
	fmt.Printf("%d verdicts\n", len(verdicts))
	return nil
}
