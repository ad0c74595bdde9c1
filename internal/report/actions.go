// Package report wires the run-report inspection commands.
package report

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	reportpkg "github.com/kotobalab/aozoracb/pkg/report"
)

// RunsAction lists recent corpus builds.
func RunsAction(c *cli.Context) error {
	store, err := reportpkg.Open(c.String("database"))
	if err != nil {
		return fmt.Errorf("failed to open report database: %w", err)
	}
	defer store.Close()

	runs, err := store.ListRuns(c.Int("limit"))
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs found")
		return nil
	}

	fmt.Printf("%-6s %-20s %-9s %-10s %-8s %-14s %-7s %-30s\n",
		"ID", "Started", "Visited", "Tokenized", "Missing", "Unextractable", "Failed", "Catalog")
	fmt.Println(strings.Repeat("-", 110))

	for _, r := range runs {
		fmt.Printf("%-6d %-20s %-9d %-10d %-8d %-14d %-7d %-30s\n",
			r.RunID,
			r.StartedAt.Format("2006-01-02 15:04:05"),
			r.Counts.Visited,
			r.Counts.Tokenized,
			r.Counts.Missing,
			r.Counts.Unextractable,
			r.Counts.Failed,
			r.SourceCSV,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'aozoracb report run <id>' to see per-file outcomes\n")

	return nil
}

// RunAction shows every file outcome of one run, optionally filtered by
// status.
func RunAction(c *cli.Context) error {
	if c.NArg() < 1 {
		return fmt.Errorf("run ID is required")
	}
	var runID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &runID); err != nil {
		return fmt.Errorf("invalid run ID: %s", c.Args().First())
	}

	store, err := reportpkg.Open(c.String("database"))
	if err != nil {
		return fmt.Errorf("failed to open report database: %w", err)
	}
	defer store.Close()

	files, err := store.RunFiles(runID, c.String("status"))
	if err != nil {
		return fmt.Errorf("failed to get run files: %w", err)
	}

	if len(files) == 0 {
		fmt.Printf("Run %d has no matching file records\n", runID)
		return nil
	}

	fmt.Printf("%-40s %-14s %-25s %-8s %-30s\n",
		"File ID", "Status", "Reason", "Lang", "Output")
	fmt.Println(strings.Repeat("-", 120))

	for _, f := range files {
		fmt.Printf("%-40s %-14s %-25s %-8s %-30s\n",
			f.FileID, f.Status, f.Reason, f.Language, f.OutputFile)
	}

	fmt.Printf("\nTotal: %d files\n", len(files))

	return nil
}
