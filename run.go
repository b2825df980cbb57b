package main

import (
	"fmt"
	"io"
)

// config holds one run's settings after flags, environment and config file
// resolve
type config struct {
	Org           string
	DryRun        bool
	Filters       []string
	MaxConcurrent int
	HTTPS         bool
	BaseDir       string
}

// runSync drives one full run: discovery, planning, execution, report.
// A discovery failure is fatal and yields an empty report; per-repository
// failures are contained in the report and reflected in the status.
func runSync(cfg config, lister repoLister, git gitRunner, out, errOut io.Writer) (RunReport, Status) {
	fmt.Fprintf(out, "Fetching repository list for %s...\n", cfg.Org)
	repos, err := lister.List(cfg.Org)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return RunReport{}, StatusFailure
	}

	planned := plan(repos, cfg.Filters, cfg.BaseDir)

	if cfg.DryRun {
		fmt.Fprintln(out, "Dry run: no repositories will be modified.")
	}

	e := &executor{
		git:           git,
		baseDir:       cfg.BaseDir,
		dryRun:        cfg.DryRun,
		https:         cfg.HTTPS,
		maxConcurrent: cfg.MaxConcurrent,
		out:           out,
	}
	report := e.execute(planned)

	printSummary(out, report)

	if _, failed, _ := report.Counts(); failed > 0 {
		return report, StatusPartialFailure
	}
	return report, StatusSuccess
}

// printSummary lists the failed repositories and prints the aggregate counts
func printSummary(out io.Writer, report RunReport) {
	var failed []ReportEntry
	for _, entry := range report.Entries {
		if entry.Err != nil {
			failed = append(failed, entry)
		}
	}
	if len(failed) > 0 {
		fmt.Fprintf(out, "Failed: %d repos\n", len(failed))
		for _, entry := range failed {
			fmt.Fprintf(out, "  - %s (%s): %v\n", entry.Name, entry.Action, entry.Err)
		}
	}

	succeeded, nfailed, skipped := report.Counts()
	fmt.Fprintf(out, "Processed %d repos: %d succeeded, %d failed, %d skipped\n",
		report.Planned(), succeeded, nfailed, skipped)
}
