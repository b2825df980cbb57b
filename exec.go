package main

import (
	"errors"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"
)

var errInvalidName = errors.New("invalid repository name")

// executor runs planned actions concurrently and collects their outcomes
type executor struct {
	git           gitRunner
	baseDir       string
	dryRun        bool
	https         bool
	maxConcurrent int
	out           io.Writer
}

// execute runs every planned entry and returns the full report. Non-skip
// entries run concurrently up to maxConcurrent; one entry's failure never
// cancels or blocks the others, and all in-flight entries are awaited before
// returning. Entries land in the report in completion order.
func (e *executor) execute(planned []PlannedRepo) RunReport {
	entries := make(chan ReportEntry)
	collected := make(chan RunReport)

	// Only the collector appends to the report and writes progress output.
	total := len(planned)
	go func() {
		var report RunReport
		for entry := range entries {
			report.Entries = append(report.Entries, entry)
			e.logEntry(entry, len(report.Entries), total)
		}
		collected <- report
	}()

	var g errgroup.Group
	g.SetLimit(max(e.maxConcurrent, 1))
	for _, p := range planned {
		if p.Action == ActionSkip {
			entries <- ReportEntry{Name: p.Repo.Name, Action: ActionSkip, Reason: p.Reason}
			continue
		}
		p := p // per-iteration copy: go directive is below 1.22
		g.Go(func() error {
			entries <- e.executeOne(p)
			return nil
		})
	}
	_ = g.Wait() // workers never return an error
	close(entries)

	return <-collected
}

// executeOne performs one non-skip entry. Names that cannot safely be passed
// to an external command or used as a directory name are rejected here, in
// dry-run mode as well.
func (e *executor) executeOne(p PlannedRepo) ReportEntry {
	entry := ReportEntry{Name: p.Repo.Name, Action: p.Action}
	if !validName(p.Repo.Name) {
		entry.Err = errInvalidName
		return entry
	}
	if e.dryRun {
		entry.Reason = "dry-run"
		return entry
	}
	switch p.Action {
	case ActionClone:
		entry.Err = e.git.Clone(p.Repo.CloneURL(e.https), e.baseDir)
	case ActionFetch:
		entry.Err = e.git.Fetch(p.Repo.Name, e.baseDir)
	}
	return entry
}

func (e *executor) logEntry(entry ReportEntry, n, total int) {
	switch {
	case entry.Err != nil:
		fmt.Fprintf(e.out, "[%d/%d] %s: %s failed: %v\n", n, total, entry.Name, entry.Action, entry.Err)
	case entry.Action == ActionSkip:
		fmt.Fprintf(e.out, "[%d/%d] %s: skipped (%s)\n", n, total, entry.Name, entry.Reason)
	case entry.Reason == "dry-run":
		fmt.Fprintf(e.out, "[%d/%d] %s: would %s\n", n, total, entry.Name, entry.Action)
	default:
		fmt.Fprintf(e.out, "[%d/%d] %s: %s ok\n", n, total, entry.Name, entry.Action)
	}
}
