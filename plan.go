package main

import (
	"os"
	"path/filepath"
	"strings"
)

// validName reports whether a discovered name is usable as a directory name
// and a command argument
func validName(name string) bool {
	return strings.TrimSpace(name) != ""
}

// dirExists checks for a directory named name directly under baseDir.
// It does not verify that the directory is a usable clone of the expected
// remote: existence alone routes the repository to fetch, and an unrelated
// or broken directory surfaces as an ordinary fetch failure.
func dirExists(baseDir, name string) bool {
	info, err := os.Stat(filepath.Join(baseDir, name))
	return err == nil && info.IsDir()
}

// plan decides one action per repository, preserving discovery order.
// Filtered names are skipped, present directories are fetched, absent ones
// are cloned. Each name's local state is probed exactly once, and invalid
// names are never probed; the executor rejects them before dispatch.
func plan(repos []Repo, filters []string, baseDir string) []PlannedRepo {
	planned := make([]PlannedRepo, 0, len(repos))
	for _, repo := range repos {
		switch {
		case isExcluded(repo.Name, filters):
			planned = append(planned, PlannedRepo{Repo: repo, Action: ActionSkip, Reason: "filtered"})
		case validName(repo.Name) && dirExists(baseDir, repo.Name):
			planned = append(planned, PlannedRepo{Repo: repo, Action: ActionFetch})
		default:
			planned = append(planned, PlannedRepo{Repo: repo, Action: ActionClone})
		}
	}
	return planned
}
