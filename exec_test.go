package main

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeGit records invocations and fails on demand. Safe for concurrent use,
// as the real runner must be.
type fakeGit struct {
	mu      sync.Mutex
	cloned  []string
	fetched []string
	failFor map[string]error
}

func (f *fakeGit) Clone(url, baseDir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cloned = append(f.cloned, url)
	return f.failFor[url]
}

func (f *fakeGit) Fetch(name, baseDir string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetched = append(f.fetched, name)
	return f.failFor[name]
}

func (f *fakeGit) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cloned) + len(f.fetched)
}

func newExecutor(git gitRunner, dryRun bool) *executor {
	return &executor{
		git:           git,
		baseDir:       ".",
		dryRun:        dryRun,
		maxConcurrent: 2,
		out:           &bytes.Buffer{},
	}
}

func entryFor(t *testing.T, report RunReport, name string) ReportEntry {
	t.Helper()
	for _, entry := range report.Entries {
		if entry.Name == name {
			return entry
		}
	}
	t.Fatalf("no report entry for %q", name)
	return ReportEntry{}
}

func TestExecuteDispatch(t *testing.T) {
	git := &fakeGit{}
	e := newExecutor(git, false)

	report := e.execute([]PlannedRepo{
		{Repo: repoNamed("present"), Action: ActionFetch},
		{Repo: repoNamed("absent"), Action: ActionClone},
	})

	assert.Equal(t, []string{"present"}, git.fetched)
	assert.Equal(t, []string{"git@github.com:chimbosonic/absent.git"}, git.cloned)

	succeeded, failed, skipped := report.Counts()
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 0, skipped)
}

func TestExecuteCloneOverHTTPS(t *testing.T) {
	git := &fakeGit{}
	e := newExecutor(git, false)
	e.https = true

	repo := Repo{Name: "a", SSHURL: "ssh-url", HTTPSURL: "https-url"}
	e.execute([]PlannedRepo{{Repo: repo, Action: ActionClone}})

	assert.Equal(t, []string{"https-url"}, git.cloned)
}

func TestExecuteDryRunTouchesNothing(t *testing.T) {
	git := &fakeGit{}
	e := newExecutor(git, true)

	report := e.execute([]PlannedRepo{
		{Repo: repoNamed("present"), Action: ActionFetch},
		{Repo: repoNamed("absent"), Action: ActionClone},
		{Repo: repoNamed("b-test"), Action: ActionSkip, Reason: "filtered"},
	})

	assert.Equal(t, 0, git.calls())

	succeeded, failed, skipped := report.Counts()
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 0, failed)
	assert.Equal(t, 1, skipped)
	assert.Nil(t, entryFor(t, report, "present").Err)
	assert.Nil(t, entryFor(t, report, "absent").Err)
}

func TestExecuteSkipDoesNotInvokeRunner(t *testing.T) {
	git := &fakeGit{}
	e := newExecutor(git, false)

	report := e.execute([]PlannedRepo{
		{Repo: repoNamed("b-test"), Action: ActionSkip, Reason: "filtered"},
	})

	assert.Equal(t, 0, git.calls())
	require.Len(t, report.Entries, 1)
	assert.Equal(t, ActionSkip, report.Entries[0].Action)
	assert.Equal(t, "filtered", report.Entries[0].Reason)
	assert.Nil(t, report.Entries[0].Err)
}

func TestExecuteFailureIsolation(t *testing.T) {
	failure := errors.New("remote hung up")
	git := &fakeGit{failFor: map[string]error{"git@github.com:chimbosonic/X.git": failure}}
	e := newExecutor(git, false)

	report := e.execute([]PlannedRepo{
		{Repo: repoNamed("A"), Action: ActionClone},
		{Repo: repoNamed("B"), Action: ActionClone},
		{Repo: repoNamed("X"), Action: ActionClone},
		{Repo: repoNamed("C"), Action: ActionClone},
	})

	assert.Nil(t, entryFor(t, report, "A").Err)
	assert.Nil(t, entryFor(t, report, "B").Err)
	assert.Nil(t, entryFor(t, report, "C").Err)
	assert.ErrorIs(t, entryFor(t, report, "X").Err, failure)

	succeeded, failed, skipped := report.Counts()
	assert.Equal(t, 3, succeeded)
	assert.Equal(t, 1, failed)
	assert.Equal(t, 0, skipped)
}

func TestExecuteInvalidName(t *testing.T) {
	git := &fakeGit{}
	e := newExecutor(git, false)

	report := e.execute([]PlannedRepo{
		{Repo: repoNamed("ok"), Action: ActionClone},
		{Repo: repoNamed("   "), Action: ActionClone},
	})

	assert.Equal(t, []string{"git@github.com:chimbosonic/ok.git"}, git.cloned)
	assert.ErrorIs(t, entryFor(t, report, "   ").Err, errInvalidName)
	assert.Nil(t, entryFor(t, report, "ok").Err)
}

func TestExecuteInvalidNameFailsInDryRun(t *testing.T) {
	git := &fakeGit{}
	e := newExecutor(git, true)

	report := e.execute([]PlannedRepo{{Repo: repoNamed(""), Action: ActionClone}})

	assert.Equal(t, 0, git.calls())
	require.Len(t, report.Entries, 1)
	assert.ErrorIs(t, report.Entries[0].Err, errInvalidName)
}

func TestExecuteAggregateCounts(t *testing.T) {
	failure := errors.New("boom")
	git := &fakeGit{failFor: map[string]error{"bad": failure}}
	e := newExecutor(git, false)

	planned := []PlannedRepo{
		{Repo: repoNamed("a"), Action: ActionFetch},
		{Repo: repoNamed("b-test"), Action: ActionSkip, Reason: "filtered"},
		{Repo: repoNamed("c"), Action: ActionClone},
		{Repo: Repo{Name: "bad", SSHURL: "bad"}, Action: ActionClone},
		{Repo: repoNamed(" "), Action: ActionClone},
	}
	report := e.execute(planned)

	succeeded, failed, skipped := report.Counts()
	assert.Equal(t, len(planned), report.Planned())
	assert.Equal(t, len(planned), succeeded+failed+skipped)
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 2, failed)
	assert.Equal(t, 1, skipped)
}
