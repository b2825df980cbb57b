package main

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// gitRunner performs the clone and fetch operations for one repository.
// Implementations must be safe for independent concurrent invocation.
type gitRunner interface {
	Clone(url, baseDir string) error
	Fetch(name, baseDir string) error
}

// gitCLI shells out to the git binary
type gitCLI struct{}

// Clone clones url into a directory named after the repository under baseDir
func (gitCLI) Clone(url, baseDir string) error {
	return git(baseDir, "clone", url)
}

// Fetch updates all remotes of the repository checked out at baseDir/name
func (gitCLI) Fetch(name, baseDir string) error {
	return git(baseDir, "-C", name, "fetch", "--all")
}

// git runs a git command in the specified directory, folding stderr into the
// returned error
func git(dir string, args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}
	return nil
}
