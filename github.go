package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"
)

// repoLister lists the repositories of an organization
type repoLister interface {
	List(org string) ([]Repo, error)
}

// ghLister discovers repositories with the gh CLI, which handles
// authentication on its own
type ghLister struct{}

func (ghLister) List(org string) ([]Repo, error) {
	cmd := exec.Command("gh", "repo", "list", org, "--json", "sshUrl,url", "-L", "1000")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("gh repo list %s: %w: %s", org, err, strings.TrimSpace(stderr.String()))
	}
	return parseRepoList(stdout.Bytes())
}

// parseRepoList decodes the JSON array printed by gh repo list
func parseRepoList(data []byte) ([]Repo, error) {
	var raw []struct {
		SSHURL string `json:"sshUrl"`
		URL    string `json:"url"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse gh repo list output: %w", err)
	}
	repos := make([]Repo, 0, len(raw))
	for _, r := range raw {
		repos = append(repos, Repo{
			Name:     repoName(r.SSHURL),
			SSHURL:   r.SSHURL,
			HTTPSURL: r.URL,
		})
	}
	return repos, nil
}

// repoName extracts the repository name from a remote URL: the last path
// segment with any .git suffix trimmed
func repoName(url string) string {
	parts := strings.Split(url, "/")
	return strings.TrimSuffix(parts[len(parts)-1], ".git")
}
