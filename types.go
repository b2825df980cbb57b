package main

// Repo is a repository discovered in the remote organization
type Repo struct {
	Name     string
	SSHURL   string
	HTTPSURL string
}

// CloneURL returns the remote URL for the chosen transport
func (r Repo) CloneURL(https bool) string {
	if https {
		return r.HTTPSURL
	}
	return r.SSHURL
}

// Action is what the planner decided to do with a repository
type Action string

const (
	ActionSkip  Action = "skip"
	ActionClone Action = "clone"
	ActionFetch Action = "fetch"
)

// PlannedRepo pairs a repository with its planned action
type PlannedRepo struct {
	Repo   Repo
	Action Action
	Reason string // set for ActionSkip
}

// ReportEntry is the terminal outcome of one planned repository
type ReportEntry struct {
	Name   string
	Action Action
	Reason string
	Err    error // nil means the action succeeded or was skipped
}

// RunReport collects entries in completion order, which may differ from
// plan order when repositories are processed concurrently
type RunReport struct {
	Entries []ReportEntry
}

// Planned returns the total number of planned repositories
func (r RunReport) Planned() int {
	return len(r.Entries)
}

// Counts returns the aggregate outcome counts. They always sum to Planned().
func (r RunReport) Counts() (succeeded, failed, skipped int) {
	for _, e := range r.Entries {
		switch {
		case e.Action == ActionSkip:
			skipped++
		case e.Err != nil:
			failed++
		default:
			succeeded++
		}
	}
	return succeeded, failed, skipped
}

// Status is the process-level result of a run
type Status int

const (
	// StatusSuccess means every non-skipped repository succeeded.
	StatusSuccess Status = iota
	// StatusPartialFailure means at least one repository failed.
	StatusPartialFailure
	// StatusFailure means discovery failed and nothing ran.
	StatusFailure
)
