package planner

import (
	"fmt"
	"time"
)

// Mode selects which maintenance operation runs.
type Mode string

const (
	ModeVacuum      Mode = "vacuum"
	ModeVacuumFull  Mode = "full"
	ModeAnalyzeOnly Mode = "analyze-only"
)

// Keyword returns the SQL keyword form of the mode.
func (m Mode) Keyword() string {
	switch m {
	case ModeVacuumFull:
		return "VACUUM FULL"
	case ModeAnalyzeOnly:
		return "ANALYZE"
	default:
		return "VACUUM"
	}
}

// Request is the caller's intent for one maintenance run.
type Request struct {
	// Targets holds resolved, quoted "schema"."name" identifiers in caller
	// order, duplicates preserved. Empty means the whole database.
	Targets []string
	Mode    Mode
	// SkipPeriod skips relations processed within this duration before now.
	// Zero means no skip filtering. Never combined with ModeVacuumFull.
	SkipPeriod time.Duration
	// ExtraArgs is appended verbatim after the mode keyword, e.g. "analyze"
	// or "freeze".
	ExtraArgs string
	DryRun    bool
}

// Decision is the outcome of planning one request.
type Decision struct {
	// Selected lists the quoted relation names the statement will reference.
	// Empty with no explicit targets means the statement covers the whole
	// database.
	Selected []string
	// Skipped lists relations excluded by the skip-period filter or absent
	// from the statistics snapshot.
	Skipped []string
	// Statement is the composed maintenance statement.
	Statement string
	// WouldChange is the preview answer: whether executing the plan would do
	// any work. On a real run the executor outcome supersedes it.
	WouldChange bool
	// NothingToDo is set when explicit targets were requested but none
	// survived resolution and filtering. The statement must not be executed:
	// an empty explicit list never falls back to the whole database.
	NothingToDo bool
}

// TargetNotFoundError reports an explicitly named relation missing from the
// catalog. The whole run fails; there is no partial maintenance.
type TargetNotFoundError struct {
	Schema string
	Name   string
}

func (e *TargetNotFoundError) Error() string {
	return fmt.Sprintf("table %s in schema %s does not exist", e.Name, e.Schema)
}
