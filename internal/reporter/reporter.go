package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// Format controls report output format.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// Metadata holds report context.
type Metadata struct {
	Tool      string `json:"tool"`
	Command   string `json:"command"`
	Timestamp string `json:"timestamp"`
}

// Result is what one maintenance run produced.
type Result struct {
	Mode       string
	DryRun     bool
	Statements []string
	Selected   []string
	Skipped    []string
	Changed    bool
}

// Report is the top-level run output.
type Report struct {
	Metadata   Metadata `json:"metadata"`
	Mode       string   `json:"mode"`
	DryRun     bool     `json:"dryRun"`
	Statements []string `json:"statements"`
	Selected   []string `json:"selected"`
	Skipped    []string `json:"skipped"`
	Changed    bool     `json:"changed"`
}

// NewReport builds a report from a run result.
func NewReport(command string, res Result) Report {
	statements := res.Statements
	if statements == nil {
		statements = []string{}
	}
	selected := res.Selected
	if selected == nil {
		selected = []string{}
	}
	skipped := res.Skipped
	if skipped == nil {
		skipped = []string{}
	}

	return Report{
		Metadata: Metadata{
			Tool:      "pgvacuum",
			Command:   command,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		},
		Mode:       res.Mode,
		DryRun:     res.DryRun,
		Statements: statements,
		Selected:   selected,
		Skipped:    skipped,
		Changed:    res.Changed,
	}
}

// Write outputs the report in the given format.
func Write(w io.Writer, report *Report, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, report)
	default:
		return writeText(w, report)
	}
}

func writeJSON(w io.Writer, report *Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func writeText(w io.Writer, report *Report) error {
	if len(report.Statements) == 0 {
		if _, err := fmt.Fprintln(w, "No statements to execute."); err != nil {
			return err
		}
	}
	for _, s := range report.Statements {
		if _, err := fmt.Fprintln(w, s); err != nil {
			return err
		}
	}

	if len(report.Skipped) > 0 {
		_, err := fmt.Fprintf(w, "\nSkipped %d relation(s): %s\n",
			len(report.Skipped), strings.Join(report.Skipped, ", "))
		if err != nil {
			return err
		}
	}

	_, err := fmt.Fprintf(w, "\nResult: %s\n", statusLabel(w, report))
	return err
}

func statusLabel(w io.Writer, report *Report) string {
	status := "unchanged"
	if report.Changed {
		status = "changed"
	}
	if isTTY(w) {
		status = statusColor(report.Changed) + status + colorReset
	}
	if report.DryRun {
		status += " (dry run)"
	}
	return status
}
