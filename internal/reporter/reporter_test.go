package reporter

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

var testResult = Result{
	Mode:       "vacuum",
	Statements: []string{`VACUUM "public"."users"`},
	Selected:   []string{`"public"."users"`},
	Skipped:    []string{`"public"."orders"`},
	Changed:    true,
}

func TestNewReport_Metadata(t *testing.T) {
	r := NewReport("run", testResult)

	if r.Metadata.Tool != "pgvacuum" {
		t.Errorf("tool = %q, want pgvacuum", r.Metadata.Tool)
	}
	if r.Metadata.Command != "run" {
		t.Errorf("command = %q, want run", r.Metadata.Command)
	}
	if r.Metadata.Timestamp == "" {
		t.Error("timestamp should be set")
	}
	if r.Mode != "vacuum" {
		t.Errorf("mode = %q", r.Mode)
	}
	if !r.Changed {
		t.Error("changed should carry through")
	}
}

func TestNewReport_NilSlicesBecomeEmpty(t *testing.T) {
	r := NewReport("run", Result{Mode: "vacuum"})

	if r.Statements == nil || r.Selected == nil || r.Skipped == nil {
		t.Error("nil slices should be normalized for JSON output")
	}
}

func TestWrite_JSON(t *testing.T) {
	r := NewReport("run", testResult)
	var buf bytes.Buffer

	if err := Write(&buf, &r, FormatJSON); err != nil {
		t.Fatal(err)
	}

	var decoded Report
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(decoded.Statements) != 1 || decoded.Statements[0] != `VACUUM "public"."users"` {
		t.Errorf("statements = %v", decoded.Statements)
	}
	if !decoded.Changed {
		t.Error("changed lost in JSON round trip")
	}
}

func TestWrite_Text(t *testing.T) {
	r := NewReport("run", testResult)
	var buf bytes.Buffer

	if err := Write(&buf, &r, FormatText); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, `VACUUM "public"."users"`) {
		t.Errorf("output missing statement: %q", out)
	}
	if !strings.Contains(out, `Skipped 1 relation(s): "public"."orders"`) {
		t.Errorf("output missing skipped list: %q", out)
	}
	if !strings.Contains(out, "Result: changed") {
		t.Errorf("output missing result line: %q", out)
	}
	// Buffer is not a TTY: no escape codes.
	if strings.Contains(out, "\033[") {
		t.Errorf("unexpected ANSI codes in non-TTY output: %q", out)
	}
}

func TestWrite_Text_Unchanged(t *testing.T) {
	r := NewReport("run", Result{Mode: "vacuum", DryRun: true})
	var buf bytes.Buffer

	if err := Write(&buf, &r, FormatText); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "No statements to execute.") {
		t.Errorf("output missing empty notice: %q", out)
	}
	if !strings.Contains(out, "Result: unchanged (dry run)") {
		t.Errorf("output missing dry-run status: %q", out)
	}
}

func TestWrite_DefaultsToText(t *testing.T) {
	r := NewReport("run", testResult)
	var buf bytes.Buffer

	if err := Write(&buf, &r, Format("bogus")); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "{") {
		t.Errorf("unknown format should fall back to text, got %q", buf.String())
	}
}

func TestStatusColor(t *testing.T) {
	if statusColor(true) != colorYellow {
		t.Error("changed should color yellow")
	}
	if statusColor(false) != colorGreen {
		t.Error("unchanged should color green")
	}
}
