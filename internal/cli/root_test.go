package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/ppiankov/pgvacuum/internal/config"
)

// runCmd executes a CLI command with fresh globals and returns stdout and error.
func runCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	dbURL = ""
	cfg = config.Config{}

	cmd := newRootCmd(BuildInfo{Version: "test", Commit: "abc", Date: "today"})
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRunCmd_FullAndAnalyzeOnly_Rejected(t *testing.T) {
	_, err := runCmd(t, "run", "--full", "--analyze-only")
	if err == nil {
		t.Fatal("expected mutual-exclusion error")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCmd_FullAndSkipPeriod_Rejected(t *testing.T) {
	_, err := runCmd(t, "run", "--full", "--skip-period", "1h")
	if err == nil {
		t.Fatal("expected mutual-exclusion error")
	}
	if !strings.Contains(err.Error(), "mutually exclusive") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCmd_NegativeSkipPeriod_Rejected(t *testing.T) {
	_, err := runCmd(t, "run", "--skip-period", "-5m", "--db-url", "postgres://x")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "must not be negative") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCmd_RequiresDBURL(t *testing.T) {
	_, err := runCmd(t, "run")
	if err == nil {
		t.Fatal("expected missing db-url error")
	}
	if !strings.Contains(err.Error(), "--db-url is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestRunCmd_InvalidDBURL_ErrorIsGraceful(t *testing.T) {
	_, err := runCmd(t, "run", "--db-url", "not-a-url", "--format", "json")
	if err == nil {
		t.Fatal("expected connection error")
	}
	if strings.Contains(err.Error(), "connect: connect:") {
		t.Fatalf("unexpected duplicated prefix: %v", err)
	}
	if !strings.Contains(err.Error(), "connect:") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPingCmd_RequiresDBURL(t *testing.T) {
	_, err := runCmd(t, "ping")
	if err == nil {
		t.Fatal("expected missing db-url error")
	}
	if !strings.Contains(err.Error(), "--db-url is required") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestVersionCmd(t *testing.T) {
	out, err := runCmd(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "pgvacuum test") {
		t.Errorf("version output = %q", out)
	}
}

func TestParseServerVersion(t *testing.T) {
	tests := []struct {
		in    string
		major int
		minor int
	}{
		{"16.4", 16, 4},
		{"16.4 (Debian 16.4-1.pgdg120+1)", 16, 4},
		{"9.6.24", 9, 6},
		{"17devel", 17, 0},
		{"", 0, 0},
	}

	for _, tt := range tests {
		major, minor := parseServerVersion(tt.in)
		if major != tt.major || minor != tt.minor {
			t.Errorf("parseServerVersion(%q) = (%d, %d), want (%d, %d)",
				tt.in, major, minor, tt.major, tt.minor)
		}
	}
}
