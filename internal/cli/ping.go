package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ppiankov/pgvacuum/internal/postgres"
	"github.com/spf13/cobra"
)

// pingStatus reports server availability and version.
type pingStatus struct {
	Available     bool   `json:"available"`
	ServerVersion string `json:"serverVersion,omitempty"`
	Major         int    `json:"major,omitempty"`
	Minor         int    `json:"minor,omitempty"`
}

func newPingCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "ping",
		Short: "Check server availability and report its version",
		RunE: func(cmd *cobra.Command, args []string) error {
			if dbURL == "" {
				return fmt.Errorf("--db-url is required (or set PGVACUUM_DB_URL)")
			}
			if !cmd.Flags().Changed("format") && cfg.Defaults.Format != "" {
				format = cfg.Defaults.Format
			}

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.TimeoutDuration())
			defer cancel()

			var status pingStatus

			m, err := postgres.NewMaintainer(ctx, postgres.Config{URL: dbURL})
			if err != nil {
				slog.Debug("ping failed", "error", err)
				if werr := writePing(cmd.OutOrStdout(), &status, format); werr != nil {
					return werr
				}
				// An unreachable server is a reported state, not a command
				// failure; the exit code still flags it for scripts.
				return &ExitError{Code: 1, Message: "server unreachable"}
			}
			defer m.Close()

			ver, err := m.ServerVersion(ctx)
			if err != nil {
				slog.Debug("ping failed", "error", err)
				if werr := writePing(cmd.OutOrStdout(), &status, format); werr != nil {
					return werr
				}
				return &ExitError{Code: 1, Message: "server unreachable"}
			}

			status.Available = true
			status.ServerVersion = ver
			status.Major, status.Minor = parseServerVersion(ver)

			return writePing(cmd.OutOrStdout(), &status, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")

	return cmd
}

func writePing(w io.Writer, status *pingStatus, format string) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(status)
	}

	if !status.Available {
		_, err := fmt.Fprintln(w, "server unavailable")
		return err
	}
	_, err := fmt.Fprintf(w, "server available, version %s (major=%d minor=%d)\n",
		status.ServerVersion, status.Major, status.Minor)
	return err
}

// parseServerVersion extracts major and minor numbers from a server version
// string such as "16.4" or "16.4 (Debian 16.4-1)". Development versions like
// "17devel" yield whatever leading digits are present.
func parseServerVersion(ver string) (int, int) {
	fields := strings.Fields(ver)
	if len(fields) == 0 {
		return 0, 0
	}

	parts := strings.Split(fields[0], ".")
	major := leadingInt(parts[0])
	minor := 0
	if len(parts) > 1 {
		minor = leadingInt(parts[1])
	}
	return major, minor
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}
