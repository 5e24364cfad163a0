package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/ppiankov/pgvacuum/internal/config"
	"github.com/ppiankov/pgvacuum/internal/logging"
	"github.com/spf13/cobra"
)

var (
	dbURL   string
	verbose bool
	cfg     config.Config
)

// BuildInfo identifies the binary.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// ExitError carries a specific process exit code out of Execute.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

func newRootCmd(info BuildInfo) *cobra.Command {
	root := &cobra.Command{
		Use:          "pgvacuum",
		Short:        "PostgreSQL VACUUM/ANALYZE runner with skip-period awareness",
		Long:         "Runs VACUUM, VACUUM FULL, or ANALYZE against a PostgreSQL database, skipping relations that were already maintained within a configurable period.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Init(verbose, cmd.ErrOrStderr())

			cwd, err := os.Getwd()
			if err != nil {
				cwd = "."
			}
			cfg, err = config.Load(cwd)
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			slog.Debug("config loaded", "path", cwd)

			// Apply config defaults if flags not explicitly set
			if dbURL == "" {
				if envURL := os.Getenv("PGVACUUM_DB_URL"); envURL != "" {
					dbURL = envURL
				} else if cfg.DBURL != "" {
					dbURL = cfg.DBURL
				}
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dbURL, "db-url", "", "PostgreSQL connection URL (or set PGVACUUM_DB_URL)")
	root.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug-level logging")

	root.AddCommand(newVersionCmd(info))
	root.AddCommand(newRunCmd())
	root.AddCommand(newPingCmd())

	return root
}

func newVersionCmd(info BuildInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "pgvacuum %s (commit %s, built %s)\n",
				info.Version, info.Commit, info.Date)
		},
	}
}

// Execute runs the root command.
func Execute(info BuildInfo) error {
	return newRootCmd(info).Execute()
}
