package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ppiankov/pgvacuum/internal/planner"
	"github.com/ppiankov/pgvacuum/internal/postgres"
	"github.com/ppiankov/pgvacuum/internal/reporter"
	"github.com/spf13/cobra"
)

func newRunCmd() *cobra.Command {
	var (
		tables      []string
		skipPeriod  time.Duration
		analyzeOnly bool
		full        bool
		extraArgs   string
		dryRun      bool
		format      string
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run VACUUM / VACUUM FULL / ANALYZE, optionally skipping recently maintained relations",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Option-combination violations are rejected before any store
			// interaction.
			if full && analyzeOnly {
				return fmt.Errorf("--full and --analyze-only are mutually exclusive")
			}
			if !full && !cmd.Flags().Changed("skip-period") {
				if d := cfg.SkipPeriodDuration(); d > 0 {
					skipPeriod = d
				}
			}
			if full && skipPeriod > 0 {
				return fmt.Errorf("--full and --skip-period are mutually exclusive: full maintenance always runs")
			}
			if skipPeriod < 0 {
				return fmt.Errorf("--skip-period must not be negative")
			}
			if dbURL == "" {
				return fmt.Errorf("--db-url is required (or set PGVACUUM_DB_URL)")
			}

			if !cmd.Flags().Changed("format") && cfg.Defaults.Format != "" {
				format = cfg.Defaults.Format
			}

			mode := planner.ModeVacuum
			switch {
			case analyzeOnly:
				mode = planner.ModeAnalyzeOnly
			case full:
				mode = planner.ModeVacuumFull
			}

			// The timeout covers connection and planning only; the
			// maintenance statement itself may legitimately run for a long
			// time and executes under the command context.
			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.TimeoutDuration())
			defer cancel()

			// NewMaintainer already prefixes connection errors.
			m, err := postgres.NewMaintainer(ctx, postgres.Config{URL: dbURL})
			if err != nil {
				return err
			}
			defer m.Close()

			ver, err := m.ServerVersion(ctx)
			if err != nil {
				return fmt.Errorf("server version: %w", err)
			}
			slog.Info("connected", "version", ver)

			targets, err := planner.ResolveTargets(ctx, m, tables)
			if err != nil {
				return err
			}

			stats, err := m.FetchStats(ctx)
			if err != nil {
				return err
			}
			slog.Info("snapshot fetched", "relations", len(stats))

			// Config exclusions narrow candidacy only for whole-database
			// runs; explicitly named targets are always honored.
			if len(targets) == 0 {
				stats = postgres.FilterStats(stats,
					postgres.ResolveSchemas(cfg.Exclude.Schemas), cfg.Exclude.Tables)
			}

			dec := planner.Plan(planner.Request{
				Targets:    targets,
				Mode:       mode,
				SkipPeriod: skipPeriod,
				ExtraArgs:  extraArgs,
				DryRun:     dryRun,
			}, stats, time.Now())

			res := reporter.Result{
				Mode:     string(mode),
				DryRun:   dryRun,
				Selected: dec.Selected,
				Skipped:  dec.Skipped,
			}

			switch {
			case dryRun:
				res.Statements = []string{dec.Statement}
				res.Changed = dec.WouldChange
				slog.Debug("dry run", "statement", dec.Statement, "would_change", dec.WouldChange)
			case dec.NothingToDo:
				slog.Info("nothing to do: all requested relations were skipped",
					"skipped", len(dec.Skipped))
			default:
				tag, err := m.Execute(cmd.Context(), dec.Statement)
				if err != nil {
					return err
				}
				slog.Info("executed", "statement", dec.Statement, "tag", tag)
				res.Statements = []string{dec.Statement}
				res.Changed = true
			}

			report := reporter.NewReport("run", res)
			return reporter.Write(cmd.OutOrStdout(), &report, reporter.Format(format))
		},
	}

	cmd.Flags().StringSliceVar(&tables, "tables", nil, "relation names to maintain (default: whole database); unqualified names assume schema public")
	cmd.Flags().DurationVar(&skipPeriod, "skip-period", 0, "skip relations maintained within this period, e.g. 1h or 3600s (not valid with --full)")
	cmd.Flags().BoolVar(&analyzeOnly, "analyze-only", false, "only update planner statistics, no vacuum")
	cmd.Flags().BoolVar(&full, "full", false, "rebuild relations with VACUUM FULL (locks tables, always runs)")
	cmd.Flags().StringVar(&extraArgs, "extra-args", "", "additional arguments appended verbatim, e.g. \"analyze\" or \"freeze\"")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "compose and report the statement without executing it")
	cmd.Flags().StringVar(&format, "format", "text", "output format: text or json")

	return cmd
}
