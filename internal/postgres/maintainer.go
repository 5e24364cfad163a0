package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Maintainer runs maintenance statements and reads the catalog metadata
// needed to plan them.
type Maintainer struct {
	pool *pgxpool.Pool
}

// NewMaintainer connects to PostgreSQL with retry and verifies the connection.
func NewMaintainer(ctx context.Context, cfg Config) (*Maintainer, error) {
	return connectWithRetry(ctx, cfg)
}

func newMaintainerOnce(ctx context.Context, cfg Config) (*Maintainer, error) {
	pool, err := pgxpool.New(ctx, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &Maintainer{pool: pool}, nil
}

// Close releases the connection pool.
func (m *Maintainer) Close() {
	m.pool.Close()
}

// ServerVersion returns the PostgreSQL server version string.
func (m *Maintainer) ServerVersion(ctx context.Context) (string, error) {
	var version string
	err := m.pool.QueryRow(ctx, "SHOW server_version").Scan(&version)
	if err != nil {
		return "", fmt.Errorf("server version: %w", err)
	}
	return version, nil
}

// RelationExists reports whether a relation is present in the catalog.
func (m *Maintainer) RelationExists(ctx context.Context, schema, name string) (bool, error) {
	var found bool
	err := m.pool.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = $1 AND table_name = $2
		)`, schema, name).Scan(&found)
	if err != nil {
		return false, fmt.Errorf("check relation %s.%s: %w", schema, name, err)
	}
	return found, nil
}

// FetchStats reads the maintenance statistics snapshot for all user tables.
func (m *Maintainer) FetchStats(ctx context.Context) ([]RelationStats, error) {
	query := `
		SELECT
			schemaname,
			relname,
			COALESCE(n_live_tup, 0),
			COALESCE(n_dead_tup, 0),
			last_vacuum,
			last_autovacuum,
			last_analyze,
			last_autoanalyze,
			COALESCE(vacuum_count, 0),
			COALESCE(autovacuum_count, 0),
			COALESCE(analyze_count, 0),
			COALESCE(autoanalyze_count, 0)
		FROM pg_catalog.pg_stat_user_tables
		ORDER BY schemaname, relname`

	rows, err := m.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer rows.Close()

	var stats []RelationStats
	for rows.Next() {
		var s RelationStats
		if err := rows.Scan(
			&s.Schema, &s.Name,
			&s.LiveTuples, &s.DeadTuples,
			&s.LastVacuum, &s.LastAutovacuum, &s.LastAnalyze, &s.LastAutoanalyze,
			&s.VacuumCount, &s.AutovacuumCount, &s.AnalyzeCount, &s.AutoanalyzeCount,
		); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

// Execute runs a maintenance statement and returns the server's command tag.
// pgxpool executes it on an autocommit connection: VACUUM and ANALYZE cannot
// run inside a transaction block.
func (m *Maintainer) Execute(ctx context.Context, statement string) (string, error) {
	tag, err := m.pool.Exec(ctx, statement)
	if err != nil {
		return "", &ExecError{Statement: statement, Err: err}
	}
	return tag.String(), nil
}

// ExecError reports a maintenance statement rejected or failed by the server.
// The statement is preserved verbatim for the caller.
type ExecError struct {
	Statement string
	Err       error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("execute %q: %v", e.Statement, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}
