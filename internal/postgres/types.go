package postgres

import "time"

// Config holds PostgreSQL connection settings.
type Config struct {
	URL string
}

// RelationStats is one row of the maintenance statistics snapshot, taken
// from pg_stat_user_tables. The four Last* timestamps are nil when the
// server has never recorded the corresponding operation.
type RelationStats struct {
	Schema           string     `json:"schema"`
	Name             string     `json:"name"`
	LiveTuples       int64      `json:"liveTuples"`
	DeadTuples       int64      `json:"deadTuples"`
	LastVacuum       *time.Time `json:"lastVacuum,omitempty"`
	LastAutovacuum   *time.Time `json:"lastAutovacuum,omitempty"`
	LastAnalyze      *time.Time `json:"lastAnalyze,omitempty"`
	LastAutoanalyze  *time.Time `json:"lastAutoanalyze,omitempty"`
	VacuumCount      int64      `json:"vacuumCount"`
	AutovacuumCount  int64      `json:"autovacuumCount"`
	AnalyzeCount     int64      `json:"analyzeCount"`
	AutoanalyzeCount int64      `json:"autoanalyzeCount"`
}

// QualifiedName returns the quoted "schema"."name" form of the relation.
func (s *RelationStats) QualifiedName() string {
	return QuoteQualified(s.Schema, s.Name)
}
