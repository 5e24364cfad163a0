package postgres

import "github.com/jackc/pgx/v5"

// QuoteQualified returns the quoted, dot-joined form of a schema-qualified
// relation name, e.g. ("public", "my table") -> "public"."my table".
// Embedded double quotes are doubled per PostgreSQL identifier rules.
func QuoteQualified(schema, name string) string {
	return pgx.Identifier{schema, name}.Sanitize()
}
