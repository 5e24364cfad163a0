package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/ppiankov/pgvacuum/internal/postgres"
)

// DefaultSchema qualifies target names given without a schema.
const DefaultSchema = "public"

// Catalog is the read-only existence check the resolver needs.
type Catalog interface {
	RelationExists(ctx context.Context, schema, name string) (bool, error)
}

// ResolveTargets qualifies, quotes, and validates raw relation names.
// Names without a schema get DefaultSchema. Caller order and duplicates are
// preserved so the generated statement is deterministic. Any missing
// relation aborts the run with a TargetNotFoundError.
func ResolveTargets(ctx context.Context, cat Catalog, raw []string) ([]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	resolved := make([]string, 0, len(raw))
	for _, r := range raw {
		schema, name, err := splitQualified(r)
		if err != nil {
			return nil, err
		}

		found, err := cat.RelationExists(ctx, schema, name)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, &TargetNotFoundError{Schema: schema, Name: name}
		}

		resolved = append(resolved, postgres.QuoteQualified(schema, name))
	}
	return resolved, nil
}

// splitQualified splits a raw target into schema and relation name,
// stripping surrounding quotes from each part.
func splitQualified(raw string) (string, string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", fmt.Errorf("empty relation name")
	}

	parts := strings.Split(raw, ".")
	switch len(parts) {
	case 1:
		return DefaultSchema, unquote(parts[0]), nil
	case 2:
		return unquote(parts[0]), unquote(parts[1]), nil
	default:
		return "", "", fmt.Errorf("invalid relation name %q: expected [schema.]name", raw)
	}
}

func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`) {
		s = strings.ReplaceAll(s[1:len(s)-1], `""`, `"`)
	}
	return s
}
