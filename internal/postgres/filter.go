package postgres

import "strings"

// ResolveSchemas normalizes and expands schema filter values.
// Empty input means "all non-system schemas" (no filtering).
// "all" or "*" means the same. Otherwise returns the provided schemas.
func ResolveSchemas(schemas []string) []string {
	if len(schemas) == 0 {
		return nil
	}
	for _, s := range schemas {
		lower := strings.ToLower(strings.TrimSpace(s))
		if lower == "all" || lower == "*" {
			return nil
		}
	}
	result := make([]string, 0, len(schemas))
	for _, s := range schemas {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

// FilterStats returns the stats rows whose schema is not excluded and whose
// relation name matches no exclusion pattern. Nil filters return the input
// unmodified.
func FilterStats(stats []RelationStats, excludeSchemas, excludeTables []string) []RelationStats {
	if len(excludeSchemas) == 0 && len(excludeTables) == 0 {
		return stats
	}

	skip := make(map[string]bool, len(excludeSchemas))
	for _, s := range excludeSchemas {
		skip[strings.ToLower(s)] = true
	}

	var filtered []RelationStats
	for i := range stats {
		s := &stats[i]
		if skip[strings.ToLower(s.Schema)] {
			continue
		}
		if matchesAny(s.Name, excludeTables) {
			continue
		}
		filtered = append(filtered, *s)
	}
	return filtered
}

// matchesAny matches a relation name against patterns supporting trailing
// wildcards ("tmp_*").
func matchesAny(name string, patterns []string) bool {
	lower := strings.ToLower(name)
	for _, p := range patterns {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.HasSuffix(p, "*") {
			if strings.HasPrefix(lower, strings.TrimSuffix(p, "*")) {
				return true
			}
			continue
		}
		if p == lower {
			return true
		}
	}
	return false
}
