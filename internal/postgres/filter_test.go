package postgres

import "testing"

func TestResolveSchemas_Empty(t *testing.T) {
	got := ResolveSchemas(nil)
	if got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestResolveSchemas_All(t *testing.T) {
	for _, input := range []string{"all", "ALL", "*", " all "} {
		got := ResolveSchemas([]string{input})
		if got != nil {
			t.Errorf("ResolveSchemas(%q) = %v, want nil", input, got)
		}
	}
}

func TestResolveSchemas_Specific(t *testing.T) {
	got := ResolveSchemas([]string{"public", "reporting"})
	if len(got) != 2 {
		t.Fatalf("expected 2 schemas, got %d", len(got))
	}
	if got[0] != "public" || got[1] != "reporting" {
		t.Errorf("got %v, want [public reporting]", got)
	}
}

func TestResolveSchemas_SkipsEmpty(t *testing.T) {
	got := ResolveSchemas([]string{"public", "", " ", "app"})
	if len(got) != 2 {
		t.Fatalf("expected 2, got %d: %v", len(got), got)
	}
}

func TestFilterStats_NoFilters(t *testing.T) {
	stats := []RelationStats{{Schema: "public", Name: "users"}}
	got := FilterStats(stats, nil, nil)
	if len(got) != 1 {
		t.Fatalf("expected input unmodified, got %d rows", len(got))
	}
}

func TestFilterStats_ExcludeSchema(t *testing.T) {
	stats := []RelationStats{
		{Schema: "public", Name: "users"},
		{Schema: "reporting", Name: "daily"},
	}
	got := FilterStats(stats, []string{"Reporting"}, nil)
	if len(got) != 1 || got[0].Name != "users" {
		t.Errorf("got %v, want only public.users", got)
	}
}

func TestFilterStats_ExcludeTables(t *testing.T) {
	stats := []RelationStats{
		{Schema: "public", Name: "users"},
		{Schema: "public", Name: "tmp_load"},
		{Schema: "public", Name: "tmp_stage"},
		{Schema: "public", Name: "audit_log"},
	}
	got := FilterStats(stats, nil, []string{"tmp_*", "audit_log"})
	if len(got) != 1 || got[0].Name != "users" {
		t.Errorf("got %v, want only users", got)
	}
}

func TestMatchesAny(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		want     bool
	}{
		{"users", []string{"users"}, true},
		{"Users", []string{"users"}, true},
		{"users", []string{"orders"}, false},
		{"tmp_load", []string{"tmp_*"}, true},
		{"temporary", []string{"tmp_*"}, false},
		{"anything", []string{""}, false},
		{"anything", nil, false},
	}
	for _, tt := range tests {
		if got := matchesAny(tt.name, tt.patterns); got != tt.want {
			t.Errorf("matchesAny(%q, %v) = %v, want %v", tt.name, tt.patterns, got, tt.want)
		}
	}
}
