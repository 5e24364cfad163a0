package planner

import (
	"strings"
	"time"

	"github.com/ppiankov/pgvacuum/internal/postgres"
)

// Plan evaluates a maintenance request against a statistics snapshot.
// Pure function: now is an argument so decisions are reproducible in tests.
func Plan(req Request, stats []postgres.RelationStats, now time.Time) Decision {
	// Full maintenance always runs; the skip filter never applies to it.
	applySkip := req.Mode != ModeVacuumFull && req.SkipPeriod > 0
	threshold := now.Add(-req.SkipPeriod)

	byName := make(map[string]*postgres.RelationStats, len(stats))
	for i := range stats {
		byName[stats[i].QualifiedName()] = &stats[i]
	}

	var dec Decision
	eligible := 0

	if len(req.Targets) > 0 {
		for _, tgt := range req.Targets {
			s, ok := byName[tgt]
			if !ok {
				// No stats row: recency cannot be evaluated, never selected.
				dec.Skipped = append(dec.Skipped, tgt)
				continue
			}
			if applySkip && !due(s, req.Mode, threshold) {
				dec.Skipped = append(dec.Skipped, tgt)
				continue
			}
			dec.Selected = append(dec.Selected, tgt)
			eligible++
		}
		dec.NothingToDo = len(dec.Selected) == 0
	} else {
		// Whole-database run: the statement carries no target list, but the
		// filter still evaluates every relation for the preview answer.
		for i := range stats {
			s := &stats[i]
			if applySkip && !due(s, req.Mode, threshold) {
				dec.Skipped = append(dec.Skipped, s.QualifiedName())
				continue
			}
			eligible++
		}
	}

	dec.Statement = Compose(req.Mode, req.ExtraArgs, dec.Selected)

	// Without a skip period a maintenance request always counts as a
	// state-changing operation in preview; with one, only when the filter
	// actually found work.
	if dec.NothingToDo {
		dec.WouldChange = false
	} else if applySkip {
		dec.WouldChange = eligible > 0
	} else {
		dec.WouldChange = true
	}

	return dec
}

// due reports whether a relation should be processed: true when either the
// manual or the auto timestamp of the mode's operation is strictly older
// than the threshold. Absent timestamps count as epoch zero, so a relation
// never processed is always due. Skipped only when both recorded timestamps
// are at or after the threshold.
func due(s *postgres.RelationStats, mode Mode, threshold time.Time) bool {
	var last, lastAuto time.Time
	if mode == ModeAnalyzeOnly {
		if s.LastAnalyze != nil {
			last = *s.LastAnalyze
		}
		if s.LastAutoanalyze != nil {
			lastAuto = *s.LastAutoanalyze
		}
	} else {
		if s.LastVacuum != nil {
			last = *s.LastVacuum
		}
		if s.LastAutovacuum != nil {
			lastAuto = *s.LastAutovacuum
		}
	}
	return threshold.After(last) || threshold.After(lastAuto)
}

// Compose assembles the maintenance statement: mode keyword, extra arguments
// verbatim, then the comma-joined target list. Deterministic for identical
// inputs; performs no quoting of its own.
func Compose(mode Mode, extraArgs string, targets []string) string {
	tokens := []string{mode.Keyword()}
	if extraArgs != "" {
		tokens = append(tokens, extraArgs)
	}
	if len(targets) > 0 {
		tokens = append(tokens, strings.Join(targets, ", "))
	}
	return strings.Join(tokens, " ")
}
