// Package annotations carries the precomputed analysis tables the explorer
// displays next to the graph: centrality and influence scores, community
// summaries, and downstream promotion-value rollups. The tables are produced
// offline; this package never recomputes them, it only checks that their join
// keys line up with the loaded snapshot and serves rows verbatim.
package annotations

import (
	"fmt"

	"coachnet/pkg/network"
	"coachnet/pkg/table"
)

// Set holds the annotation tables for one dataset. Any table may be nil when
// the deployment does not ship it; nil tables are skipped everywhere.
type Set struct {
	Centrality        *table.Table
	Influence         *table.Table
	CommunitySummary  *table.Table
	DownstreamByYear  *table.Table
	DownstreamOverall *table.Table
}

// coachKeyColumns lists accepted join-key columns for coach-keyed tables, in
// precedence order.
var coachKeyColumns = []string{"coach_id", "from_coach_id"}

// Validate checks every loaded table's join key against the snapshot's
// identities and returns one warning per table with unmatched rows. Unmatched
// rows are a data-quality signal, not a failure: the rows still get served.
// A loaded table without a recognizable key column is an error.
func (a *Set) Validate(snap *network.Snapshot) ([]string, error) {
	var warnings []string

	coachTables := []struct {
		name string
		t    *table.Table
	}{
		{"centrality", a.Centrality},
		{"influence", a.Influence},
		{"downstream_by_year", a.DownstreamByYear},
		{"downstream_overall", a.DownstreamOverall},
	}

	for _, ct := range coachTables {
		if ct.t == nil {
			continue
		}
		keyCol := ""
		for _, col := range coachKeyColumns {
			if ct.t.HasColumn(col) {
				keyCol = col
				break
			}
		}
		if keyCol == "" {
			return nil, fmt.Errorf("%s table has no coach join key, have columns %v", ct.name, ct.t.Columns())
		}

		unmatched := 0
		for i := 0; i < ct.t.Len(); i++ {
			if !snap.HasNode(ct.t.Cell(i, keyCol)) {
				unmatched++
			}
		}
		if unmatched > 0 {
			warnings = append(warnings, fmt.Sprintf("%s: %d rows reference coach ids unknown to the snapshot", ct.name, unmatched))
		}
	}

	if a.CommunitySummary != nil {
		if !a.CommunitySummary.HasColumn("community") {
			return nil, fmt.Errorf("community summary table has no 'community' column, have %v", a.CommunitySummary.Columns())
		}
		known := make(map[string]struct{})
		for _, c := range snap.Communities() {
			known[c] = struct{}{}
		}
		unmatched := 0
		for i := 0; i < a.CommunitySummary.Len(); i++ {
			if _, ok := known[a.CommunitySummary.Cell(i, "community")]; !ok {
				unmatched++
			}
		}
		if unmatched > 0 {
			warnings = append(warnings, fmt.Sprintf("community_summary: %d rows reference communities unknown to the snapshot", unmatched))
		}
	}

	return warnings, nil
}

// CommunitySummaryRow returns the summary row for one community value.
func (a *Set) CommunitySummaryRow(community string) (map[string]string, bool) {
	if a.CommunitySummary == nil {
		return nil, false
	}
	for i := 0; i < a.CommunitySummary.Len(); i++ {
		if a.CommunitySummary.Cell(i, "community") == community {
			return a.CommunitySummary.Row(i), true
		}
	}
	return nil, false
}

// Rows flattens a table into row maps for JSON responses. A nil table yields
// an empty slice.
func Rows(t *table.Table) []map[string]string {
	if t == nil {
		return []map[string]string{}
	}
	rows := make([]map[string]string, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		rows = append(rows, t.Row(i))
	}
	return rows
}
