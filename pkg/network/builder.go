package network

import (
	"strconv"

	"coachnet/pkg/roster"
	"coachnet/pkg/table"
)

// Coach is a node identity derived from the roster: one coach per distinct
// name, with IDs assigned in first-seen order starting at 1.
type Coach struct {
	ID   int
	Name string
}

// HierarchicalEdge is a directed "supervised" relation between two coaches
// within one team-season. The relation is keyed by (from, to, team, year);
// the same pair can recur across seasons as distinct edge instances.
type HierarchicalEdge struct {
	FromCoachID int
	ToCoachID   int
	Team        string
	Year        int
	FromRole    string
	ToRole      string
	FromSide    string
	ToSide      string
}

// CoStaffEdge is a directed relation over every ordered pair of coaches
// sharing a team-season, regardless of hierarchy, carrying both sides' role
// metadata.
type CoStaffEdge struct {
	FromCoachID         int
	ToCoachID           int
	Team                string
	Year                int
	FromRole            string
	FromRoleSubcategory string
	FromPositionGroup   string
	ToRole              string
	ToRoleSubcategory   string
	ToPositionGroup     string
	FromSide            string
	ToSide              string
}

// BuildResult holds the node and edge collections produced from one roster
// snapshot, plus the count of malformed rows that were excluded.
type BuildResult struct {
	Coaches      []Coach
	Hierarchical []HierarchicalEdge
	CoStaff      []CoStaffEdge
	Skipped      int
}

type teamSeason struct {
	team string
	year int
}

// BuildEdges converts roster records into the two edge relations.
//
// Records with a role category outside the hierarchy-bearing set are dropped
// up front. Records missing identity, role, or side fields are excluded from
// pairing and counted in Skipped. Within each (team, year) group every
// ordered pair of rows is evaluated: a hierarchical edge is emitted iff the
// source ranks strictly above the target and is either the Head Coach or on
// the same side of the ball; a co-staff edge is emitted for every ordered
// pair unconditionally, self-pairs included. For n rows a group yields
// exactly n*n co-staff edges; downstream aggregation assumes the dense count.
func BuildEdges(records []roster.Record) BuildResult {
	var result BuildResult

	kept := make([]roster.Record, 0, len(records))
	for _, r := range records {
		if !r.Allowed() {
			continue
		}
		if !r.Pairable() {
			result.Skipped++
			continue
		}
		kept = append(kept, r)
	}

	coachIDs := make(map[string]int, len(kept))
	for _, r := range kept {
		if _, ok := coachIDs[r.Name]; ok {
			continue
		}
		id := len(result.Coaches) + 1
		coachIDs[r.Name] = id
		result.Coaches = append(result.Coaches, Coach{ID: id, Name: r.Name})
	}

	groups := make(map[teamSeason][]roster.Record)
	var groupOrder []teamSeason
	for _, r := range kept {
		key := teamSeason{team: r.Team, year: r.Year}
		if _, ok := groups[key]; !ok {
			groupOrder = append(groupOrder, key)
		}
		groups[key] = append(groups[key], r)
	}

	for _, key := range groupOrder {
		group := groups[key]
		for _, src := range group {
			srcLevel, _ := roster.HierarchyLevel(src.RoleCategory)
			for _, tgt := range group {
				tgtLevel, _ := roster.HierarchyLevel(tgt.RoleCategory)
				if srcLevel < tgtLevel {
					if src.RoleCategory == roster.RoleHeadCoach || src.SideOfBall == tgt.SideOfBall {
						result.Hierarchical = append(result.Hierarchical, HierarchicalEdge{
							FromCoachID: coachIDs[src.Name],
							ToCoachID:   coachIDs[tgt.Name],
							Team:        key.team,
							Year:        key.year,
							FromRole:    src.RoleCategory,
							ToRole:      tgt.RoleCategory,
							FromSide:    src.SideOfBall,
							ToSide:      tgt.SideOfBall,
						})
					}
				}
			}
		}

		for _, src := range group {
			for _, tgt := range group {
				result.CoStaff = append(result.CoStaff, CoStaffEdge{
					FromCoachID:         coachIDs[src.Name],
					ToCoachID:           coachIDs[tgt.Name],
					Team:                key.team,
					Year:                key.year,
					FromRole:            src.RoleCategory,
					FromRoleSubcategory: src.RoleSubcategory,
					FromPositionGroup:   src.PositionGroup,
					ToRole:              tgt.RoleCategory,
					ToRoleSubcategory:   tgt.RoleSubcategory,
					ToPositionGroup:     tgt.PositionGroup,
					FromSide:            src.SideOfBall,
					ToSide:              tgt.SideOfBall,
				})
			}
		}
	}

	return result
}

// NodeTable renders the coaches as a node table in the {coach_id, coach}
// shape the snapshot loader accepts.
func (b BuildResult) NodeTable() *table.Table {
	rows := make([][]string, 0, len(b.Coaches))
	for _, c := range b.Coaches {
		rows = append(rows, []string{strconv.Itoa(c.ID), c.Name})
	}
	return table.New([]string{"coach_id", "coach"}, rows)
}

// HierarchicalTable renders the supervision edges as an edge table in the
// {from, to} shape the snapshot loader accepts.
func (b BuildResult) HierarchicalTable() *table.Table {
	columns := []string{"from", "to", "team", "year", "from_role", "to_role", "from_side", "to_side", "edge_weight", "edge_type"}
	rows := make([][]string, 0, len(b.Hierarchical))
	for _, e := range b.Hierarchical {
		rows = append(rows, []string{
			strconv.Itoa(e.FromCoachID),
			strconv.Itoa(e.ToCoachID),
			e.Team,
			strconv.Itoa(e.Year),
			e.FromRole,
			e.ToRole,
			e.FromSide,
			e.ToSide,
			"1",
			"hierarchical",
		})
	}
	return table.New(columns, rows)
}

// CoStaffTable renders the co-staff edges as an edge table in the {from, to}
// shape the snapshot loader accepts.
func (b BuildResult) CoStaffTable() *table.Table {
	columns := []string{
		"from", "to", "team", "year",
		"from_role", "from_role_subcategory", "from_position_group",
		"to_role", "to_role_subcategory", "to_position_group",
		"from_side", "to_side",
	}
	rows := make([][]string, 0, len(b.CoStaff))
	for _, e := range b.CoStaff {
		rows = append(rows, []string{
			strconv.Itoa(e.FromCoachID),
			strconv.Itoa(e.ToCoachID),
			e.Team,
			strconv.Itoa(e.Year),
			e.FromRole,
			e.FromRoleSubcategory,
			e.FromPositionGroup,
			e.ToRole,
			e.ToRoleSubcategory,
			e.ToPositionGroup,
			e.FromSide,
			e.ToSide,
		})
	}
	return table.New(columns, rows)
}
