package roster

import (
	"fmt"
	"strconv"
	"strings"

	"coachnet/pkg/table"
)

// Role categories that carry a hierarchy level. Only records in these
// categories participate in edge construction; all other roles are retained
// as attributes elsewhere but never paired.
const (
	RoleHeadCoach            = "Head Coach"
	RoleCoordinator          = "Coordinator"
	RolePositionCoachOffense = "Position Coach - Offense"
	RolePositionCoachDefense = "Position Coach - Defense"
	RoleSpecialistCoach      = "Specialist Coach"
)

// hierarchyLevels assigns the total rank per role category used to orient
// supervision edges. Lower level supervises higher level.
var hierarchyLevels = map[string]int{
	RoleHeadCoach:            1,
	RoleCoordinator:          2,
	RolePositionCoachOffense: 3,
	RolePositionCoachDefense: 3,
	RoleSpecialistCoach:      4,
}

// Record is one employment fact: a coach holding a role on a team's staff in
// one season. Records are immutable source facts; many records map to one
// coach.
type Record struct {
	Name            string
	Team            string
	Year            int
	RoleCategory    string
	RoleSubcategory string
	PositionGroup   string
	SideOfBall      string
}

// HierarchyLevel returns the rank of a role category and whether the
// category participates in the hierarchy at all.
func HierarchyLevel(category string) (int, bool) {
	level, ok := hierarchyLevels[category]
	return level, ok
}

// Allowed reports whether the record's role category is hierarchy-bearing.
func (r Record) Allowed() bool {
	_, ok := hierarchyLevels[r.RoleCategory]
	return ok
}

// Pairable reports whether the record can participate in edge construction.
// Records missing identity, role, or side fields are treated as absent from
// their team-season group.
func (r Record) Pairable() bool {
	return r.Name != "" && r.RoleCategory != "" && r.SideOfBall != ""
}

// RoleWeight maps a role to its responsibility weight, used by the offline
// promotion-value rollups. Subcategories override the category default for
// special-teams and specialist-coordinator roles.
func RoleWeight(category, subcategory string) float64 {
	sub := strings.ToLower(subcategory)
	specialTeams := strings.Contains(sub, "special teams")

	switch category {
	case RoleHeadCoach:
		return 1.0
	case RoleCoordinator:
		if specialTeams {
			return 0.6
		}
		if strings.Contains(sub, "passing game") || strings.Contains(sub, "run game") {
			return 0.6
		}
		return 0.8
	case RolePositionCoachOffense, RolePositionCoachDefense:
		if specialTeams {
			return 0.3
		}
		return 0.4
	case RoleSpecialistCoach:
		if specialTeams {
			return 0.1
		}
		return 0.2
	default:
		return 0
	}
}

// Roster column names, one row per (coach, team, season, role).
const (
	ColName            = "Name"
	ColTeam            = "Team"
	ColYear            = "Year"
	ColRoleCategory    = "role_category"
	ColRoleSubcategory = "role_subcategory"
	ColPositionGroup   = "position_group"
	ColSideOfBall      = "side_of_ball"
)

var requiredColumns = []string{ColName, ColTeam, ColYear, ColRoleCategory, ColSideOfBall}

// FromTable converts a roster table into employment records. The required
// columns must be present in the header; individual malformed rows are kept
// (with zero values) so the edge builder can count and exclude them.
func FromTable(t *table.Table) ([]Record, error) {
	for _, col := range requiredColumns {
		if !t.HasColumn(col) {
			return nil, fmt.Errorf("roster table is missing required column %q", col)
		}
	}

	records := make([]Record, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		year, _ := strconv.Atoi(strings.TrimSpace(t.Cell(i, ColYear)))
		records = append(records, Record{
			Name:            strings.TrimSpace(t.Cell(i, ColName)),
			Team:            strings.TrimSpace(t.Cell(i, ColTeam)),
			Year:            year,
			RoleCategory:    strings.TrimSpace(t.Cell(i, ColRoleCategory)),
			RoleSubcategory: strings.TrimSpace(t.Cell(i, ColRoleSubcategory)),
			PositionGroup:   strings.TrimSpace(t.Cell(i, ColPositionGroup)),
			SideOfBall:      strings.TrimSpace(t.Cell(i, ColSideOfBall)),
		})
	}

	return records, nil
}
