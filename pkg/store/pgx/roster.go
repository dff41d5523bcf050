package pgx

import (
	"context"
	"fmt"

	"coachnet/pkg/roster"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RosterStore reads roster rows from Postgres, for deployments where the
// scraper writes into a database instead of CSV exports.
type RosterStore struct {
	conn *pgxpool.Pool
}

// New creates a RosterStore over an existing connection pool.
func New(conn *pgxpool.Pool) *RosterStore {
	return &RosterStore{conn: conn}
}

const selectRoster = `
SELECT
	COALESCE(name, ''),
	COALESCE(team, ''),
	COALESCE(year, 0),
	COALESCE(role_category, ''),
	COALESCE(role_subcategory, ''),
	COALESCE(position_group, ''),
	COALESCE(side_of_ball, '')
FROM roster_entries
ORDER BY year, team, name
`

// GetRoster loads every roster row. Rows with missing fields come back with
// zero values; the edge builder excludes and counts them.
func (s *RosterStore) GetRoster(ctx context.Context) ([]roster.Record, error) {
	rows, err := s.conn.Query(ctx, selectRoster)
	if err != nil {
		return nil, fmt.Errorf("failed to query roster entries: %w", err)
	}
	defer rows.Close()

	var records []roster.Record
	for rows.Next() {
		var r roster.Record
		err := rows.Scan(
			&r.Name,
			&r.Team,
			&r.Year,
			&r.RoleCategory,
			&r.RoleSubcategory,
			&r.PositionGroup,
			&r.SideOfBall,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan roster entry: %w", err)
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read roster entries: %w", err)
	}

	return records, nil
}
