// Package store defines where roster rows come from. The scraper pipeline is
// a separate system; it either publishes CSV exports (fetched through the
// loader) or lands rows in Postgres. Both sources are best-effort complete:
// missing team-seasons are expected and never an error here.
package store

import (
	"context"

	"coachnet/pkg/loader"
	csvloader "coachnet/pkg/loader/csv"
	"coachnet/pkg/roster"
)

// RosterSource supplies the employment records a graph snapshot is built
// from.
type RosterSource interface {
	GetRoster(ctx context.Context) ([]roster.Record, error)
}

// CSVRosterSource reads the roster from a CSV export through the table
// loader chain.
type CSVRosterSource struct {
	csv  *csvloader.CSVTableLoader
	file loader.TableFile
}

// NewCSVRosterSource creates a roster source over one CSV table file.
func NewCSVRosterSource(csv *csvloader.CSVTableLoader, file loader.TableFile) *CSVRosterSource {
	return &CSVRosterSource{
		csv:  csv,
		file: file,
	}
}

// GetRoster fetches and parses the roster table.
func (s *CSVRosterSource) GetRoster(ctx context.Context) ([]roster.Record, error) {
	t, err := s.csv.GetTable(ctx, s.file)
	if err != nil {
		return nil, err
	}
	return roster.FromTable(t)
}
