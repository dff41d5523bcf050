// Package dataset assembles one immutable dataset at startup: it fetches the
// configured tables, builds the graph snapshot, and attaches the annotation
// set. There is no reload path; a new dataset means a new process.
package dataset

import (
	"context"
	"fmt"
	"path"

	"coachnet/internal/config"
	"coachnet/internal/storage"
	"coachnet/internal/util"
	"coachnet/pkg/annotations"
	"coachnet/pkg/loader"
	csvloader "coachnet/pkg/loader/csv"
	ioloader "coachnet/pkg/loader/io"
	s3loader "coachnet/pkg/loader/s3"
	"coachnet/pkg/logger"
	"coachnet/pkg/network"
	"coachnet/pkg/store"
	pgstore "coachnet/pkg/store/pgx"
	"coachnet/pkg/table"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
)

// Dataset is everything the server exposes: the snapshot and the annotation
// tables, read-only for the process lifetime.
type Dataset struct {
	Snapshot    *network.Snapshot
	Annotations *annotations.Set
}

// Load builds the dataset described by the manifest. Table fetches run
// concurrently; any fetch or schema failure aborts the load.
func Load(ctx context.Context, cfg *config.Config) (*Dataset, error) {
	base, err := baseLoader(ctx, cfg)
	if err != nil {
		return nil, err
	}
	csv := csvloader.NewCSVTableLoader(base)

	file := func(id, name string) loader.TableFile {
		return loader.TableFile{
			ID:       id,
			FilePath: path.Join(cfg.DataDir, name),
			Loader:   base,
		}
	}

	var nodes, edges *table.Table
	if cfg.HasPrebuiltTables() {
		eg, gCtx := errgroup.WithContext(ctx)
		eg.Go(func() error {
			var err error
			nodes, err = csv.GetTable(gCtx, file("nodes", cfg.Tables.Nodes))
			return err
		})
		eg.Go(func() error {
			var err error
			edges, err = csv.GetTable(gCtx, file("edges", cfg.Tables.Edges))
			return err
		})
		if err := eg.Wait(); err != nil {
			return nil, fmt.Errorf("failed to fetch graph tables: %w", err)
		}
	} else {
		source, err := rosterSource(ctx, cfg, csv, file)
		if err != nil {
			return nil, err
		}
		records, err := source.GetRoster(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load roster: %w", err)
		}

		build := network.BuildEdges(records)
		if build.Skipped > 0 {
			logger.Warn("Excluded malformed roster rows from edge construction", "count", build.Skipped)
		}
		logger.Info("Built edges from roster",
			"coaches", len(build.Coaches),
			"hierarchical", len(build.Hierarchical),
			"costaff", len(build.CoStaff),
		)
		nodes = build.NodeTable()
		edges = build.HierarchicalTable()
	}

	snap, err := network.Load(nodes, edges)
	if err != nil {
		return nil, err
	}
	logger.Info("Graph snapshot loaded",
		"snapshot_id", snap.ID(),
		"nodes", snap.NodeCount(),
		"edges", snap.EdgeCount(),
	)

	annot, err := loadAnnotations(ctx, cfg, csv, file)
	if err != nil {
		return nil, err
	}
	warnings, err := annot.Validate(snap)
	if err != nil {
		return nil, fmt.Errorf("failed to validate annotations: %w", err)
	}
	for _, w := range warnings {
		logger.Warn("Annotation join-key mismatch", "detail", w)
	}

	return &Dataset{
		Snapshot:    snap,
		Annotations: annot,
	}, nil
}

func baseLoader(ctx context.Context, cfg *config.Config) (loader.TableFileLoader, error) {
	switch cfg.Source {
	case config.SourceS3:
		client := storage.NewS3Client(ctx)
		if client == nil {
			return nil, fmt.Errorf("failed to build S3 client from environment")
		}
		bucket := util.GetEnv("AWS_BUCKET")
		if bucket == "" {
			return nil, fmt.Errorf("AWS_BUCKET must be set for the s3 source")
		}
		return s3loader.NewS3TableFileLoaderWithClient(bucket, client), nil
	default:
		return ioloader.NewIOTableFileLoader(), nil
	}
}

func rosterSource(
	ctx context.Context,
	cfg *config.Config,
	csv *csvloader.CSVTableLoader,
	file func(id, name string) loader.TableFile,
) (store.RosterSource, error) {
	switch cfg.Roster.Source {
	case config.RosterPostgres:
		databaseURL := util.GetEnv("DATABASE_URL")
		if databaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL must be set for the postgres roster source")
		}

		if migrations := util.GetEnvString("MIGRATIONS_PATH", "migrations"); migrations != "" {
			if err := pgstore.Migrate(migrations, databaseURL); err != nil {
				return nil, err
			}
		}

		conn, err := pgxpool.New(ctx, databaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return pgstore.New(conn), nil
	default:
		return store.NewCSVRosterSource(csv, file("roster", cfg.Roster.File)), nil
	}
}

func loadAnnotations(
	ctx context.Context,
	cfg *config.Config,
	csv *csvloader.CSVTableLoader,
	file func(id, name string) loader.TableFile,
) (*annotations.Set, error) {
	set := &annotations.Set{}

	targets := []struct {
		id   string
		name string
		dest **table.Table
	}{
		{"centrality", cfg.Annot.Centrality, &set.Centrality},
		{"influence", cfg.Annot.Influence, &set.Influence},
		{"community_summary", cfg.Annot.CommunitySummary, &set.CommunitySummary},
		{"downstream_by_year", cfg.Annot.DownstreamByYear, &set.DownstreamByYear},
		{"downstream_overall", cfg.Annot.DownstreamOverall, &set.DownstreamOverall},
	}

	eg, gCtx := errgroup.WithContext(ctx)
	for _, target := range targets {
		if target.name == "" {
			continue
		}
		t := target
		eg.Go(func() error {
			parsed, err := csv.GetTable(gCtx, file(t.id, t.name))
			if err != nil {
				return fmt.Errorf("failed to fetch %s table: %w", t.id, err)
			}
			*t.dest = parsed
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return set, nil
}
