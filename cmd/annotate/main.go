package main

import (
	"flag"
	"os"
	"path/filepath"

	"coachnet/pkg/analysis"
	"coachnet/pkg/logger"
	"coachnet/pkg/logger/console"
	"coachnet/pkg/network"
	"coachnet/pkg/roster"
	"coachnet/pkg/table"
)

// annotate builds the graph from a roster CSV and writes the precomputed
// analysis tables the server serves verbatim: influence scores, community
// summaries, and the downstream promotion-value rollups. It also rewrites the
// node table with the community assignment attached so the snapshot can facet
// by community.
func main() {
	rosterPath := flag.String("roster", "data/roster.csv", "path to the roster CSV")
	outDir := flag.String("out", "data", "directory to write the annotation tables into")
	resolution := flag.Float64("resolution", 1.0, "Louvain modularity resolution")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	consoleLogger := console.NewConsoleLogger(console.ConsoleLoggerParams{
		Debug: *debug,
	})
	logger.Init(consoleLogger)

	content, err := os.ReadFile(*rosterPath)
	if err != nil {
		logger.Fatal("Failed to read roster file", "path", *rosterPath, "err", err)
	}

	t, err := table.Parse(content)
	if err != nil {
		logger.Fatal("Failed to parse roster file", "path", *rosterPath, "err", err)
	}

	records, err := roster.FromTable(t)
	if err != nil {
		logger.Fatal("Roster table is not usable", "err", err)
	}

	build := network.BuildEdges(records)
	if build.Skipped > 0 {
		logger.Warn("Skipped malformed roster rows", "count", build.Skipped)
	}

	snap, err := network.Load(build.NodeTable(), build.HierarchicalTable())
	if err != nil {
		logger.Fatal("Failed to load graph snapshot", "err", err)
	}
	logger.Info("Loaded snapshot", "nodes", snap.NodeCount(), "edges", snap.EdgeCount())

	communities := analysis.Communities(snap, *resolution)
	logger.Info("Detected communities", "resolution", *resolution)

	values := analysis.PromotionValues(records, build)
	scores := analysis.Influence(snap, func(e network.Edge) float64 {
		return values[analysis.EdgeKey{From: e.From, To: e.To, Team: e.Team, Year: e.Year}]
	})
	logger.Info("Computed influence scores")

	writeTable(filepath.Join(*outDir, "nodes.csv"), analysis.NodeTableWithCommunities(build, communities))
	writeTable(filepath.Join(*outDir, "influence.csv"), analysis.InfluenceTable(build, records, scores))
	writeTable(filepath.Join(*outDir, "community_summary.csv"), analysis.CommunitySummary(records, build, communities))
	writeTable(filepath.Join(*outDir, "downstream_by_year.csv"), analysis.DownstreamByYear(records, build, communities))
	writeTable(filepath.Join(*outDir, "downstream_overall.csv"), analysis.DownstreamOverall(records, build, communities))
}

func writeTable(path string, t *table.Table) {
	f, err := os.Create(path)
	if err != nil {
		logger.Fatal("Failed to create output file", "path", path, "err", err)
	}
	defer f.Close()

	if err := t.Write(f); err != nil {
		logger.Fatal("Failed to write table", "path", path, "err", err)
	}
	logger.Info("Wrote table", "path", path, "rows", t.Len())
}
