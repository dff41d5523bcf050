package main

import (
	"flag"
	"os"
	"path/filepath"

	"coachnet/pkg/logger"
	"coachnet/pkg/logger/console"
	"coachnet/pkg/network"
	"coachnet/pkg/roster"
	"coachnet/pkg/table"
)

// convert turns a raw roster CSV into the node and edge tables the server
// loads: nodes.csv, edges_hierarchical.csv, edges_costaff.csv.
func main() {
	rosterPath := flag.String("roster", "data/roster.csv", "path to the roster CSV")
	outDir := flag.String("out", "data", "directory to write the converted tables into")
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
	logger.Info(
		"Built edge tables",
		"coaches", len(build.Coaches),
		"hierarchical_edges", len(build.Hierarchical),
		"costaff_edges", len(build.CoStaff),
	)

	writeTable(filepath.Join(*outDir, "nodes.csv"), build.NodeTable())
	writeTable(filepath.Join(*outDir, "edges_hierarchical.csv"), build.HierarchicalTable())
	writeTable(filepath.Join(*outDir, "edges_costaff.csv"), build.CoStaffTable())
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
