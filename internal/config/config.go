package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Source kinds for dataset table files.
const (
	SourceFS = "fs"
	SourceS3 = "s3"
)

// Roster source kinds.
const (
	RosterCSV      = "csv"
	RosterPostgres = "postgres"
)

// Config is the dataset manifest: where the table files live and which of
// them this deployment ships. Server-level settings (port, debug, database
// and S3 credentials) stay in the environment.
type Config struct {
	Source  string            `yaml:"source"`
	DataDir string            `yaml:"data_dir"`
	Roster  RosterConfig      `yaml:"roster"`
	Tables  TablesConfig      `yaml:"tables"`
	Annot   AnnotationsConfig `yaml:"annotations"`
}

// RosterConfig names the roster source. File is the CSV export path relative
// to DataDir; ignored for the postgres source.
type RosterConfig struct {
	Source string `yaml:"source"`
	File   string `yaml:"file"`
}

// TablesConfig names prebuilt node/edge tables. When both are set the
// snapshot is loaded from them directly; otherwise it is built from the
// roster.
type TablesConfig struct {
	Nodes string `yaml:"nodes"`
	Edges string `yaml:"edges"`
}

// AnnotationsConfig names the optional pass-through annotation tables.
type AnnotationsConfig struct {
	Centrality        string `yaml:"centrality"`
	Influence         string `yaml:"influence"`
	CommunitySummary  string `yaml:"community_summary"`
	DownstreamByYear  string `yaml:"downstream_by_year"`
	DownstreamOverall string `yaml:"downstream_overall"`
}

// Default returns the manifest used when no file is given: filesystem tables
// under ./data, roster from CSV.
func Default() *Config {
	return &Config{
		Source:  SourceFS,
		DataDir: "data",
		Roster: RosterConfig{
			Source: RosterCSV,
			File:   "roster.csv",
		},
	}
}

// Load reads a manifest file, applying defaults for omitted fields.
func Load(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(content, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %q: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Source {
	case SourceFS, SourceS3:
	default:
		return fmt.Errorf("source must be %q or %q, got %q", SourceFS, SourceS3, c.Source)
	}

	switch c.Roster.Source {
	case RosterCSV, RosterPostgres:
	default:
		return fmt.Errorf("roster source must be %q or %q, got %q", RosterCSV, RosterPostgres, c.Roster.Source)
	}

	if (c.Tables.Nodes == "") != (c.Tables.Edges == "") {
		return fmt.Errorf("tables.nodes and tables.edges must be set together")
	}
	return nil
}

// HasPrebuiltTables reports whether the manifest names node and edge tables
// to load directly.
func (c *Config) HasPrebuiltTables() bool {
	return c.Tables.Nodes != "" && c.Tables.Edges != ""
}
