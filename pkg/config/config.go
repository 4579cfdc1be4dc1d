// Package config provides configuration management for GNlineage.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Taxonomy: dir, names_file, nodes_file, root_id, max_hops
//   - Annotate: species_column, stats_format
//   - Log: level, format, destination
//   - General: with_progress
//
// Runtime-only fields (CLI flags only):
//   - Annotate.InputPath, OutputPath, InputFormat, OutputFormat, StatsFile
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNLINEAGE_ prefix with underscores for nesting:
//
//	GNLINEAGE_TAXONOMY_DIR=/data/taxdump
//	GNLINEAGE_TAXONOMY_MAX_HOPS=1000
//	GNLINEAGE_ANNOTATE_SPECIES_COLUMN=species
//	GNLINEAGE_LOG_LEVEL=info
package config

// Config represents the complete GNlineage configuration.
type Config struct {
	// Taxonomy describes where the taxonomy dump is and how to walk it.
	Taxonomy TaxonomyConfig `mapstructure:"taxonomy" yaml:"taxonomy"`

	// Annotate contains settings specific to the annotate command.
	Annotate AnnotateConfig `mapstructure:"annotate" yaml:"annotate"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// WithProgress shows progress bars while taxonomy dump is loading.
	WithProgress bool `mapstructure:"with_progress" yaml:"with_progress"`

	// HomeDir determines where config and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string `yaml:"-"`
}

// TaxonomyConfig locates NCBI-style taxonomy dump files.
type TaxonomyConfig struct {
	// Dir is the directory that contains names and nodes dump files.
	Dir string `mapstructure:"dir" yaml:"dir"`

	// NamesFile is the file name of the names dump inside Dir.
	NamesFile string `mapstructure:"names_file" yaml:"names_file"`

	// NodesFile is the file name of the nodes dump inside Dir.
	NodesFile string `mapstructure:"nodes_file" yaml:"nodes_file"`

	// RootID is the identifier of the root of the taxonomy tree.
	// Its rank is never recorded in a lineage.
	RootID string `mapstructure:"root_id" yaml:"root_id"`

	// MaxHops limits the number of parent links followed for one taxon.
	// Lineages longer than that are treated as broken (cyclic) data.
	MaxHops int `mapstructure:"max_hops" yaml:"max_hops"`
}

// AnnotateConfig contains settings of the annotate command.
type AnnotateConfig struct {
	// SpeciesColumn is the name of the input column with species names.
	SpeciesColumn string `mapstructure:"species_column" yaml:"species_column"`

	// StatsFormat is the format of the statistics report: 'text' or 'json'.
	StatsFormat string `mapstructure:"stats_format" yaml:"stats_format"`

	// InputPath is the path to the table of records.
	InputPath string `yaml:"-"`

	// OutputPath is the path where the annotated table is written.
	OutputPath string `yaml:"-"`

	// InputFormat overrides format detection by file extension.
	// Valid values: "csv", "tsv", "xlsx".
	InputFormat string `yaml:"-"`

	// OutputFormat overrides format detection by file extension.
	// Valid values: "csv", "tsv", "xlsx", "sqlite".
	OutputFormat string `yaml:"-"`

	// StatsFile, if set, receives the statistics report in addition to
	// the console output.
	StatsFile string `yaml:"-"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Taxonomy: TaxonomyConfig{
			Dir:       ".",
			NamesFile: "names.dmp",
			NodesFile: "nodes.dmp",
			RootID:    "1",
			MaxHops:   1000,
		},
		Annotate: AnnotateConfig{
			SpeciesColumn: "species",
			StatsFormat:   "text",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
