package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptTaxonomyDir sets the directory with taxonomy dump files.
func OptTaxonomyDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxonomy Dir", s) {
			c.Taxonomy.Dir = s
		}
	}
}

// OptTaxonomyNamesFile sets the file name of the names dump.
func OptTaxonomyNamesFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxonomy Names File", s) {
			c.Taxonomy.NamesFile = s
		}
	}
}

// OptTaxonomyNodesFile sets the file name of the nodes dump.
func OptTaxonomyNodesFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxonomy Nodes File", s) {
			c.Taxonomy.NodesFile = s
		}
	}
}

// OptTaxonomyRootID sets the identifier of the taxonomy root.
func OptTaxonomyRootID(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Taxonomy Root ID", s) {
			c.Taxonomy.RootID = s
		}
	}
}

// OptTaxonomyMaxHops sets the maximum number of parent links followed
// for a single taxon.
func OptTaxonomyMaxHops(i int) Option {
	return func(c *Config) {
		if isValidInt("Taxonomy Max Hops", i) {
			c.Taxonomy.MaxHops = i
		}
	}
}

// OptAnnotateSpeciesColumn sets the name of the column with species names.
// The name is matched exactly against the table header.
func OptAnnotateSpeciesColumn(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Species Column", s) {
			c.Annotate.SpeciesColumn = s
		}
	}
}

// OptAnnotateStatsFormat sets the format of the statistics report.
// Valid values: "text", "json".
func OptAnnotateStatsFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Annotate.StatsFormat", s) {
			c.Annotate.StatsFormat = s
		}
	}
}

// OptAnnotateInputPath sets the path to the input table.
// Runtime-only field - not in ToOptions().
func OptAnnotateInputPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Input Path", s) {
			c.Annotate.InputPath = s
		}
	}
}

// OptAnnotateOutputPath sets the path to the annotated output table.
// Runtime-only field - not in ToOptions().
func OptAnnotateOutputPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Path", s) {
			c.Annotate.OutputPath = s
		}
	}
}

// OptAnnotateInputFormat overrides input format detection.
// Valid values: "csv", "tsv", "xlsx".
// Runtime-only field - not in ToOptions().
func OptAnnotateInputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Annotate.InputFormat", s) {
			c.Annotate.InputFormat = s
		}
	}
}

// OptAnnotateOutputFormat overrides output format detection.
// Valid values: "csv", "tsv", "xlsx", "sqlite".
// Runtime-only field - not in ToOptions().
func OptAnnotateOutputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Annotate.OutputFormat", s) {
			c.Annotate.OutputFormat = s
		}
	}
}

// OptAnnotateStatsFile sets a file for the statistics report.
// Runtime-only field - not in ToOptions().
func OptAnnotateStatsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Stats File", s) {
			c.Annotate.StatsFile = s
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptWithProgress enables or disables progress bars.
func OptWithProgress(b bool) Option {
	return func(c *Config) {
		c.WithProgress = b
	}
}

// OptHomeDir sets the home directory for config and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
