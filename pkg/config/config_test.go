package config_test

import (
	"path/filepath"
	"testing"

	"github.com/gnames/gnlineage/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirs(t *testing.T) {
	tempHome := t.TempDir()

	tests := []struct {
		msg string
		fn  func(string) string
		res string
	}{
		{
			msg: "config dir",
			fn:  config.ConfigDir,
			res: filepath.Join(tempHome, ".config", "gnlineage"),
		},
		{
			msg: "log dir",
			fn:  config.LogDir,
			res: filepath.Join(tempHome, ".local", "share", "gnlineage", "logs"),
		},
		{
			msg: "taxdump dir",
			fn:  config.TaxdumpDir,
			res: filepath.Join(tempHome, ".local", "share", "gnlineage", "taxdump"),
		},
		{
			msg: "config file",
			fn:  config.ConfigFilePath,
			res: filepath.Join(tempHome, ".config", "gnlineage", "config.yaml"),
		},
	}

	for _, v := range tests {
		res := v.fn(tempHome)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestNew(t *testing.T) {
	cfg := config.New()
	require.NotNil(t, cfg)

	assert.Equal(t, ".", cfg.Taxonomy.Dir)
	assert.Equal(t, "names.dmp", cfg.Taxonomy.NamesFile)
	assert.Equal(t, "nodes.dmp", cfg.Taxonomy.NodesFile)
	assert.Equal(t, "1", cfg.Taxonomy.RootID)
	assert.Equal(t, 1000, cfg.Taxonomy.MaxHops)

	assert.Equal(t, "species", cfg.Annotate.SpeciesColumn)
	assert.Equal(t, "text", cfg.Annotate.StatsFormat)
	assert.Empty(t, cfg.Annotate.InputPath)
	assert.Empty(t, cfg.Annotate.OutputPath)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "file", cfg.Log.Destination)

	assert.False(t, cfg.WithProgress)
}

func TestDumpPaths(t *testing.T) {
	cfg := config.New()
	cfg.Update([]config.Option{
		config.OptTaxonomyDir("/data/taxdump"),
		config.OptTaxonomyNamesFile("names.txt"),
	})
	assert.Equal(t, filepath.Join("/data/taxdump", "names.txt"), cfg.NamesPath())
	assert.Equal(t, filepath.Join("/data/taxdump", "nodes.dmp"), cfg.NodesPath())
}

func TestOptionTaxonomyDir(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "sets valid dir",
			input:    "/data/taxdump",
			expected: "/data/taxdump",
		},
		{
			name:     "trims whitespace",
			input:    "  /data/taxdump  ",
			expected: "/data/taxdump",
		},
		{
			name:     "ignores empty string",
			input:    "",
			expected: ".",
		},
		{
			name:     "ignores whitespace-only",
			input:    "   ",
			expected: ".",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptTaxonomyDir(tt.input)})
			assert.Equal(t, tt.expected, cfg.Taxonomy.Dir)
		})
	}
}

func TestOptionTaxonomyMaxHops(t *testing.T) {
	tests := []struct {
		name     string
		input    int
		expected int
	}{
		{"sets valid value", 50, 50},
		{"ignores zero", 0, 1000},
		{"ignores negative", -3, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptTaxonomyMaxHops(tt.input)})
			assert.Equal(t, tt.expected, cfg.Taxonomy.MaxHops)
		})
	}
}

func TestOptionFormats(t *testing.T) {
	tests := []struct {
		name   string
		opt    config.Option
		get    func(*config.Config) string
		expect string
	}{
		{
			name:   "input csv",
			opt:    config.OptAnnotateInputFormat("CSV"),
			get:    func(c *config.Config) string { return c.Annotate.InputFormat },
			expect: "csv",
		},
		{
			name:   "input sqlite is rejected",
			opt:    config.OptAnnotateInputFormat("sqlite"),
			get:    func(c *config.Config) string { return c.Annotate.InputFormat },
			expect: "",
		},
		{
			name:   "output sqlite",
			opt:    config.OptAnnotateOutputFormat(" sqlite "),
			get:    func(c *config.Config) string { return c.Annotate.OutputFormat },
			expect: "sqlite",
		},
		{
			name:   "output unknown",
			opt:    config.OptAnnotateOutputFormat("parquet"),
			get:    func(c *config.Config) string { return c.Annotate.OutputFormat },
			expect: "",
		},
		{
			name:   "stats json",
			opt:    config.OptAnnotateStatsFormat("JSON"),
			get:    func(c *config.Config) string { return c.Annotate.StatsFormat },
			expect: "json",
		},
		{
			name:   "stats unknown keeps default",
			opt:    config.OptAnnotateStatsFormat("xml"),
			get:    func(c *config.Config) string { return c.Annotate.StatsFormat },
			expect: "text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{tt.opt})
			assert.Equal(t, tt.expect, tt.get(cfg))
		})
	}
}

func TestOptionLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"debug", "debug", "debug"},
		{"uppercase", "WARN", "warn"},
		{"invalid", "verbose", "info"},
		{"empty", "", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.New()
			cfg.Update([]config.Option{config.OptLogLevel(tt.input)})
			assert.Equal(t, tt.expected, cfg.Log.Level)
		})
	}
}

func TestToOptions(t *testing.T) {
	src := config.New()
	src.Update([]config.Option{
		config.OptTaxonomyDir("/tax"),
		config.OptTaxonomyRootID("131567"),
		config.OptTaxonomyMaxHops(64),
		config.OptAnnotateSpeciesColumn("Organism"),
		config.OptAnnotateStatsFormat("json"),
		config.OptAnnotateInputPath("in.csv"),
		config.OptLogLevel("debug"),
		config.OptWithProgress(true),
		config.OptHomeDir("/home/user"),
	})

	dst := config.New()
	dst.Update(src.ToOptions())

	assert.Equal(t, "/tax", dst.Taxonomy.Dir)
	assert.Equal(t, "131567", dst.Taxonomy.RootID)
	assert.Equal(t, 64, dst.Taxonomy.MaxHops)
	assert.Equal(t, "Organism", dst.Annotate.SpeciesColumn)
	assert.Equal(t, "json", dst.Annotate.StatsFormat)
	assert.Equal(t, "debug", dst.Log.Level)
	assert.True(t, dst.WithProgress)

	// runtime-only fields are not carried over
	assert.Empty(t, dst.Annotate.InputPath)
	assert.Empty(t, dst.HomeDir)
}
