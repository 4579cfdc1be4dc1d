package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir, input/output paths and formats,
// StatsFile).
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	s = c.Taxonomy.Dir
	if s != "" {
		res = append(res, OptTaxonomyDir(s))
	}
	s = c.Taxonomy.NamesFile
	if s != "" {
		res = append(res, OptTaxonomyNamesFile(s))
	}
	s = c.Taxonomy.NodesFile
	if s != "" {
		res = append(res, OptTaxonomyNodesFile(s))
	}
	s = c.Taxonomy.RootID
	if s != "" {
		res = append(res, OptTaxonomyRootID(s))
	}
	i = c.Taxonomy.MaxHops
	if i > 0 {
		res = append(res, OptTaxonomyMaxHops(i))
	}

	s = c.Annotate.SpeciesColumn
	if s != "" {
		res = append(res, OptAnnotateSpeciesColumn(s))
	}
	s = c.Annotate.StatsFormat
	if s != "" {
		res = append(res, OptAnnotateStatsFormat(s))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	res = append(res, OptWithProgress(c.WithProgress))
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Annotate.StatsFormat": {"text": s, "json": s},
		"Annotate.InputFormat": {"csv": s, "tsv": s, "xlsx": s},
		"Annotate.OutputFormat": {"csv": s, "tsv": s, "xlsx": s,
			"sqlite": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
