// Package iofs maintains the GNlineage home layout: the config file, logs
// and the default location of taxonomy dumps. It also prepares locations
// of files created by annotation runs.
package iofs

import (
	_ "embed"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/gnames/gnlineage/pkg/config"
)

// ConfigYAML is the default configuration written on the first run.
//
//go:embed config.yaml
var ConfigYAML string

// EnsureDirs creates config, log and taxonomy dump directories under
// homeDir.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.LogDir(homeDir),
		config.TaxdumpDir(homeDir),
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return CreateDirError(dir, err)
		}
	}
	return nil
}

// EnsureConfigFile writes the default config.yaml if there is none.
// An existing file is never touched.
func EnsureConfigFile(homeDir string) error {
	path := config.ConfigFilePath(homeDir)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return ReadFileError(path, err)
	}

	if err = os.WriteFile(path, []byte(ConfigYAML), 0644); err != nil {
		return ConfigFileError(path, err)
	}
	return nil
}

// ExpandHome replaces a leading "~" in path with homeDir. Paths from
// config.yaml and environment variables are not expanded by a shell.
func ExpandHome(homeDir, path string) string {
	if homeDir == "" {
		return path
	}
	switch {
	case path == "~":
		return homeDir
	case strings.HasPrefix(path, "~/"):
		return filepath.Join(homeDir, path[2:])
	default:
		return path
	}
}

// EnsureParentDir creates the directory of a file that is about to be
// written, such as an annotated table or a statistics report.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}
	return nil
}
