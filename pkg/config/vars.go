package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnlineage"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnlineage by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnlineage/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// TaxdumpDir returns the default directory for taxonomy dump files.
// Returns ~/.local/share/gnlineage/taxdump by default.
func TaxdumpDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "taxdump")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnlineage/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// NamesPath returns the full path to the names dump.
func (c *Config) NamesPath() string {
	return filepath.Join(c.Taxonomy.Dir, c.Taxonomy.NamesFile)
}

// NodesPath returns the full path to the nodes dump.
func (c *Config) NodesPath() string {
	return filepath.Join(c.Taxonomy.Dir, c.Taxonomy.NodesFile)
}
