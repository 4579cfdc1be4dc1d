/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/iofs"
	"github.com/gnames/gnlineage/internal/iologger"
	app "github.com/gnames/gnlineage/pkg"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnlineage",
		Short:   "Annotates biological records with their taxonomic lineage",
		Long: `GNlineage reads a table of biological records, finds each species
name in an NCBI-style taxonomy dump (names.dmp and nodes.dmp) and
appends Kingdom, Phylum, Class, Order, Family and Genus columns.

Commands:
  - annotate: add lineage columns to a CSV, TSV or XLSX table
  - lookup: show how names resolve against the taxonomy
  - config: show the effective configuration

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNLINEAGE_*)
  3. Config file (~/.config/gnlineage/config.yaml)
  4. Built-in defaults

Environment Variables:
  Nested fields use underscores (taxonomy.dir -> GNLINEAGE_TAXONOMY_DIR).

  Examples:
    GNLINEAGE_TAXONOMY_DIR              directory with dump files
    GNLINEAGE_TAXONOMY_MAX_HOPS         parent links limit per taxon
    GNLINEAGE_ANNOTATE_SPECIES_COLUMN   column with species names
    GNLINEAGE_LOG_LEVEL                 log level (debug/info/warn/error)`,
		PersistentPreRunE: bootstrap,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "gnlineage version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for gnlineage")

	rootCmd.AddCommand(getAnnotateCmd())
	rootCmd.AddCommand(getLookupCmd())
	rootCmd.AddCommand(getConfigCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded, config.yaml and env vars may
	// use "~" for the taxonomy dir.
	cfg.Update([]config.Option{
		config.OptHomeDir(homeDir),
		config.OptTaxonomyDir(iofs.ExpandHome(homeDir, cfg.Taxonomy.Dir)),
	})

	// Reconfigure logging with user's settings
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	iologger.Close()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNLINEAGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Taxonomy configuration
	v.BindEnv("taxonomy.dir", "GNLINEAGE_TAXONOMY_DIR")
	v.BindEnv("taxonomy.names_file", "GNLINEAGE_TAXONOMY_NAMES_FILE")
	v.BindEnv("taxonomy.nodes_file", "GNLINEAGE_TAXONOMY_NODES_FILE")
	v.BindEnv("taxonomy.root_id", "GNLINEAGE_TAXONOMY_ROOT_ID")
	v.BindEnv("taxonomy.max_hops", "GNLINEAGE_TAXONOMY_MAX_HOPS")

	// Annotate configuration
	v.BindEnv("annotate.species_column", "GNLINEAGE_ANNOTATE_SPECIES_COLUMN")
	v.BindEnv("annotate.stats_format", "GNLINEAGE_ANNOTATE_STATS_FORMAT")

	// Log configuration
	v.BindEnv("log.level", "GNLINEAGE_LOG_LEVEL")
	v.BindEnv("log.format", "GNLINEAGE_LOG_FORMAT")
	v.BindEnv("log.destination", "GNLINEAGE_LOG_DESTINATION")

	// General configuration
	v.BindEnv("with_progress", "GNLINEAGE_WITH_PROGRESS")

	v.AutomaticEnv()
}
