package cmd

import (
	"strings"

	"github.com/gnames/gnlineage/internal/iofs"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/spf13/cobra"
)

// taxonomyFlags holds overrides of taxonomy settings shared by
// annotate and lookup commands.
type taxonomyFlags struct {
	dir      string
	maxHops  int
	progress bool
}

func addTaxonomyFlags(cmd *cobra.Command, tf *taxonomyFlags) {
	cmd.Flags().StringVarP(&tf.dir, "taxonomy", "t", "",
		"directory with names.dmp and nodes.dmp")
	cmd.Flags().IntVar(&tf.maxHops, "max-hops", 0,
		"maximum parent links followed for one taxon")
	cmd.Flags().BoolVar(&tf.progress, "progress", false,
		"show progress bars while taxonomy is loading")
}

// taxonomyOpts converts explicitly set flags to config options.
func taxonomyOpts(cmd *cobra.Command, tf taxonomyFlags) []config.Option {
	var res []config.Option
	if cmd.Flags().Changed("taxonomy") {
		dir := iofs.ExpandHome(homeDir, tf.dir)
		res = append(res, config.OptTaxonomyDir(dir))
	}
	if cmd.Flags().Changed("max-hops") {
		res = append(res, config.OptTaxonomyMaxHops(tf.maxHops))
	}
	if cmd.Flags().Changed("progress") {
		res = append(res, config.OptWithProgress(tf.progress))
	}
	return res
}

// stringOpt appends an option if the flag was set by the user.
func stringOpt(
	cmd *cobra.Command,
	res []config.Option,
	flag string,
	opt func(string) config.Option,
) []config.Option {
	if !cmd.Flags().Changed(flag) {
		return res
	}
	val, _ := cmd.Flags().GetString(flag)
	return append(res, opt(strings.TrimSpace(val)))
}
