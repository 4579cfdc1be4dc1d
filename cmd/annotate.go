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
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/ioannotate"
	"github.com/gnames/gnlineage/pkg/config"
	"github.com/spf13/cobra"
)

// getAnnotateCmd returns the annotate command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getAnnotateCmd() *cobra.Command {
	var tf taxonomyFlags

	annotateCmd := &cobra.Command{
		Use:   "annotate",
		Short: "Append taxonomic lineage columns to a table",
		Long: `Annotate a table of records with Kingdom, Phylum, Class, Order,
Family and Genus of their species.

This command:
  1. Loads names.dmp and nodes.dmp from the taxonomy directory
  2. Reads the input table (CSV, TSV or XLSX) with a header row
  3. Matches the species column against the taxonomy, ignoring case
  4. Writes all input columns followed by six lineage columns
  5. Prints statistics of matched rows and distinct taxa

Rows without a species name or with an unknown name keep empty
lineage columns. If the run fails, the output file is removed.

The output format follows the file extension (.csv, .tsv, .xlsx,
.sqlite) unless --output-format is given.

Examples:
  gnlineage annotate -t ./taxdump -i records.csv -o annotated.csv
  gnlineage annotate -i records.xlsx -o annotated.sqlite
  gnlineage annotate -i records.tsv -o out.tsv --species-column taxon
  gnlineage annotate -i records.csv -o out.csv -s stats.json --stats-format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runAnnotate(cmd, tf)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	addTaxonomyFlags(annotateCmd, &tf)
	flags := annotateCmd.Flags()
	flags.StringP("input", "i", "", "input table with a header row")
	flags.StringP("output", "o", "", "annotated output table")
	flags.String("species-column", "", "input column with species names")
	flags.String("input-format", "", "input format: csv, tsv, xlsx")
	flags.String("output-format", "",
		"output format: csv, tsv, xlsx, sqlite")
	flags.StringP("stats-file", "s", "", "save statistics to a file")
	flags.String("stats-format", "", "statistics format: text, json")

	return annotateCmd
}

func runAnnotate(cmd *cobra.Command, tf taxonomyFlags) error {
	ctx, stop := signal.NotifyContext(
		context.Background(), os.Interrupt, syscall.SIGTERM,
	)
	defer stop()

	annotateOpts := taxonomyOpts(cmd, tf)
	annotateOpts = stringOpt(cmd, annotateOpts, "input",
		config.OptAnnotateInputPath)
	annotateOpts = stringOpt(cmd, annotateOpts, "output",
		config.OptAnnotateOutputPath)
	annotateOpts = stringOpt(cmd, annotateOpts, "species-column",
		config.OptAnnotateSpeciesColumn)
	annotateOpts = stringOpt(cmd, annotateOpts, "input-format",
		config.OptAnnotateInputFormat)
	annotateOpts = stringOpt(cmd, annotateOpts, "output-format",
		config.OptAnnotateOutputFormat)
	annotateOpts = stringOpt(cmd, annotateOpts, "stats-file",
		config.OptAnnotateStatsFile)
	annotateOpts = stringOpt(cmd, annotateOpts, "stats-format",
		config.OptAnnotateStatsFormat)

	// Apply annotate-specific options to config
	if len(annotateOpts) > 0 {
		cfg.Update(annotateOpts)
	}

	runner := ioannotate.New(cfg)
	sum, err := runner.Annotate(ctx)
	if err != nil {
		return err
	}

	// statistics file replaces the report on the screen
	if cfg.Annotate.StatsFile == "" {
		return ioannotate.EncodeReport(
			cmd.OutOrStdout(), sum, cfg.Annotate.StatsFormat,
		)
	}
	gn.Info("Statistics saved to <em>%s</em>", cfg.Annotate.StatsFile)
	return nil
}
