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
	"fmt"
	"io"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlineage/internal/ioannotate"
	"github.com/gnames/gnlineage/pkg/taxonomy"
	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
	"github.com/spf13/cobra"
)

// lookupOutput is a JSON-friendly form of taxonomy.LookupResult.
type lookupOutput struct {
	Name    string            `json:"name"`
	TaxonID string            `json:"taxonId,omitempty"`
	Status  string            `json:"status"`
	Lineage map[string]string `json:"lineage,omitempty"`
	Path    []string          `json:"path,omitempty"`
}

// getLookupCmd returns the lookup command.
func getLookupCmd() *cobra.Command {
	var (
		tf       taxonomyFlags
		format   string
		withPath bool
	)

	lookupCmd := &cobra.Command{
		Use:   "lookup name [name...]",
		Short: "Show lineages of names found in the taxonomy",
		Long: `Resolve one or more names against the taxonomy dump and print
their six-rank lineages.

Matching is exact and case-insensitive. Scientific names win over
synonyms and equivalent names.

Examples:
  gnlineage lookup -t ./taxdump "Escherichia coli"
  gnlineage lookup "Homo sapiens" "Bacillus coli" --path
  gnlineage lookup "Salmonella enterica" -f json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("taxonomy") ||
				cmd.Flags().Changed("max-hops") ||
				cmd.Flags().Changed("progress") {
				cfg.Update(taxonomyOpts(cmd, tf))
			}

			runner := ioannotate.New(cfg)
			res, err := runner.Lookup(context.Background(), args)
			if err != nil {
				gn.PrintErrorMessage(err)
				return err
			}
			return printLookup(cmd.OutOrStdout(), res, format, withPath)
		},
	}

	addTaxonomyFlags(lookupCmd, &tf)
	lookupCmd.Flags().StringVarP(&format, "format", "f", "text",
		"output format: text, json")
	lookupCmd.Flags().BoolVar(&withPath, "path", false,
		"show every ancestor of a name")

	return lookupCmd
}

func printLookup(
	w io.Writer,
	res []taxonomy.LookupResult,
	format string,
	withPath bool,
) error {
	if format == "json" {
		out := make([]lookupOutput, len(res))
		for i := range res {
			out[i] = toLookupOutput(res[i], withPath)
		}
		enc := gnfmt.GNjson{Pretty: true}
		bs, err := enc.Encode(out)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(bs))
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.Style().Format.Header = text.FormatDefault

	header := table.Row{"Name", "Status", "Taxon ID"}
	for _, h := range taxonomy.Header() {
		header = append(header, h)
	}
	t.AppendHeader(header)
	for _, r := range res {
		row := table.Row{r.Name, r.Status.String(), r.TaxonID}
		for _, v := range r.Lineage.Values() {
			row = append(row, v)
		}
		t.AppendRow(row)
	}
	t.Render()

	if !withPath {
		return nil
	}
	for _, r := range res {
		if len(r.Path) == 0 {
			continue
		}
		_, err := fmt.Fprintf(w, "\n%s:\n%s\n", r.Name, pathLines(r.Path))
		if err != nil {
			return err
		}
	}
	return nil
}

func toLookupOutput(r taxonomy.LookupResult, withPath bool) lookupOutput {
	res := lookupOutput{
		Name:    r.Name,
		TaxonID: r.TaxonID,
		Status:  r.Status.String(),
	}
	if r.Status != taxonomy.Matched {
		return res
	}

	res.Lineage = make(map[string]string)
	for _, rank := range taxonomy.Ranks {
		if v := r.Lineage.Get(rank); v != "" {
			res.Lineage[rank.String()] = v
		}
	}
	if withPath {
		for _, a := range r.Path {
			res.Path = append(res.Path, ancestorString(a))
		}
	}
	return res
}

func pathLines(path []taxonomy.Ancestor) string {
	lines := make([]string, len(path))
	for i, a := range path {
		lines[i] = strings.Repeat("  ", i+1) + ancestorString(a)
	}
	return strings.Join(lines, "\n")
}

func ancestorString(a taxonomy.Ancestor) string {
	return fmt.Sprintf("%s [%s] (%s)", a.Name, a.Rank, a.ID)
}
