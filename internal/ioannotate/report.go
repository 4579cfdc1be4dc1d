package ioannotate

import (
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/gnlineage/internal/iofs"
	"github.com/gnames/gnlineage/pkg/annotator"
	"github.com/jedib0t/go-pretty/table"
	"github.com/jedib0t/go-pretty/text"
)

// RenderReport writes a human-readable statistics table to w.
func RenderReport(w io.Writer, sum annotator.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.Style().Format.Header = text.FormatDefault

	t.AppendHeader(table.Row{"Statistic", "Value"})
	t.AppendRow(table.Row{"Total rows", humanize.Comma(int64(sum.TotalRows))})
	t.AppendRow(table.Row{
		"Rows with species", humanize.Comma(int64(sum.NonEmptySpecies)),
	})
	t.AppendRow(table.Row{"Matched", humanize.Comma(int64(sum.Matched))})
	t.AppendRow(table.Row{"Unmatched", humanize.Comma(int64(sum.Unmatched))})
	for _, l := range sum.Levels() {
		t.AppendRow(table.Row{
			"Distinct " + l.Name, humanize.Comma(int64(l.Count)),
		})
	}
	if sum.Elapsed > 0 {
		t.AppendFooter(table.Row{"Elapsed", gnfmt.TimeString(sum.Elapsed)})
	}
	t.Render()
}

// EncodeReport renders statistics as text table or JSON.
func EncodeReport(w io.Writer, sum annotator.Summary, format string) error {
	if format != "json" {
		RenderReport(w, sum)
		return nil
	}

	enc := gnfmt.GNjson{Pretty: true}
	res, err := enc.Encode(sum)
	if err != nil {
		return err
	}
	res = append(res, '\n')
	_, err = w.Write(res)
	return err
}

// WriteStats saves statistics to a file, creating its directory
// when needed.
func WriteStats(path string, sum annotator.Summary, format string) error {
	if err := iofs.EnsureParentDir(path); err != nil {
		return StatsWriteError(path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return StatsWriteError(path, err)
	}

	err = EncodeReport(f, sum, format)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return StatsWriteError(path, err)
	}
	return nil
}
