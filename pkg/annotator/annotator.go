// Package annotator adds six-rank classification columns to a stream of
// table rows and collects diversity statistics.
// This is a pure package, concrete tables are in internal/iotable.
package annotator

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/gnames/gnlineage/pkg/taxonomy"
)

// RowReader provides rows of a table one at a time.
type RowReader interface {
	// Header returns column names of the table.
	Header() []string

	// Read returns the next row. It returns io.EOF when there are
	// no rows left.
	Read() ([]string, error)
}

// RowWriter receives rows of the annotated table. The first row written
// is the header.
type RowWriter interface {
	Write(row []string) error
}

// Annotator resolves species names of rows into lineages.
type Annotator struct {
	store         *taxonomy.Store
	resolver      *taxonomy.Resolver
	speciesColumn string
}

// Option configures an Annotator.
type Option func(*Annotator)

// OptSpeciesColumn sets the name of the column with species names.
func OptSpeciesColumn(s string) Option {
	return func(a *Annotator) {
		if s != "" {
			a.speciesColumn = s
		}
	}
}

// New creates an Annotator that reads species names from "species"
// column unless configured otherwise.
func New(
	store *taxonomy.Store,
	resolver *taxonomy.Resolver,
	opts ...Option,
) *Annotator {
	res := &Annotator{
		store:         store,
		resolver:      resolver,
		speciesColumn: "species",
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

// Annotate copies all rows from r to w, appending Kingdom, Phylum, Class,
// Order, Family and Genus values. Rows keep their order, rows without a
// species name or with an unknown one get empty ranks.
//
// If the header of r has no species column, nothing is written and
// SpeciesColumnError is returned.
func (a *Annotator) Annotate(
	ctx context.Context,
	r RowReader,
	w RowWriter,
) (Summary, error) {
	header := r.Header()
	idx := slices.Index(header, a.speciesColumn)
	if idx < 0 {
		return Summary{}, SpeciesColumnError(a.speciesColumn, header)
	}

	outHeader := append(slices.Clone(header), taxonomy.Header()...)
	if err := w.Write(outHeader); err != nil {
		return Summary{}, err
	}

	stats := NewStats()
	for {
		select {
		case <-ctx.Done():
			return stats.Summary(), CancelledError(ctx.Err())
		default:
		}

		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return stats.Summary(), err
		}

		lin := a.processRow(stats, row, idx)
		row = fitRow(row, len(header))
		if err = w.Write(append(row, lin.Values()...)); err != nil {
			return stats.Summary(), err
		}
	}

	res := stats.Summary()
	slog.Info("Annotation finished",
		"rows", res.TotalRows,
		"matched", res.Matched,
		"unmatched", res.Unmatched,
	)
	return res, nil
}

// processRow updates statistics with a row and returns its lineage.
func (a *Annotator) processRow(
	stats *Stats,
	row []string,
	idx int,
) taxonomy.Lineage {
	stats.TotalRows++

	var species string
	if idx < len(row) {
		species = strings.TrimSpace(row[idx])
	}
	if species == "" {
		return taxonomy.Lineage{}
	}
	stats.AddSpecies(species)

	id, status := a.store.Match(species)
	if status != taxonomy.Matched {
		stats.Unmatched++
		slog.Debug("Species is not found", "species", species)
		return taxonomy.Lineage{}
	}

	lin := a.resolver.Resolve(id)
	stats.AddLineage(lin)
	return lin
}

// fitRow makes a row exactly as wide as the header, so appended ranks
// stay under their columns. Short rows are padded with empty cells,
// cells beyond the header are dropped.
func fitRow(row []string, width int) []string {
	if len(row) > width {
		slog.Debug("Dropping cells beyond the header",
			"cells", len(row),
			"header", width,
		)
	}
	res := make([]string, width, width+taxonomy.RanksNum)
	copy(res, row)
	return res
}
