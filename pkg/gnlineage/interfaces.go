package gnlineage

import (
	"context"

	"github.com/gnames/gnlineage/pkg/annotator"
	"github.com/gnames/gnlineage/pkg/taxonomy"
)

// Runner annotates tables of records using a taxonomy dump.
// Config is provided during construction.
type Runner interface {
	// Annotate loads the taxonomy, reads the input table, writes the
	// annotated table and returns statistics of the run.
	// The output file is removed if the run fails.
	Annotate(ctx context.Context) (annotator.Summary, error)

	// Lookup loads the taxonomy and resolves the given names.
	Lookup(ctx context.Context, names []string) ([]taxonomy.LookupResult, error)
}
