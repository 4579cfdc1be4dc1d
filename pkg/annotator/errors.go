package annotator

import (
	"fmt"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// SpeciesColumnError creates an error for a table without
// the species column.
func SpeciesColumnError(column string, header []string) error {
	msg := `Input table has no <em>%s</em> column

<em>Found columns:</em> %s

<em>How to fix:</em>
  1. Add a column with species names to the table
  2. Or set the column name with --species-column`

	vars := []any{column, strings.Join(header, ", ")}

	return &gn.Error{
		Code: errcode.SpeciesColumnError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("column '%s' is missing from the header", column),
	}
}

// CancelledError creates an error for when annotation
// is cancelled.
func CancelledError(err error) error {
	msg := "Annotation was cancelled"

	return &gn.Error{
		Code: errcode.AnnotateCancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("annotation cancelled: %w", err),
	}
}
