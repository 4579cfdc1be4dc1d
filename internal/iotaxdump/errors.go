package iotaxdump

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// TaxonomyFileError creates an error for a dump file that
// cannot be opened.
func TaxonomyFileError(path string, err error) error {
	msg := `Cannot open taxonomy dump file

<em>File path:</em> %s

<em>Possible causes:</em>
  - Taxonomy dump is not downloaded or not unpacked
  - Wrong taxonomy directory
  - Permission denied

<em>How to fix:</em>
  1. Set the directory with --taxonomy-dir or GNLINEAGE_TAXONOMY_DIR
  2. Check that names and nodes files are present and readable`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.TaxonomyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open taxonomy file %s: %w", path, err),
	}
}

// TaxonomyReadError creates an error for a dump file that
// fails while being read.
func TaxonomyReadError(path string, err error) error {
	msg := `Failed to read taxonomy dump file <em>%s</em>`
	vars := []any{path}

	return &gn.Error{
		Code: errcode.TaxonomyReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read taxonomy file %s: %w", path, err),
	}
}
