package iotable

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// FormatError creates an error for an unsupported table format.
func FormatError(path, format string) error {
	msg := `Cannot determine table format of <em>%s</em>

<em>Supported formats:</em>
  * csv, tsv, xlsx (input and output)
  * sqlite (output only)

<em>How to fix:</em>
  1. Use a file extension that matches the format
  2. Or set the format explicitly with --input-format/--output-format`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.TableFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("unsupported table format '%s' for %s", format, path),
	}
}

// OpenError creates an error for a table that cannot be opened.
func OpenError(path string, err error) error {
	msg := "Cannot open table <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.TableOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot open table %s: %w", path, err),
	}
}

// CreateError creates an error for an output table that cannot be created.
func CreateError(path string, err error) error {
	msg := "Cannot create table <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.TableOpenError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot create table %s: %w", path, err),
	}
}

// ReadError creates an error for a row that cannot be read.
func ReadError(path string, err error) error {
	msg := "Cannot read rows of <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.TableReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read table %s: %w", path, err),
	}
}

// WriteError creates an error for a row that cannot be written.
func WriteError(path string, err error) error {
	msg := "Cannot write rows to <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.TableWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write table %s: %w", path, err),
	}
}
