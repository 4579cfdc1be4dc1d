package ioannotate

import (
	"errors"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// NoInputError creates an error for a run without an input table.
func NoInputError() error {
	msg := `Input table is not set

<em>How to fix:</em>
  Provide a path with <em>--input</em> (-i)`

	return &gn.Error{
		Code: errcode.AnnotatePathError,
		Msg:  msg,
		Err:  errors.New("input path is empty"),
	}
}

// NoOutputError creates an error for a run without an output table.
func NoOutputError() error {
	msg := `Output table is not set

<em>How to fix:</em>
  Provide a path with <em>--output</em> (-o)`

	return &gn.Error{
		Code: errcode.AnnotatePathError,
		Msg:  msg,
		Err:  errors.New("output path is empty"),
	}
}

// SamePathError creates an error for output that would overwrite input.
func SamePathError(path string) error {
	msg := `Output table would overwrite input table <em>%s</em>

<em>How to fix:</em>
  Choose a different <em>--output</em> path`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.AnnotatePathError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("input and output point to the same file %s", path),
	}
}

// StatsWriteError creates an error for a statistics file that cannot
// be saved.
func StatsWriteError(path string, err error) error {
	msg := "Cannot save statistics to <em>%s</em>"
	vars := []any{path}

	return &gn.Error{
		Code: errcode.StatsWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write statistics %s: %w", path, err),
	}
}
