package iofs

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/pkg/errcode"
)

// CreateDirError creates an error for a directory that cannot be made.
func CreateDirError(dir string, err error) error {
	msg := `Cannot create directory <em>%s</em>

<em>How to fix:</em>
  Check permissions of the parent directory`

	vars := []any{dir}

	return &gn.Error{
		Code: errcode.CreateDirError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot create directory %s: %w", dir, err),
	}
}

// ConfigFileError creates an error for a default config that cannot
// be saved.
func ConfigFileError(path string, err error) error {
	msg := `Cannot save default configuration to <em>%s</em>

<em>How to fix:</em>
  Settings can also be given by GNLINEAGE_* variables and flags`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.CopyFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot write config %s: %w", path, err),
	}
}

// ReadFileError creates an error for a config file that cannot be read
// or parsed.
func ReadFileError(path string, err error) error {
	msg := `Cannot read configuration <em>%s</em>

<em>How to fix:</em>
  Fix the YAML syntax or remove the file to get defaults back`

	vars := []any{path}

	return &gn.Error{
		Code: errcode.ReadFileError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("cannot read %s: %w", path, err),
	}
}
