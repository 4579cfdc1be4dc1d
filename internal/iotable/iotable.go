// Package iotable reads and writes tables of records in CSV, TSV, XLSX
// and SQLite formats.
// This is an impure I/O package, it provides annotator.RowReader and
// annotator.RowWriter implementations backed by files.
package iotable

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/gnames/gnlineage/pkg/annotator"
)

// Format of a table file.
type Format string

const (
	CSV    Format = "csv"
	TSV    Format = "tsv"
	XLSX   Format = "xlsx"
	SQLite Format = "sqlite"
)

// Reader is a table opened for reading.
type Reader interface {
	annotator.RowReader
	io.Closer
}

// Writer is a table opened for writing.
// Close must be called to flush data to disk.
type Writer interface {
	annotator.RowWriter
	io.Closer
}

// DetectFormat returns the format of a table. If format is given, it
// is used as is, otherwise the format is guessed from the file extension.
func DetectFormat(path, format string) (Format, error) {
	if format != "" {
		return Format(strings.ToLower(format)), nil
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".csv", ".txt":
		return CSV, nil
	case ".tsv", ".tab":
		return TSV, nil
	case ".xlsx", ".xlsm":
		return XLSX, nil
	case ".sqlite", ".sqlite3", ".db":
		return SQLite, nil
	default:
		return "", FormatError(path, ext)
	}
}

// NewReader opens a table for reading and reads its header.
func NewReader(path string, f Format) (Reader, error) {
	var res Reader
	var err error
	switch f {
	case CSV:
		res, err = newCSVReader(path, ',')
	case TSV:
		res, err = newCSVReader(path, '\t')
	case XLSX:
		res, err = newXLSXReader(path)
	default:
		err = FormatError(path, string(f))
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// NewWriter creates a table for writing. An existing file is replaced.
func NewWriter(path string, f Format) (Writer, error) {
	var res Writer
	var err error
	switch f {
	case CSV:
		res, err = newCSVWriter(path, ',')
	case TSV:
		res, err = newCSVWriter(path, '\t')
	case XLSX:
		res, err = newXLSXWriter(path)
	case SQLite:
		res, err = newSQLiteWriter(path)
	default:
		err = FormatError(path, string(f))
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
