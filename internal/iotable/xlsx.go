package iotable

import (
	"errors"
	"io"

	"github.com/xuri/excelize/v2"
)

// sheetName is the sheet that receives annotated rows.
const sheetName = "Sheet1"

type xlsxReader struct {
	path   string
	f      *excelize.File
	rows   *excelize.Rows
	header []string
}

// newXLSXReader streams rows of the first sheet of a workbook.
func newXLSXReader(path string) (*xlsxReader, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		f.Close()
		return nil, ReadError(path, errors.New("workbook has no sheets"))
	}

	rows, err := f.Rows(sheets[0])
	if err != nil {
		f.Close()
		return nil, ReadError(path, err)
	}

	res := &xlsxReader{path: path, f: f, rows: rows}
	header, err := res.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		res.Close()
		return nil, err
	}
	res.header = header
	return res, nil
}

func (x *xlsxReader) Header() []string {
	return x.header
}

// Read returns the next row. Trailing empty cells are not included.
func (x *xlsxReader) Read() ([]string, error) {
	if !x.rows.Next() {
		if err := x.rows.Error(); err != nil {
			return nil, ReadError(x.path, err)
		}
		return nil, io.EOF
	}
	row, err := x.rows.Columns()
	if err != nil {
		return nil, ReadError(x.path, err)
	}
	return row, nil
}

func (x *xlsxReader) Close() error {
	err := x.rows.Close()
	if cerr := x.f.Close(); err == nil {
		err = cerr
	}
	return err
}

type xlsxWriter struct {
	path   string
	f      *excelize.File
	sw     *excelize.StreamWriter
	rowNum int
}

func newXLSXWriter(path string) (*xlsxWriter, error) {
	f := excelize.NewFile()
	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		f.Close()
		return nil, CreateError(path, err)
	}
	return &xlsxWriter{path: path, f: f, sw: sw}, nil
}

func (x *xlsxWriter) Write(row []string) error {
	x.rowNum++
	cell, err := excelize.CoordinatesToCellName(1, x.rowNum)
	if err != nil {
		return WriteError(x.path, err)
	}

	vals := make([]any, len(row))
	for i := range row {
		vals[i] = row[i]
	}
	if err = x.sw.SetRow(cell, vals); err != nil {
		return WriteError(x.path, err)
	}
	return nil
}

// Close flushes the stream and saves the workbook.
func (x *xlsxWriter) Close() error {
	defer x.f.Close()

	if err := x.sw.Flush(); err != nil {
		return WriteError(x.path, err)
	}
	if err := x.f.SaveAs(x.path); err != nil {
		return WriteError(x.path, err)
	}
	return nil
}
