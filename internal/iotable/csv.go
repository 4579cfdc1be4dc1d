package iotable

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"os"
	"strings"
)

const bom = "\uFEFF"

type csvReader struct {
	path   string
	f      *os.File
	r      *csv.Reader
	header []string
}

func newCSVReader(path string, sep rune) (*csvReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	r := csv.NewReader(bufio.NewReader(f))
	r.Comma = sep
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	res := &csvReader{path: path, f: f, r: r}
	header, err := r.Read()
	if err != nil && !errors.Is(err, io.EOF) {
		f.Close()
		return nil, ReadError(path, err)
	}
	if len(header) > 0 {
		// spreadsheet programs often save CSV with a byte order mark
		header[0] = strings.TrimPrefix(header[0], bom)
	}
	res.header = header
	return res, nil
}

func (c *csvReader) Header() []string {
	return c.header
}

func (c *csvReader) Read() ([]string, error) {
	row, err := c.r.Read()
	if errors.Is(err, io.EOF) {
		return nil, io.EOF
	}
	if err != nil {
		return nil, ReadError(c.path, err)
	}
	return row, nil
}

func (c *csvReader) Close() error {
	return c.f.Close()
}

type csvWriter struct {
	path string
	f    *os.File
	w    *csv.Writer
}

func newCSVWriter(path string, sep rune) (*csvWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, CreateError(path, err)
	}
	w := csv.NewWriter(f)
	w.Comma = sep
	return &csvWriter{path: path, f: f, w: w}, nil
}

func (c *csvWriter) Write(row []string) error {
	if err := c.w.Write(row); err != nil {
		return WriteError(c.path, err)
	}
	return nil
}

func (c *csvWriter) Close() error {
	c.w.Flush()
	err := c.w.Error()
	if cerr := c.f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return WriteError(c.path, err)
	}
	return nil
}
