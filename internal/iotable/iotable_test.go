package iotable_test

import (
	"database/sql"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnlineage/internal/iotable"
	"github.com/gnames/gnlineage/internal/iotesting"
	"github.com/gnames/gnlineage/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path   string
		format string
		res    iotable.Format
		err    bool
	}{
		{"records.csv", "", iotable.CSV, false},
		{"records.CSV", "", iotable.CSV, false},
		{"records.tsv", "", iotable.TSV, false},
		{"records.xlsx", "", iotable.XLSX, false},
		{"records.sqlite", "", iotable.SQLite, false},
		{"records.db", "", iotable.SQLite, false},
		{"records.dat", "tsv", iotable.TSV, false},
		{"records", "", "", true},
		{"records.json", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res, err := iotable.DetectFormat(tt.path, tt.format)
			if tt.err {
				var gnErr *gn.Error
				require.ErrorAs(t, err, &gnErr)
				assert.Equal(t, errcode.TableFormatError, gnErr.Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.res, res)
		})
	}
}

func readAll(t *testing.T, r iotable.Reader) [][]string {
	t.Helper()
	var res [][]string
	for {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		res = append(res, row)
	}
	return res
}

func TestCSVReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.csv")
	iotesting.WriteFile(t, path,
		"\uFEFFtitle,species\n"+
			"\"Gut flora, revisited\",Escherichia coli\n"+
			"short\n"+
			"x,Salmonella enterica,extra\n",
	)

	r, err := iotable.NewReader(path, iotable.CSV)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"title", "species"}, r.Header(),
		"byte order mark is removed")
	rows := readAll(t, r)
	assert.Equal(t, [][]string{
		{"Gut flora, revisited", "Escherichia coli"},
		{"short"},
		{"x", "Salmonella enterica", "extra"},
	}, rows)
}

func TestCSVReaderEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	iotesting.WriteFile(t, path, "")

	r, err := iotable.NewReader(path, iotable.CSV)
	require.NoError(t, err)
	defer r.Close()
	assert.Empty(t, r.Header())

	_, err = r.Read()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderMissingFile(t *testing.T) {
	for _, f := range []iotable.Format{iotable.CSV, iotable.XLSX} {
		t.Run(string(f), func(t *testing.T) {
			_, err := iotable.NewReader(
				filepath.Join(t.TempDir(), "none."+string(f)), f,
			)
			var gnErr *gn.Error
			require.ErrorAs(t, err, &gnErr)
			assert.Equal(t, errcode.TableOpenError, gnErr.Code)
		})
	}
}

func TestSQLiteInputIsNotSupported(t *testing.T) {
	_, err := iotable.NewReader("records.sqlite", iotable.SQLite)
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.TableFormatError, gnErr.Code)
}

var rows = [][]string{
	{"title", "species", "Kingdom", "Genus"},
	{"Tab\tand \"quotes\"", "Escherichia coli", "Bacteria", "Escherichia"},
	{"Unknown", "Foo bar", "", ""},
}

func TestWriteAndReadBack(t *testing.T) {
	for _, f := range []iotable.Format{iotable.CSV, iotable.TSV, iotable.XLSX} {
		t.Run(string(f), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "out."+string(f))

			w, err := iotable.NewWriter(path, f)
			require.NoError(t, err)
			for _, row := range rows {
				require.NoError(t, w.Write(row))
			}
			require.NoError(t, w.Close())

			r, err := iotable.NewReader(path, f)
			require.NoError(t, err)
			defer r.Close()

			assert.Equal(t, rows[0], r.Header())
			got := readAll(t, r)
			require.Len(t, got, 2)
			assert.Equal(t, rows[1], got[0])
			// spreadsheets drop trailing empty cells
			assert.Equal(t, rows[2][:2], got[1][:2])
			for _, v := range got[1][2:] {
				assert.Empty(t, v)
			}
		})
	}
}

func TestSQLiteWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sqlite")
	iotesting.WriteFile(t, path, "stale content")

	w, err := iotable.NewWriter(path, iotable.SQLite)
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"species", "Order", "species", ""}))
	require.NoError(t, w.Write([]string{"Escherichia coli", "Enterobacterales", "x"}))
	require.NoError(t, w.Write([]string{"", "", "", ""}))
	require.NoError(t, w.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var count int
	err = db.QueryRow(`SELECT count(*) FROM records`).Scan(&count)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	var order, dup, empty string
	err = db.QueryRow(
		`SELECT "Order", "species_2", "column_4" FROM records WHERE species != ''`,
	).Scan(&order, &dup, &empty)
	require.NoError(t, err)
	assert.Equal(t, "Enterobacterales", order)
	assert.Equal(t, "x", dup)
	assert.Empty(t, empty, "short rows are padded")
}

func TestCSVWriterBadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "out.csv")
	_, err := iotable.NewWriter(path, iotable.CSV)

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.TableOpenError, gnErr.Code)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSQLiteWriterDuplicateColumns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.sqlite")

	w, err := iotable.NewWriter(path, iotable.SQLite)
	require.NoError(t, err)
	require.NoError(t, w.Write([]string{"a", "a", "a_2", "A"}))
	require.NoError(t, w.Write([]string{"1", "2", "3", "4"}))
	require.NoError(t, w.Close())

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	var a, a2, a3, a4 string
	err = db.QueryRow(`SELECT "a", "a_3", "a_2", "A_4" FROM records`).
		Scan(&a, &a3, &a2, &a4)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2", "3", "4"}, []string{a, a3, a2, a4})
}
