package iotable

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	_ "modernc.org/sqlite"
)

// TableName is the SQLite table that receives annotated rows.
const TableName = "records"

type sqliteWriter struct {
	path  string
	db    *sql.DB
	tx    *sql.Tx
	stmt  *sql.Stmt
	width int
}

// newSQLiteWriter creates a database with a single table. The table is
// created when the header arrives, all rows go into one transaction.
func newSQLiteWriter(path string) (*sqliteWriter, error) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, CreateError(path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, CreateError(path, err)
	}
	if err = db.Ping(); err != nil {
		db.Close()
		return nil, CreateError(path, err)
	}
	return &sqliteWriter{path: path, db: db}, nil
}

func (s *sqliteWriter) Write(row []string) error {
	if s.stmt == nil {
		return s.createTable(row)
	}

	args := make([]any, s.width)
	for i := range args {
		if i < len(row) {
			args[i] = row[i]
		} else {
			args[i] = ""
		}
	}
	if _, err := s.stmt.Exec(args...); err != nil {
		return WriteError(s.path, err)
	}
	return nil
}

func (s *sqliteWriter) createTable(header []string) error {
	cols := columnNames(header)
	defs := make([]string, len(cols))
	marks := make([]string, len(cols))
	for i, c := range cols {
		defs[i] = quoteIdent(c) + " TEXT"
		marks[i] = "?"
	}

	create := fmt.Sprintf("CREATE TABLE %s (%s)",
		quoteIdent(TableName), strings.Join(defs, ", "))
	if _, err := s.db.Exec(create); err != nil {
		return WriteError(s.path, err)
	}

	var err error
	if s.tx, err = s.db.Begin(); err != nil {
		return WriteError(s.path, err)
	}
	insert := fmt.Sprintf("INSERT INTO %s VALUES (%s)",
		quoteIdent(TableName), strings.Join(marks, ", "))
	if s.stmt, err = s.tx.Prepare(insert); err != nil {
		return WriteError(s.path, err)
	}
	s.width = len(cols)
	return nil
}

// Close commits inserted rows and closes the database.
func (s *sqliteWriter) Close() error {
	var err error
	if s.stmt != nil {
		err = s.stmt.Close()
	}
	if s.tx != nil {
		if cerr := s.tx.Commit(); err == nil {
			err = cerr
		}
	}
	if cerr := s.db.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return WriteError(s.path, err)
	}
	return nil
}

// columnNames makes header names usable as SQLite columns:
// empty names get a position-based name, duplicates get the first free
// numeric suffix. SQLite compares column names case-insensitively.
func columnNames(header []string) []string {
	res := make([]string, len(header))
	used := make(map[string]struct{}, len(header))
	for _, h := range header {
		used[strings.ToLower(strings.TrimSpace(h))] = struct{}{}
	}

	taken := make(map[string]struct{}, len(header))
	for i, h := range header {
		h = strings.TrimSpace(h)
		if h == "" {
			h = fmt.Sprintf("column_%d", i+1)
		}
		name := h
		for n := 2; ; n++ {
			key := strings.ToLower(name)
			_, isTaken := taken[key]
			_, isUsed := used[key]
			// a generated name may not shadow a later header
			if !isTaken && (name == h || !isUsed) {
				break
			}
			name = fmt.Sprintf("%s_%d", h, n)
		}
		taken[strings.ToLower(name)] = struct{}{}
		res[i] = name
	}
	return res
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
