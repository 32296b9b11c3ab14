/*
Package sqldataset reads and writes datasets from and to tables of SQL
databases. Every column of a table holds one attribute and every row one
sample, with values kept as text.
*/
package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	// Import of postgresql driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
	"github.com/pbanos/id3/dataset"
)

/*
Dialect describes the differences between the supported databases: the
name of the database/sql driver and the way statement parameters are
written.
*/
type Dialect struct {
	Driver      string
	Placeholder func(i int) string
}

var (
	// SQLite3 is the dialect of SQLite3 database files
	SQLite3 = Dialect{"sqlite3", func(int) string { return "?" }}
	// PostgreSQL is the dialect of PostgreSQL servers
	PostgreSQL = Dialect{"postgres", func(i int) string { return fmt.Sprintf("$%d", i) }}
)

/*
Open takes a dialect and a data source name (a file path for SQLite3, a
connection URL for PostgreSQL) and returns a *sql.DB for it or an error.
*/
func Open(d Dialect, dsn string) (*sql.DB, error) {
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("opening %s database: %v", d.Driver, err)
	}
	return db, nil
}

/*
Load takes a context, a database and the name of a table and returns a
dataset with every row of the table. Columns keep the order in which
the database reports them, so the last one is the target attribute.
A *dataset.FormatError is returned if the table holds NULL values.
*/
func Load(ctx context.Context, db *sql.DB, table string) (*dataset.Dataset, error) {
	qt, err := quote(table)
	if err != nil {
		return nil, err
	}
	rows, err := db.QueryContext(ctx, fmt.Sprintf("SELECT * FROM %s", qt))
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	defer rows.Close()
	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("querying table %s: %v", table, err)
	}
	var data [][]string
	values := make([]sql.NullString, len(columns))
	dest := make([]interface{}, len(columns))
	for i := range values {
		dest[i] = &values[i]
	}
	for rows.Next() {
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("reading table %s: %v", table, err)
		}
		row := make([]string, len(columns))
		for i, v := range values {
			if !v.Valid {
				return nil, &dataset.FormatError{File: table, Line: len(data) + 1, Msg: fmt.Sprintf("NULL value for %s", columns[i])}
			}
			row[i] = v.String
		}
		data = append(data, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("reading table %s: %v", table, err)
	}
	ds, err := dataset.New(columns, data)
	if err != nil {
		return nil, fmt.Errorf("loading table %s: %w", table, err)
	}
	return ds, nil
}

/*
Write takes a context, a database, its dialect, the name of a table and a
dataset and creates the table with a TEXT column per attribute, inserting
every row of the dataset on it within a single transaction. It returns
the number of inserted rows or an error.
*/
func Write(ctx context.Context, db *sql.DB, d Dialect, table string, s *dataset.Dataset) (int, error) {
	qt, err := quote(table)
	if err != nil {
		return 0, err
	}
	var createStmtBuf, insertStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf("CREATE TABLE %s(", qt))
	insertStmtBuf.WriteString(fmt.Sprintf("INSERT INTO %s(", qt))
	for i, c := range s.Columns() {
		qc, err := quote(c)
		if err != nil {
			return 0, err
		}
		if i > 0 {
			createStmtBuf.WriteString(", ")
			insertStmtBuf.WriteString(", ")
		}
		createStmtBuf.WriteString(qc + " TEXT NOT NULL")
		insertStmtBuf.WriteString(qc)
	}
	createStmtBuf.WriteString(")")
	insertStmtBuf.WriteString(") VALUES (")
	for i := range s.Columns() {
		if i > 0 {
			insertStmtBuf.WriteString(", ")
		}
		insertStmtBuf.WriteString(d.Placeholder(i + 1))
	}
	insertStmtBuf.WriteString(")")

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("writing table %s: %v", table, err)
	}
	_, err = tx.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("creating table %s: %v", table, err)
	}
	insertStmt, err := tx.PrepareContext(ctx, insertStmtBuf.String())
	if err != nil {
		tx.Rollback()
		return 0, fmt.Errorf("preparing insertion on table %s: %v", table, err)
	}
	defer insertStmt.Close()
	args := make([]interface{}, len(s.Columns()))
	for i, row := range s.Rows() {
		for j, v := range row {
			args[j] = v
		}
		_, err = insertStmt.ExecContext(ctx, args...)
		if err != nil {
			tx.Rollback()
			return 0, fmt.Errorf("inserting row %d on table %s: %v", i+1, table, err)
		}
	}
	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("writing table %s: %v", table, err)
	}
	return s.Count(), nil
}

func quote(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty name cannot be used as table or column")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return `"` + name + `"`, nil
}
