package sqldataset

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	db, err := Open(SQLite3, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestWriteAndLoad(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	s, err := dataset.Read(strings.NewReader("Outlook,Windy,Play\nSunny,False,No\nRain,True,Yes\n"), "weather.csv")
	require.NoError(t, err)

	n, err := Write(ctx, db, SQLite3, "weather", s)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := Load(ctx, db, "weather")
	require.NoError(t, err)
	assert.Equal(t, s.Columns(), loaded.Columns())
	assert.Equal(t, s.Rows(), loaded.Rows())
	assert.Equal(t, "Play", loaded.Target())

	_, err = Write(ctx, db, SQLite3, "weather", s)
	assert.Error(t, err)
}

func TestLoadConvertsValuesToText(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	_, err := db.ExecContext(ctx, `CREATE TABLE scores(level INTEGER, passed TEXT)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO scores VALUES (1, 'no'), (2, 'yes')`)
	require.NoError(t, err)

	s, err := Load(ctx, db, "scores")
	require.NoError(t, err)
	assert.Equal(t, []string{"level", "passed"}, s.Columns())
	assert.Equal(t, [][]string{{"1", "no"}, {"2", "yes"}}, s.Rows())
}

func TestLoadRejectsNulls(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	_, err := db.ExecContext(ctx, `CREATE TABLE samples(a TEXT, b TEXT)`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO samples VALUES ('x', 'y'), ('x', NULL)`)
	require.NoError(t, err)

	_, err = Load(ctx, db, "samples")
	var fe *dataset.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, 2, fe.Line)
	assert.Equal(t, "samples", fe.File)
}

func TestInvalidNames(t *testing.T) {
	ctx := context.Background()
	db := openSQLite(t)
	_, err := Load(ctx, db, `we"ird`)
	assert.Error(t, err)
	_, err = Load(ctx, db, "missing")
	assert.Error(t, err)

	s, err := dataset.New([]string{`a"b`, "t"}, nil)
	require.NoError(t, err)
	_, err = Write(ctx, db, SQLite3, "samples", s)
	assert.Error(t, err)
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "$3", PostgreSQL.Placeholder(3))
	assert.Equal(t, "?", SQLite3.Placeholder(3))
	assert.Equal(t, "postgres", PostgreSQL.Driver)
}
