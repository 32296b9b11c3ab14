package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbanos/id3/dataset"
	djson "github.com/pbanos/id3/dataset/json"
	"github.com/pbanos/id3/dataset/mongodataset"
	"github.com/pbanos/id3/dataset/sqldataset"
	"github.com/pbanos/id3/queue"
	qjson "github.com/pbanos/id3/queue/json"
	"github.com/pbanos/id3/queue/redisq"
	"github.com/pbanos/id3/tree"
	"github.com/pbanos/id3/tree/json"
	"github.com/pbanos/id3/tree/ldbstore"
	"github.com/pbanos/id3/tree/redisstore"
	"github.com/pbanos/id3/tree/text"
	"github.com/pbanos/id3/tree/yaml"
	"gopkg.in/redis.v5"
)

const defaultTable = "samples"

type sourceKind int

const (
	csvSource sourceKind = iota
	sqlite3Source
	postgreSQLSource
	mongoDBSource
)

func kindOf(location string) sourceKind {
	switch {
	case strings.HasPrefix(location, "postgres://"), strings.HasPrefix(location, "postgresql://"):
		return postgreSQLSource
	case strings.HasPrefix(location, "mongodb://"):
		return mongoDBSource
	case strings.HasSuffix(location, ".db"):
		return sqlite3Source
	}
	return csvSource
}

/*
loadDataset reads a dataset from a CSV file (STDIN if location is empty),
an SQLite3 (.db) file, a PostgreSQL DB connection URL or a MongoDB URL.
The table names the table or collection for database locations.
*/
func (rcc *rootCmdConfig) loadDataset(ctx context.Context, location, table string) (*dataset.Dataset, error) {
	if table == "" {
		table = defaultTable
	}
	switch kindOf(location) {
	case sqlite3Source:
		rcc.Logf("Reading table %s of SQLite3 file %s...", table, location)
		return loadSQLDataset(ctx, sqldataset.SQLite3, location, table)
	case postgreSQLSource:
		rcc.Logf("Reading table %s of PostgreSQL database...", table)
		return loadSQLDataset(ctx, sqldataset.PostgreSQL, location, table)
	case mongoDBSource:
		rcc.Logf("Reading collection %s of MongoDB database...", table)
		session, err := mongodataset.Open(location)
		if err != nil {
			return nil, err
		}
		defer session.Close()
		return mongodataset.Load(ctx, session, table)
	}
	if location == "" {
		rcc.Logf("Reading CSV from STDIN...")
	} else {
		rcc.Logf("Reading CSV file %s...", location)
	}
	return dataset.Load(location)
}

func loadSQLDataset(ctx context.Context, d sqldataset.Dialect, dsn, table string) (*dataset.Dataset, error) {
	db, err := sqldataset.Open(d, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()
	return sqldataset.Load(ctx, db, table)
}

/*
writeDataset writes a dataset onto the same kinds of locations loadDataset
reads from, STDOUT if location is empty.
*/
func (rcc *rootCmdConfig) writeDataset(ctx context.Context, location, table string, s *dataset.Dataset) error {
	if table == "" {
		table = defaultTable
	}
	var n int
	var err error
	switch kindOf(location) {
	case sqlite3Source:
		n, err = writeSQLDataset(ctx, sqldataset.SQLite3, location, table, s)
	case postgreSQLSource:
		n, err = writeSQLDataset(ctx, sqldataset.PostgreSQL, location, table, s)
	case mongoDBSource:
		n, err = writeMongoDataset(ctx, location, table, s)
	default:
		err = writeFile(location, s.WriteCSV)
		n = s.Count()
	}
	if err != nil {
		return err
	}
	rcc.Logf("%d rows written", n)
	return nil
}

func writeSQLDataset(ctx context.Context, d sqldataset.Dialect, dsn, table string, s *dataset.Dataset) (int, error) {
	db, err := sqldataset.Open(d, dsn)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	return sqldataset.Write(ctx, db, d, table, s)
}

func writeMongoDataset(ctx context.Context, url, collection string, s *dataset.Dataset) (int, error) {
	session, err := mongodataset.Open(url)
	if err != nil {
		return 0, err
	}
	defer session.Close()
	return mongodataset.Write(ctx, session, collection, s)
}

// writeFile creates the file at path (STDOUT if empty) and writes on it with the given function.
func writeFile(path string, write func(w io.Writer) error) error {
	if path == "" {
		return write(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	return err
}

type modelFormat int

const (
	textModel modelFormat = iota
	jsonModel
	yamlModel
)

func formatOf(path string) modelFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return jsonModel
	case ".yml", ".yaml":
		return yamlModel
	}
	return textModel
}

// writeModel writes the tree onto the file at path in the format given by its extension, STDOUT if empty.
func writeModel(ctx context.Context, path string, t *tree.Tree) error {
	return writeFile(path, func(f io.Writer) error {
		switch formatOf(path) {
		case jsonModel:
			return json.WriteJSONTree(ctx, t, json.NewNodeEncodeDecoder(), f)
		case yamlModel:
			return yaml.WriteYAMLTree(ctx, t, f)
		}
		return text.Write(ctx, t, f)
	})
}

// loadModel reads a tree from the file at path in the format given by its extension.
func loadModel(ctx context.Context, path string) (*tree.Tree, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("reading model from %s: %v", path, err)
	}
	defer f.Close()
	ns := tree.NewMemoryNodeStore()
	var t *tree.Tree
	switch formatOf(path) {
	case jsonModel:
		t = tree.New("", ns, "")
		err = json.ReadJSONTree(ctx, t, json.NewNodeEncodeDecoder(), f)
	case yamlModel:
		t, err = yaml.ReadYAMLTree(ctx, f, ns)
	default:
		t, err = text.Read(ctx, f, ns)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing model from %s: %v", path, err)
	}
	return t, nil
}

/*
nodeStore returns the node store described by location: "memory", "leveldb:<path>"
or a Redis URL (redis://...).
*/
func nodeStore(location string) (tree.NodeStore, error) {
	switch {
	case location == "" || location == "memory":
		return tree.NewMemoryNodeStore(), nil
	case strings.HasPrefix(location, "leveldb:"):
		return ldbstore.Open(strings.TrimPrefix(location, "leveldb:"), json.NewNodeEncodeDecoder())
	case strings.HasPrefix(location, "redis://"):
		rc, err := redisClient(location)
		if err != nil {
			return nil, err
		}
		return redisstore.New(rc, "id3", json.NewNodeEncodeDecoder()), nil
	}
	return nil, fmt.Errorf("unknown node store %q: use memory, leveldb:<path> or a redis:// URL", location)
}

/*
taskQueue returns the queue described by location: "memory" or a Redis URL
(redis://...). The returned function releases the resources of the queue.
*/
func taskQueue(location string) (queue.Queue, func() error, error) {
	switch {
	case location == "" || location == "memory":
		return queue.New(), func() error { return nil }, nil
	case strings.HasPrefix(location, "redis://"):
		rc, err := redisClient(location)
		if err != nil {
			return nil, nil, err
		}
		ted := qjson.New(json.NewNodeEncodeDecoder(), djson.New())
		return redisq.New("id3:queue", rc, ted), rc.Close, nil
	}
	return nil, nil, fmt.Errorf("unknown queue %q: use memory or a redis:// URL", location)
}

func redisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %v", err)
	}
	rc := redis.NewClient(opts)
	if err = rc.Ping().Err(); err != nil {
		rc.Close()
		return nil, fmt.Errorf("connecting to redis: %v", err)
	}
	return rc, nil
}
