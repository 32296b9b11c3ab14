/*
Package mongodataset reads and writes datasets from and to MongoDB
collections. Every document of a collection holds one sample, with a field
per attribute.
*/
package mongodataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/pbanos/id3/dataset"
	mgo "gopkg.in/mgo.v2"
	"gopkg.in/mgo.v2/bson"
)

const idField = "_id"

/*
Open takes a MongoDB URL and returns a session on it or an error if it
fails to connect. Collections are taken from the database on the URL.
*/
func Open(url string) (*mgo.Session, error) {
	session, err := mgo.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("connecting to mongodb: %v", err)
	}
	return session, nil
}

/*
Load takes a context, a MongoDB session and the name of a collection on its
default database and returns a dataset with every document of the
collection. The fields of the first document, except _id, define the
columns in their stored order, so its last field is the target attribute.
Values are converted to their string form. A *dataset.FormatError is
returned if a document lacks one of the columns.
*/
func Load(ctx context.Context, session *mgo.Session, collection string) (*dataset.Dataset, error) {
	iter := session.DB("").C(collection).Find(nil).Iter()
	defer iter.Close()
	var columns []string
	var rows [][]string
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var doc bson.D
		if !iter.Next(&doc) {
			break
		}
		fields := doc.Map()
		delete(fields, idField)
		if columns == nil {
			for _, e := range doc {
				if e.Name != idField {
					columns = append(columns, e.Name)
				}
			}
		}
		if len(fields) != len(columns) {
			return nil, &dataset.FormatError{File: collection, Line: len(rows) + 1, Msg: fmt.Sprintf("expected %d fields, found %d", len(columns), len(fields))}
		}
		row := make([]string, len(columns))
		for i, c := range columns {
			v, ok := fields[c]
			if !ok || v == nil {
				return nil, &dataset.FormatError{File: collection, Line: len(rows) + 1, Msg: fmt.Sprintf("no value for %s", c)}
			}
			row[i] = fmt.Sprintf("%v", v)
		}
		rows = append(rows, row)
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("reading collection %s: %v", collection, err)
	}
	if columns == nil {
		return nil, &dataset.FormatError{File: collection, Line: 1, Msg: "collection has no documents"}
	}
	return dataset.New(columns, rows)
}

/*
Write takes a context, a MongoDB session, the name of a collection on its
default database and a dataset and inserts every row of the dataset as a
document, keeping the order of the columns. It returns the number of
inserted documents or an error.
*/
func Write(ctx context.Context, session *mgo.Session, collection string, s *dataset.Dataset) (int, error) {
	for _, c := range s.Columns() {
		if c == idField {
			return 0, fmt.Errorf("invalid attribute name %q: reserved collection field", idField)
		}
		if strings.ContainsAny(c, ".$") {
			return 0, fmt.Errorf("invalid attribute name %q: contains reserved characters %q or %q", c, ".", "$")
		}
	}
	docs := make([]interface{}, 0, s.Count())
	for _, row := range s.Rows() {
		doc := make(bson.D, 0, len(row))
		for i, c := range s.Columns() {
			doc = append(doc, bson.DocElem{Name: c, Value: row[i]})
		}
		docs = append(docs, doc)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(docs) == 0 {
		return 0, nil
	}
	err := session.DB("").C(collection).Insert(docs...)
	if err != nil {
		return 0, fmt.Errorf("inserting documents on collection %s: %v", collection, err)
	}
	return len(docs), nil
}
