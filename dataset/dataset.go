/*
Package dataset provides the in-memory table of categorical training data
from which trees are grown: a header of column names, whose last entry is
the target attribute, and the rows read after it.
*/
package dataset

import (
	"fmt"
	"strings"
)

/*
Dataset represents a collection of rows with a value for every column.

It keeps a row-major view of the data along with a column-major index
from attribute name to the values of that column, aligned by row
position. Row order is the order of the source and carries no meaning.
*/
type Dataset struct {
	columns     []string
	rows        [][]string
	columnIndex map[string]int
	columnCache map[string][]string
}

/*
New takes a slice of column names and a slice of rows and returns a dataset
built with them or an error. A FormatError is returned if there are no columns,
if a column name is repeated or if a row does not have exactly one value per
column. The rows are copied.
*/
func New(columns []string, rows [][]string) (*Dataset, error) {
	if len(columns) == 0 {
		return nil, &FormatError{Line: 1, Msg: "missing header"}
	}
	if err := checkColumns(columns); err != nil {
		return nil, err
	}
	s := newDataset(columns)
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, &FormatError{Line: i + 2, Msg: fmt.Sprintf("expected %d fields, found %d", len(columns), len(row))}
		}
		s.rows = append(s.rows, append([]string(nil), row...))
	}
	return s, nil
}

// checkColumns returns a FormatError on line 1 if a column name is repeated.
func checkColumns(columns []string) *FormatError {
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if seen[c] {
			return &FormatError{Line: 1, Msg: fmt.Sprintf("duplicate column %q", c)}
		}
		seen[c] = true
	}
	return nil
}

func newDataset(columns []string) *Dataset {
	s := &Dataset{
		columns:     append([]string(nil), columns...),
		columnIndex: make(map[string]int, len(columns)),
		columnCache: make(map[string][]string, len(columns)),
	}
	for i, c := range columns {
		s.columnIndex[c] = i
	}
	return s
}

// Columns returns the names of the columns of the dataset in order.
func (s *Dataset) Columns() []string {
	return s.columns
}

// Target returns the name of the last column, the attribute to predict.
func (s *Dataset) Target() string {
	return s.columns[len(s.columns)-1]
}

// Rows returns the rows of the dataset. Callers must not modify them.
func (s *Dataset) Rows() [][]string {
	return s.rows
}

// Count returns the number of rows in the dataset.
func (s *Dataset) Count() int {
	return len(s.rows)
}

// Row returns the i-th row of the dataset.
func (s *Dataset) Row(i int) []string {
	return s.rows[i]
}

// HasColumn returns whether the dataset has a column with the given name.
func (s *Dataset) HasColumn(name string) bool {
	_, ok := s.columnIndex[name]
	return ok
}

/*
ColumnValues takes the name of a column and returns the values of that
column for every row, in row order. It returns an AttributeNotFoundError
if the dataset has no such column.
*/
func (s *Dataset) ColumnValues(name string) ([]string, error) {
	if values, ok := s.columnCache[name]; ok {
		return values, nil
	}
	i, ok := s.columnIndex[name]
	if !ok {
		return nil, &AttributeNotFoundError{Attribute: name}
	}
	values := make([]string, len(s.rows))
	for r, row := range s.rows {
		values[r] = row[i]
	}
	s.columnCache[name] = values
	return values, nil
}

/*
FilterRows takes an attribute name and a value and returns a new dataset
with the same columns and only the rows whose value for the attribute
equals the given one. Rows are copied so the result shares no data with
the receiver. It returns an AttributeNotFoundError if the dataset has no
such column.
*/
func (s *Dataset) FilterRows(attribute, value string) (*Dataset, error) {
	i, ok := s.columnIndex[attribute]
	if !ok {
		return nil, &AttributeNotFoundError{Attribute: attribute}
	}
	ns := newDataset(s.columns)
	for _, row := range s.rows {
		if row[i] == value {
			ns.rows = append(ns.rows, append([]string(nil), row...))
		}
	}
	return ns, nil
}

/*
Lines returns the header and the rows of the dataset as comma-separated
lines, the same way they are read from a CSV file.
*/
func (s *Dataset) Lines() []string {
	lines := make([]string, 0, len(s.rows)+1)
	lines = append(lines, strings.Join(s.columns, separator))
	for _, row := range s.rows {
		lines = append(lines, strings.Join(row, separator))
	}
	return lines
}

/*
Samples returns the rows of the dataset as samples whose values can be
requested by column name.
*/
func (s *Dataset) Samples() []Sample {
	samples := make([]Sample, len(s.rows))
	for i := range s.rows {
		samples[i] = s.Sample(i)
	}
	return samples
}

// Sample returns the i-th row of the dataset as a Sample.
func (s *Dataset) Sample(i int) Sample {
	return &sample{columnIndex: s.columnIndex, values: s.rows[i]}
}

func (s *Dataset) String() string {
	return fmt.Sprintf("{Dataset %d columns, %d rows}", len(s.columns), len(s.rows))
}
