package dataset

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

const separator = ","

/*
Read takes an io.Reader for a comma-separated stream and a name to identify it
in errors and returns the dataset parsed from it or an error.

The first line is expected to hold the column names, the last of them being
the target attribute. Every other line is a row that must have exactly one
value per column. Values are split on every comma: there is no quoting or
escaping. Trailing carriage returns and blank lines at the end of the stream
are ignored.
*/
func Read(reader io.Reader, name string) (*Dataset, error) {
	var s *Dataset
	err := ReadByRow(reader, name, func(header []string) error {
		s = newDataset(header)
		return nil
	}, func(_ int, row []string) (bool, error) {
		s.rows = append(s.rows, row)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return s, nil
}

/*
ReadByRow takes an io.Reader for a comma-separated stream, a name to identify it
in errors, a function to receive the header and a lambda function on an integer
and a row. It parses the rows from the reader and for each it calls the lambda
function with the row index and the row. If the lambda function returns true, it
will continue processing the next row, otherwise it will stop. An error is
returned if something goes wrong when reading the stream, if a column name is
repeated on the header or if a row does not have as many values as the header.
*/
func ReadByRow(reader io.Reader, name string, header func([]string) error, lambda func(int, []string) (bool, error)) error {
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	var columns []string
	var pendingBlanks int
	index := 0
	for l := 1; scanner.Scan(); l++ {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if columns == nil {
			if line == "" {
				return &FormatError{File: name, Line: l, Msg: "missing header"}
			}
			columns = strings.Split(line, separator)
			if fe := checkColumns(columns); fe != nil {
				fe.File = name
				return fe
			}
			if err := header(columns); err != nil {
				return err
			}
			continue
		}
		if line == "" {
			pendingBlanks++
			continue
		}
		if pendingBlanks > 0 {
			return &FormatError{File: name, Line: l - pendingBlanks, Msg: fmt.Sprintf("expected %d fields, found an empty line", len(columns))}
		}
		row := strings.Split(line, separator)
		if len(row) != len(columns) {
			return &FormatError{File: name, Line: l, Msg: fmt.Sprintf("expected %d fields, found %d", len(columns), len(row))}
		}
		ok, err := lambda(index, row)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		index++
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %v", name, err)
	}
	if columns == nil {
		return &FormatError{File: name, Line: 1, Msg: "missing header"}
	}
	return nil
}

/*
Load takes a filepath string, opens the file to which it points and uses Read
to return the dataset parsed from it or an error. If the filepath is "", the
dataset is read from os.Stdin.
*/
func Load(filepath string) (*Dataset, error) {
	var f *os.File
	var err error
	name := filepath
	if filepath == "" {
		f = os.Stdin
		name = "STDIN"
	} else {
		f, err = os.Open(filepath)
		if err != nil {
			return nil, fmt.Errorf("opening dataset: %v", err)
		}
		defer f.Close()
	}
	return Read(f, name)
}

/*
WriteCSV writes the header and rows of the dataset onto the given io.Writer as
comma-separated lines. It returns an error if the writing fails.
*/
func (s *Dataset) WriteCSV(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, line := range s.Lines() {
		if _, err := bw.WriteString(line + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
