package dataset

import "fmt"

/*
FormatError is returned when a data source cannot be interpreted as a
dataset: it lacks a header or one of its rows does not have exactly one
value per column.
*/
type FormatError struct {
	// File identifies the source, it may be empty
	File string
	// Line is the 1-based line (or record) number of the offending record
	Line int
	Msg  string
}

func (fe *FormatError) Error() string {
	if fe.File == "" {
		return fmt.Sprintf("line %d: %s", fe.Line, fe.Msg)
	}
	return fmt.Sprintf("%s: line %d: %s", fe.File, fe.Line, fe.Msg)
}

/*
AttributeNotFoundError is returned when an attribute is requested
from a dataset or sample that has no column with that name.
*/
type AttributeNotFoundError struct {
	Attribute string
}

func (anfe *AttributeNotFoundError) Error() string {
	return fmt.Sprintf("attribute %q not found", anfe.Attribute)
}
