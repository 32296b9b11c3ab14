package dataset

import (
	"fmt"

	"github.com/pbanos/id3/feature"
)

/*
Sample represents an item to process or from which to learn how to process them.

Its ValueFor method returns the value of the sample corresponding to the attribute
passed as parameter.
*/
type Sample interface {
	feature.Sample
}

type sample struct {
	columnIndex map[string]int
	values      []string
}

/*
NewSample takes a slice of column names and a slice of values aligned with
them and returns a sample.
*/
func NewSample(columns, values []string) Sample {
	ci := make(map[string]int, len(columns))
	for i, c := range columns {
		if _, ok := ci[c]; !ok {
			ci[c] = i
		}
	}
	return &sample{ci, values}
}

func (s *sample) ValueFor(attribute string) (string, error) {
	i, ok := s.columnIndex[attribute]
	if !ok || i >= len(s.values) {
		return "", &AttributeNotFoundError{Attribute: attribute}
	}
	return s.values[i], nil
}

func (s *sample) String() string {
	return fmt.Sprintf("%v", s.values)
}
