/*
Package inputsample provides an implementation of dataset.Sample that is read
from an io.Reader.
*/
package inputsample

import (
	"bufio"
	"fmt"
	"io"

	"github.com/pbanos/id3/dataset"
)

/*
readSample represents a sample whose attribute values
are retrieved from a reader. A value will be
requested using a FeatureValueRequester before reading it.
*/
type readSample struct {
	obtainedValues        map[string]string
	undefined             map[string]bool
	undefinedValue        string
	scanner               *bufio.Scanner
	featureValueRequester FeatureValueRequester
	values                map[string][]string
}

/*
FeatureValueRequester represents a way to ask
for attribute values and reject the given values.
*/
type FeatureValueRequester interface {
	RequestValueFor(attribute string, values []string) error
	RejectValueFor(attribute string, values []string, value string) error
}

/*
New takes an io.Reader, the accepted values of every attribute, a
FeatureValueRequester and an undefinedValue coding string
and returns a Sample.

The returned Sample ValueFor method reads attribute values first
requesting them with the given FeatureValueRequester and
then reading them from the reader. Values are only requested
the first time they are needed.

Each value is expected on its own line. Lines will be read from
the reader until one holding an accepted value for the attribute
is found, rejecting the others with the FeatureValueRequester's
RejectValueFor method. A line holding the undefinedValue string
leaves the attribute undefined.

Asking for an undefined attribute or one without accepted values
returns a *dataset.AttributeNotFoundError.
*/
func New(r io.Reader, values map[string][]string, featureValueRequester FeatureValueRequester, undefinedValue string) dataset.Sample {
	return &readSample{
		obtainedValues:        make(map[string]string),
		undefined:             make(map[string]bool),
		undefinedValue:        undefinedValue,
		scanner:               bufio.NewScanner(r),
		featureValueRequester: featureValueRequester,
		values:                values,
	}
}

func (rs *readSample) ValueFor(attribute string) (string, error) {
	if value, ok := rs.obtainedValues[attribute]; ok {
		return value, nil
	}
	accepted := rs.values[attribute]
	if rs.undefined[attribute] || len(accepted) == 0 {
		return "", &dataset.AttributeNotFoundError{Attribute: attribute}
	}
	err := rs.featureValueRequester.RequestValueFor(attribute, accepted)
	if err != nil {
		return "", err
	}
	for rs.scanner.Scan() {
		line := rs.scanner.Text()
		if line == rs.undefinedValue {
			rs.undefined[attribute] = true
			return "", &dataset.AttributeNotFoundError{Attribute: attribute}
		}
		for _, v := range accepted {
			if v == line {
				rs.obtainedValues[attribute] = v
				return v, nil
			}
		}
		err = rs.featureValueRequester.RejectValueFor(attribute, accepted, line)
		if err != nil {
			return "", err
		}
	}
	err = rs.scanner.Err()
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("EOF when requesting value for %s", attribute)
}

func (rs *readSample) String() string {
	return fmt.Sprintf("%v", rs.obtainedValues)
}
