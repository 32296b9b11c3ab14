package inputsample

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/pbanos/id3/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingRequester struct {
	requested []string
	rejected  []string
}

func (rr *recordingRequester) RequestValueFor(attribute string, values []string) error {
	rr.requested = append(rr.requested, attribute)
	return nil
}

func (rr *recordingRequester) RejectValueFor(attribute string, values []string, value string) error {
	rr.rejected = append(rr.rejected, fmt.Sprintf("%s=%s", attribute, value))
	return nil
}

var values = map[string][]string{
	"Outlook":  {"Sunny", "Overcast", "Rain"},
	"Humidity": {"High", "Normal"},
}

func TestValueForReadsAcceptedValues(t *testing.T) {
	rr := &recordingRequester{}
	s := New(strings.NewReader("Foggy\nSunny\nHigh\n"), values, rr, "?")

	v, err := s.ValueFor("Outlook")
	require.NoError(t, err)
	assert.Equal(t, "Sunny", v)
	v, err = s.ValueFor("Outlook")
	require.NoError(t, err)
	assert.Equal(t, "Sunny", v)
	v, err = s.ValueFor("Humidity")
	require.NoError(t, err)
	assert.Equal(t, "High", v)

	assert.Equal(t, []string{"Outlook", "Humidity"}, rr.requested)
	assert.Equal(t, []string{"Outlook=Foggy"}, rr.rejected)
}

func TestValueForUndefined(t *testing.T) {
	s := New(strings.NewReader("?\n"), values, &recordingRequester{}, "?")
	var anfe *dataset.AttributeNotFoundError
	_, err := s.ValueFor("Outlook")
	require.True(t, errors.As(err, &anfe))
	_, err = s.ValueFor("Outlook")
	require.True(t, errors.As(err, &anfe))
	_, err = s.ValueFor("Windy")
	require.True(t, errors.As(err, &anfe))
	assert.Equal(t, "Windy", anfe.Attribute)
}

func TestValueForEOF(t *testing.T) {
	s := New(strings.NewReader("Foggy\n"), values, &recordingRequester{}, "?")
	_, err := s.ValueFor("Outlook")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "EOF")
}

type refusingRequester struct{ recordingRequester }

func (refusingRequester) RejectValueFor(attribute string, values []string, value string) error {
	return errors.New("giving up")
}

func TestValueForRejectionError(t *testing.T) {
	s := New(strings.NewReader("Foggy\nSunny\n"), values, &refusingRequester{}, "?")
	_, err := s.ValueFor("Outlook")
	assert.EqualError(t, err, "giving up")
}
