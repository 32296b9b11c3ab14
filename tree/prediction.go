package tree

import (
	"fmt"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrUnresolvedPrediction is the error wrapped by the errors returned by the
Predict method of a tree when no path on the tree matches the sample, as
opposed to cases where the tree cannot be read for example.
*/
const ErrUnresolvedPrediction = PredictionError("no path in the tree matches the sample")

/*
ErrNilTree is the error returned when attempting to predict with a nil tree.
*/
const ErrNilTree = PredictionError("nil tree cannot predict samples")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
UnresolvedPredictionError is returned by the Predict method of a tree when
the walk from the root stops before reaching a labeled leaf. Attribute
and Value identify the node where it stopped and the value the sample
holds for its attribute. Leaf is set when the walk stopped at a leaf
without label.
*/
type UnresolvedPredictionError struct {
	NodeID    string
	Attribute string
	Value     string
	Leaf      bool
	Cause     error
}

func (upe *UnresolvedPredictionError) Error() string {
	if upe.Cause != nil {
		return fmt.Sprintf("%v: node %s on %s: %v", ErrUnresolvedPrediction, upe.NodeID, upe.Attribute, upe.Cause)
	}
	if upe.Leaf {
		return fmt.Sprintf("%v: node %s has no label", ErrUnresolvedPrediction, upe.NodeID)
	}
	return fmt.Sprintf("%v: node %s has no branch for %s %q", ErrUnresolvedPrediction, upe.NodeID, upe.Attribute, upe.Value)
}

// Unwrap returns ErrUnresolvedPrediction so callers can use errors.Is
func (upe *UnresolvedPredictionError) Unwrap() error {
	return ErrUnresolvedPrediction
}

/*
ModelFormatError is returned by the model codecs when the persisted form
of a tree cannot be decoded.
*/
type ModelFormatError struct {
	// Line is the 1-based line where the problem was found, 0 if unknown
	Line int
	Msg  string
}

func (mfe *ModelFormatError) Error() string {
	if mfe.Line == 0 {
		return fmt.Sprintf("malformed model: %s", mfe.Msg)
	}
	return fmt.Sprintf("malformed model: line %d: %s", mfe.Line, mfe.Msg)
}
