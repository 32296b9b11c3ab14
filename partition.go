package id3

import (
	"fmt"
	"strconv"

	"github.com/emirpasic/gods/sets/hashset"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/entropy"
)

const (
	// gains closer to 0 than this are rounding noise and count as 0
	gainNoise = 1e-12
	// gains below minus this are not rounding noise but a computation error
	negativeGainTolerance = 1e-9
)

/*
AttributeGain holds the information gain obtained splitting a dataset on an
attribute.
*/
type AttributeGain struct {
	Attribute string
	Gain      float64
}

/*
Gains is the list of information gains computed on a round of attribute
selection, in the order of the dataset columns.
*/
type Gains []AttributeGain

// Names returns the attributes of the gains in order.
func (g Gains) Names() []string {
	names := make([]string, len(g))
	for i, ag := range g {
		names[i] = ag.Attribute
	}
	return names
}

// Formatted returns the gains in order formatted with 3 decimals.
func (g Gains) Formatted() []string {
	formatted := make([]string, len(g))
	for i, ag := range g {
		formatted[i] = strconv.FormatFloat(ag.Gain, 'f', 3, 64)
	}
	return formatted
}

// Get returns the gain for the given attribute and whether it was computed.
func (g Gains) Get(attribute string) (float64, bool) {
	for _, ag := range g {
		if ag.Attribute == attribute {
			return ag.Gain, true
		}
	}
	return 0, false
}

/*
ChooseBestAttribute takes a dataset, the name of the target attribute and the
names of the attributes that cannot be selected and returns the attribute that
yields the highest information gain on the target along with the gains of every
selectable attribute.

Columns are evaluated left to right and an attribute is only selected when its
gain exceeds the best so far, which starts at 0, by more than 1e-12. Therefore
gains within 1e-12 of each other tie, ties go to the leftmost attribute and an
attribute whose gain is 0 is never selected. Gains below 1e-12 are reported as
0. When no attribute qualifies the returned name is "". The target is always
excluded.

It returns an AttributeNotFoundError if the dataset has no target column and
an error if a gain is below -1e-9.
*/
func ChooseBestAttribute(s *dataset.Dataset, target string, excluded []string) (string, Gains, error) {
	targetValues, err := s.ColumnValues(target)
	if err != nil {
		return "", nil, err
	}
	excludedSet := hashset.New()
	excludedSet.Add(target)
	for _, e := range excluded {
		excludedSet.Add(e)
	}
	targetEntropy := entropy.Entropy(targetValues)
	var best string
	var bestGain float64
	gains := Gains{}
	for _, attribute := range s.Columns() {
		if excludedSet.Contains(attribute) {
			continue
		}
		values, err := s.ColumnValues(attribute)
		if err != nil {
			return "", nil, err
		}
		avg, err := entropy.AverageConditionalEntropy(values, targetValues)
		if err != nil {
			return "", nil, fmt.Errorf("computing gain for %s: %v", attribute, err)
		}
		gain := entropy.InformationGain(targetEntropy, avg)
		if gain < -negativeGainTolerance {
			return "", nil, fmt.Errorf("computing gain for %s: negative information gain %v", attribute, gain)
		}
		if gain < gainNoise {
			gain = 0
		}
		if gain-bestGain > gainNoise {
			best, bestGain = attribute, gain
		}
		gains = append(gains, AttributeGain{attribute, gain})
	}
	return best, gains, nil
}

/*
Partition represents the split of a dataset on an attribute: for every value
of the attribute, the distribution of the target attribute over the rows
holding it.
*/
type Partition struct {
	Attribute    string
	distribution *entropy.ConditionalDistribution
}

/*
NewPartition takes a dataset, the attribute to split it on and the target
attribute and returns the partition of the dataset on the attribute, or an
AttributeNotFoundError if either attribute is not a column of the dataset.
*/
func NewPartition(s *dataset.Dataset, attribute, target string) (*Partition, error) {
	values, err := s.ColumnValues(attribute)
	if err != nil {
		return nil, err
	}
	targetValues, err := s.ColumnValues(target)
	if err != nil {
		return nil, err
	}
	cd, err := entropy.ConditionalCounts(values, targetValues)
	if err != nil {
		return nil, err
	}
	return &Partition{attribute, cd}, nil
}

/*
Leaves returns the attribute values whose rows all share the same target
label, in the order they were first seen, along with those labels.
*/
func (p *Partition) Leaves() (values []string, labels []string) {
	for _, v := range p.distribution.Values() {
		if d := p.distribution.Given(v); d.Pure() {
			values = append(values, v)
			labels = append(labels, d.Majority())
		}
	}
	return values, labels
}

/*
Branches returns the attribute values whose rows hold more than one target
label, in the order they were first seen. Each needs to be split further.
*/
func (p *Partition) Branches() []string {
	var values []string
	for _, v := range p.distribution.Values() {
		if !p.distribution.Given(v).Pure() {
			values = append(values, v)
		}
	}
	return values
}
