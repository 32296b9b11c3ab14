/*
Package feature defines the criteria that constrain the attributes of a
sample and the Sample contract used to evaluate them.
*/
package feature

import (
	"fmt"
)

/*
Sample is an interface for something that can satisfy a Criterion.

Its ValueFor method returns the value corresponding to the attribute
passed as parameter, or an error if the sample holds no value for it.
*/
type Sample interface {
	ValueFor(attribute string) (string, error)
}

/*
Criterion represents a constraint on a discrete attribute: the value
it must take. On a tree it is the edge that leads from a node splitting
on Attribute to one of its children.
*/
type Criterion struct {
	Attribute string
	Value     string
}

/*
NewCriterion takes an attribute name and a value and returns a criterion
satisfied by samples whose value for the attribute equals the given one.
*/
func NewCriterion(attribute, value string) *Criterion {
	return &Criterion{Attribute: attribute, Value: value}
}

/*
SatisfiedBy receives a sample as parameter and returns a boolean indicating if the
sample satisfies the criterion. It returns an error if the sample cannot provide
a value for the criterion attribute.
*/
func (c *Criterion) SatisfiedBy(s Sample) (bool, error) {
	v, err := s.ValueFor(c.Attribute)
	if err != nil {
		return false, err
	}
	return v == c.Value, nil
}

func (c *Criterion) String() string {
	return fmt.Sprintf("%s is %s", c.Attribute, c.Value)
}
