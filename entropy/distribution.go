/*
Package entropy computes frequency distributions of categorical values and
the information-theoretic measures ID3 uses to rank attributes: entropy,
average conditional entropy and information gain.

Distributions iterate their values in the order they were first seen, so
every sum computed over them is performed in a deterministic order.
*/
package entropy

import (
	"fmt"
	"math"
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
	"gonum.org/v1/gonum/stat"
)

/*
Distribution is a frequency distribution: a mapping from a categorical
value to the number of times it occurs.
*/
type Distribution struct {
	counts *linkedhashmap.Map
	total  int
}

// NewDistribution returns an empty distribution.
func NewDistribution() *Distribution {
	return &Distribution{counts: linkedhashmap.New()}
}

// Add counts one more occurrence of the given value.
func (d *Distribution) Add(value string) {
	d.counts.Put(value, d.Count(value)+1)
	d.total++
}

// Count returns the number of occurrences of the given value.
func (d *Distribution) Count(value string) int {
	c, ok := d.counts.Get(value)
	if !ok {
		return 0
	}
	return c.(int)
}

// Values returns the distinct values in the order they were first seen.
func (d *Distribution) Values() []string {
	keys := d.counts.Keys()
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = k.(string)
	}
	return values
}

// Len returns the number of distinct values.
func (d *Distribution) Len() int {
	return d.counts.Size()
}

// Total returns the number of occurrences of all values.
func (d *Distribution) Total() int {
	return d.total
}

// Pure returns whether the distribution holds exactly one distinct value.
func (d *Distribution) Pure() bool {
	return d.Len() == 1
}

/*
Majority returns the most frequent value of the distribution. Ties go to the
value seen first. It returns "" for an empty distribution.
*/
func (d *Distribution) Majority() string {
	var best string
	bestCount := 0
	for _, v := range d.Values() {
		if c := d.Count(v); c > bestCount {
			best, bestCount = v, c
		}
	}
	return best
}

/*
Entropy returns the Shannon entropy, in bits, of the distribution. It is 0
for empty and single-valued distributions.
*/
func (d *Distribution) Entropy() float64 {
	if d.total == 0 {
		return 0
	}
	values := d.Values()
	probs := make([]float64, len(values))
	for i, v := range values {
		probs[i] = float64(d.Count(v)) / float64(d.total)
	}
	return math.Max(0, stat.Entropy(probs)/math.Ln2)
}

func (d *Distribution) String() string {
	parts := make([]string, 0, d.Len())
	for _, v := range d.Values() {
		parts = append(parts, fmt.Sprintf("%s:%d", v, d.Count(v)))
	}
	return "{" + strings.Join(parts, " ") + "}"
}

/*
ConditionalDistribution maps every value of an attribute to the
distribution of the target attribute over the rows holding that value.
*/
type ConditionalDistribution struct {
	byValue *linkedhashmap.Map
	total   int
}

func newConditionalDistribution() *ConditionalDistribution {
	return &ConditionalDistribution{byValue: linkedhashmap.New()}
}

func (cd *ConditionalDistribution) add(value, target string) {
	d := cd.Given(value)
	if d == nil {
		d = NewDistribution()
		cd.byValue.Put(value, d)
	}
	d.Add(target)
	cd.total++
}

// Values returns the distinct attribute values in the order they were first seen.
func (cd *ConditionalDistribution) Values() []string {
	keys := cd.byValue.Keys()
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = k.(string)
	}
	return values
}

/*
Given returns the distribution of the target attribute restricted to the
rows holding the given attribute value, or nil if no row holds it.
*/
func (cd *ConditionalDistribution) Given(value string) *Distribution {
	d, ok := cd.byValue.Get(value)
	if !ok {
		return nil
	}
	return d.(*Distribution)
}

// Total returns the number of rows counted.
func (cd *ConditionalDistribution) Total() int {
	return cd.total
}
