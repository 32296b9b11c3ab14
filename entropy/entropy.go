package entropy

import "fmt"

// ValueCounts returns the frequency distribution of the given values.
func ValueCounts(values []string) *Distribution {
	d := NewDistribution()
	for _, v := range values {
		d.Add(v)
	}
	return d
}

/*
Entropy returns the Shannon entropy in bits of the distribution of the given
values: -Σ (n_v/N) log2(n_v/N) over every distinct value v with n_v
occurrences among N values. It is 0 for empty or constant columns.
*/
func Entropy(values []string) float64 {
	return ValueCounts(values).Entropy()
}

/*
ConditionalCounts takes the values of an attribute and the values of the
target attribute, aligned by row, and returns for every attribute value the
distribution of the target over the rows holding it. It returns an error if
the columns have different lengths.
*/
func ConditionalCounts(attribute, target []string) (*ConditionalDistribution, error) {
	if len(attribute) != len(target) {
		return nil, fmt.Errorf("conditional counts: attribute has %d values but target has %d", len(attribute), len(target))
	}
	cd := newConditionalDistribution()
	for i, v := range attribute {
		cd.add(v, target[i])
	}
	return cd, nil
}

/*
AverageConditionalEntropy returns the entropy of the target given the
attribute: the sum over the attribute values of the proportion of rows
holding the value times the entropy of the target over those rows. It is 0
for empty columns.
*/
func AverageConditionalEntropy(attribute, target []string) (float64, error) {
	cd, err := ConditionalCounts(attribute, target)
	if err != nil {
		return 0, err
	}
	return cd.AverageEntropy(), nil
}

// AverageEntropy returns the weighted entropy of the target given the attribute.
func (cd *ConditionalDistribution) AverageEntropy() float64 {
	if cd.total == 0 {
		return 0
	}
	var result float64
	for _, v := range cd.Values() {
		d := cd.Given(v)
		result += float64(d.Total()) / float64(cd.total) * d.Entropy()
	}
	return result
}

/*
InformationGain returns the reduction of entropy achieved by splitting on an
attribute: the entropy of the target minus its average conditional entropy.
Conditioning never increases entropy, so for real data the result is never
negative beyond floating point rounding.
*/
func InformationGain(entropyOfTarget, averageConditionalEntropy float64) float64 {
	return entropyOfTarget - averageConditionalEntropy
}
