package text

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/pbanos/id3"
	"github.com/pbanos/id3/dataset"
	"github.com/pbanos/id3/feature"
	"github.com/pbanos/id3/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weatherCSV = `Outlook,Temperature,Humidity,Windy,Play
Sunny,Hot,High,False,No
Sunny,Hot,High,True,No
Overcast,Hot,High,False,Yes
Rain,Mild,High,False,Yes
Rain,Cool,Normal,False,Yes
Rain,Cool,Normal,True,No
Overcast,Cool,Normal,True,Yes
Sunny,Mild,High,False,No
Sunny,Cool,Normal,False,Yes
Rain,Mild,Normal,False,Yes
Sunny,Mild,Normal,True,Yes
Overcast,Mild,High,True,Yes
Overcast,Hot,Normal,False,Yes
Rain,Mild,High,True,No
`

const weatherModel = `node
Outlook
None
None
[{"Play":{"parent":"Outlook","valueOfParent":"Overcast","value":"Yes"}}]
node
Humidity
Outlook
Sunny
[{"Play":{"parent":"Humidity","valueOfParent":"High","value":"No"}},{"Play":{"parent":"Humidity","valueOfParent":"Normal","value":"Yes"}}]
node
Windy
Outlook
Rain
[{"Play":{"parent":"Windy","valueOfParent":"False","value":"Yes"}},{"Play":{"parent":"Windy","valueOfParent":"True","value":"No"}}]
`

func grow(t *testing.T, csv string) *tree.Tree {
	s, err := dataset.Read(strings.NewReader(csv), "test.csv")
	require.NoError(t, err)
	tr, err := id3.Grow(context.Background(), s, nil)
	require.NoError(t, err)
	return tr
}

func roundTrip(t *testing.T, tr *tree.Tree) (string, *tree.Tree) {
	ctx := context.Background()
	var b bytes.Buffer
	require.NoError(t, Write(ctx, tr, &b))
	decoded, err := Read(ctx, strings.NewReader(b.String()), tree.NewMemoryNodeStore())
	require.NoError(t, err)
	equal, err := tree.Equal(ctx, tr, decoded)
	require.NoError(t, err)
	assert.True(t, equal, "decoded:\n%v\noriginal:\n%v", decoded, tr)
	return b.String(), decoded
}

func TestWriteWeather(t *testing.T) {
	model, _ := roundTrip(t, grow(t, weatherCSV))
	assert.Equal(t, weatherModel, model)
}

func TestRoundTripLeafRoots(t *testing.T) {
	model, decoded := roundTrip(t, grow(t, "A,T\nx,yes\ny,yes\n"))
	assert.Equal(t, "leaf\nT\nNone\nNone\nyes\n", model)
	assert.Equal(t, "T", decoded.Label)

	model, _ = roundTrip(t, grow(t, "A,T\n"))
	assert.Equal(t, "leaf\nT\nNone\nNone\nNone\n", model)
}

func TestRoundTripMajorityLeaf(t *testing.T) {
	model, _ := roundTrip(t, grow(t, "A,B,T\na1,b1,no\na1,b1,yes\na2,b1,yes\n"))
	assert.Equal(t, "node\nA\nNone\nNone\n[{\"T\":{\"parent\":\"A\",\"valueOfParent\":\"a2\",\"value\":\"yes\"}},{\"T\":{\"parent\":\"A\",\"valueOfParent\":\"a1\",\"value\":\"no\"}}]\n", model)
}

// repeatedAttributeTree splits on B under two branches of A and keeps a leaf
// after an internal child:
// A: x -> B (1 -> yes, 2 -> no), y -> B (1 -> no, 2 -> yes), z -> maybe
func repeatedAttributeTree(t *testing.T) *tree.Tree {
	ctx := context.Background()
	ns := tree.NewMemoryNodeStore()
	root := &tree.Node{Attribute: "A"}
	require.NoError(t, ns.Create(ctx, root))
	add := func(parent *tree.Node, c *feature.Criterion, attribute, label string) *tree.Node {
		n := &tree.Node{ParentID: parent.ID, Criterion: c, Attribute: attribute, Label: label}
		require.NoError(t, ns.Create(ctx, n))
		parent.SubtreeIDs = append(parent.SubtreeIDs, n.ID)
		return n
	}
	x := add(root, feature.NewCriterion("A", "x"), "B", "")
	add(x, feature.NewCriterion("B", "1"), "T", "yes")
	add(x, feature.NewCriterion("B", "2"), "T", "no")
	y := add(root, feature.NewCriterion("A", "y"), "B", "")
	add(y, feature.NewCriterion("B", "1"), "T", "no")
	add(y, feature.NewCriterion("B", "2"), "T", "yes")
	add(root, feature.NewCriterion("A", "z"), "T", "maybe")
	return tree.New(root.ID, ns, "T")
}

func TestRoundTripRepeatedAttribute(t *testing.T) {
	ctx := context.Background()
	_, decoded := roundTrip(t, repeatedAttributeTree(t))
	for _, c := range []struct{ a, b, label string }{
		{"x", "1", "yes"},
		{"x", "2", "no"},
		{"y", "1", "no"},
		{"y", "2", "yes"},
		{"z", "1", "maybe"},
	} {
		label, err := decoded.Predict(ctx, dataset.NewSample([]string{"A", "B"}, []string{c.a, c.b}))
		require.NoError(t, err)
		assert.Equal(t, c.label, label)
	}
}

func TestRoundTripNoneAndEmptyValues(t *testing.T) {
	ctx := context.Background()
	model, decoded := roundTrip(t, grow(t, "A,B,T\nNone,b1,x\nNone,b2,y\n,b1,z\n,b2,z\nq,b1,None\n"))
	assert.Equal(t, `node
A
None
None
[{"T":{"parent":"A","valueOfParent":"","value":"z"}},{"T":{"parent":"A","valueOfParent":"q","value":"None"}}]
node
B
A
"None"
[{"T":{"parent":"B","valueOfParent":"b1","value":"x"}},{"T":{"parent":"B","valueOfParent":"b2","value":"y"}}]
`, model)
	for _, c := range []struct{ a, b, label string }{
		{"None", "b2", "y"},
		{"", "b2", "z"},
		{"q", "b2", "None"},
	} {
		label, err := decoded.Predict(ctx, dataset.NewSample([]string{"A", "B"}, []string{c.a, c.b}))
		require.NoError(t, err)
		assert.Equal(t, c.label, label)
	}

	model, decoded = roundTrip(t, grow(t, "A,T\nx,None\ny,None\n"))
	assert.Equal(t, "leaf\nT\nNone\nNone\n\"None\"\n", model)
	label, err := decoded.Predict(ctx, dataset.NewSample([]string{"A"}, []string{"x"}))
	require.NoError(t, err)
	assert.Equal(t, "None", label)
}

// unlabeledAndEmptyTree has an unlabeled leaf on A=None, a split on B under
// A=x and a leaf labeled with the empty string on the empty value of A.
func unlabeledAndEmptyTree(t *testing.T) *tree.Tree {
	ctx := context.Background()
	ns := tree.NewMemoryNodeStore()
	root := &tree.Node{Attribute: "A"}
	require.NoError(t, ns.Create(ctx, root))
	add := func(parent *tree.Node, n *tree.Node) *tree.Node {
		n.ParentID = parent.ID
		require.NoError(t, ns.Create(ctx, n))
		parent.SubtreeIDs = append(parent.SubtreeIDs, n.ID)
		return n
	}
	add(root, &tree.Node{Criterion: feature.NewCriterion("A", "None"), Attribute: "T", Unlabeled: true})
	x := add(root, &tree.Node{Criterion: feature.NewCriterion("A", "x"), Attribute: "B"})
	add(x, &tree.Node{Criterion: feature.NewCriterion("B", "b"), Attribute: "T", Label: "yes"})
	add(x, &tree.Node{Criterion: feature.NewCriterion("B", "c"), Attribute: "T", Label: "no"})
	add(root, &tree.Node{Criterion: feature.NewCriterion("A", ""), Attribute: "T"})
	return tree.New(root.ID, ns, "T")
}

func TestRoundTripUnlabeledAndEmptyLeaves(t *testing.T) {
	ctx := context.Background()
	model, decoded := roundTrip(t, unlabeledAndEmptyTree(t))
	assert.Equal(t, `node
A
None
None
[{"T":{"parent":"A","valueOfParent":"None","value":null}}]
node
B
A
x
[{"T":{"parent":"B","valueOfParent":"b","value":"yes"}},{"T":{"parent":"B","valueOfParent":"c","value":"no"}}]
leaf
T
A
""
""
`, model)

	label, err := decoded.Predict(ctx, dataset.NewSample([]string{"A"}, []string{""}))
	require.NoError(t, err)
	assert.Equal(t, "", label)
	_, err = decoded.Predict(ctx, dataset.NewSample([]string{"A"}, []string{"None"}))
	assert.True(t, errors.Is(err, tree.ErrUnresolvedPrediction))
}

func TestReadMalformed(t *testing.T) {
	for name, c := range map[string]struct {
		model string
		line  int
	}{
		"empty":             {"", 0},
		"bad marker":        {"nodes\nA\nNone\nNone\n[]\n", 1},
		"truncated":         {"node\nA\nNone\n", 3},
		"bad children":      {"node\nA\nNone\nNone\n[{\"T\":\n", 5},
		"half parent":       {"node\nA\nNone\nx\n[]\n", 5},
		"orphan":            {weatherModel + "node\nB\nC\nd\n[]\n", 20},
		"second root":       {weatherModel + "node\nB\nNone\nNone\n[]\n", 20},
		"child of other":    {"node\nA\nNone\nNone\n[{\"T\":{\"parent\":\"B\",\"valueOfParent\":\"x\",\"value\":\"y\"}}]\n", 5},
		"mixed targets":     {"node\nA\nNone\nNone\n[{\"T\":{\"parent\":\"A\",\"valueOfParent\":\"x\",\"value\":\"y\"}},{\"U\":{\"parent\":\"A\",\"valueOfParent\":\"z\",\"value\":\"y\"}}]\n", 5},
		"no target":         {"node\nA\nNone\nNone\n[]\n", 5},
		"attribute missing": {"node\nNone\nNone\nNone\n[]\n", 5},
		"bad quoting":       {"node\n\"A\nNone\nNone\n[]\n", 5},
	} {
		_, err := Read(context.Background(), strings.NewReader(c.model), tree.NewMemoryNodeStore())
		var mfe *tree.ModelFormatError
		require.True(t, errors.As(err, &mfe), "%s: %v", name, err)
		assert.Equal(t, c.line, mfe.Line, name)
	}
}
