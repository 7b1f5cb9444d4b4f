package tree_test

import (
	"errors"
	"io/fs"
	"slices"
	"testing"

	"go.followtheprocess.codes/pmx/internal/tree"
	"go.followtheprocess.codes/test"
)

func sample() *tree.Group {
	root := &tree.Group{Meta: tree.Meta{ID: "controller_1", Name: "Sample"}}
	folder := &tree.Group{Meta: tree.Meta{ID: "controller_2", Name: "Folder"}}
	folder.Add(&tree.Request{Meta: tree.Meta{ID: "controller_3", Name: "Get Pet"}, Method: "GET", URL: "${base}/pet"})
	folder.Add(&tree.Request{Meta: tree.Meta{ID: "controller_4", Name: "Add Pet"}, Method: "POST", URL: "${base}/pet"})
	root.Add(folder)
	root.Add(&tree.Request{Meta: tree.Meta{ID: "controller_5", Name: "Health"}, Method: "GET", URL: "/health"})

	return root
}

func TestAddSetsParent(t *testing.T) {
	root := sample()

	folder := root.Groups()[0]
	test.Equal(t, folder.Parent, "controller_1")

	for _, child := range folder.Children {
		test.Equal(t, child.Info().Parent, "controller_2")
	}
}

func TestRequests(t *testing.T) {
	requests := sample().Requests()

	var names []string
	for _, request := range requests {
		names = append(names, request.Name)
	}

	test.True(t, slices.Equal(names, []string{"Get Pet", "Add Pet", "Health"}), test.Context("got %v", names))
}

func TestWalkDepth(t *testing.T) {
	depths := make(map[string]int)

	tree.Walk(sample(), func(node tree.Node, depth int) {
		depths[node.Info().Name] = depth
	})

	test.Equal(t, depths["Sample"], 0)
	test.Equal(t, depths["Folder"], 1)
	test.Equal(t, depths["Get Pet"], 2)
	test.Equal(t, depths["Health"], 1)
}

func TestString(t *testing.T) {
	want := "Sample/\n  Folder/\n    GET Get Pet (${base}/pet)\n    POST Add Pet (${base}/pet)\n  GET Health (/health)\n"
	test.Diff(t, sample().String(), want)
}

func TestCounter(t *testing.T) {
	counter := tree.NewCounter()
	test.Equal(t, counter.Next(), "controller_1")
	test.Equal(t, counter.Next(), "controller_2")

	// Counters are per conversion, a new one starts again
	test.Equal(t, tree.NewCounter().Next(), "controller_1")

	var zero tree.Counter
	test.Equal(t, zero.Next(), "controller_1")
}

func TestQuery(t *testing.T) {
	tests := []struct {
		name    string     // Name of the test case
		query   tree.Query // Query under test
		encoded string     // Expected return from Encode
		none    bool       // Expected return from None
	}{
		{
			name:    "nil",
			query:   nil,
			none:    true,
			encoded: "",
		},
		{
			name:    "sentinel",
			query:   tree.Query{tree.NoQueryParameters},
			none:    true,
			encoded: "",
		},
		{
			name:    "pairs",
			query:   tree.Query{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}},
			none:    false,
			encoded: "a=1&b=2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			test.Equal(t, tt.query.None(), tt.none)
			test.Equal(t, tt.query.Encode(), tt.encoded)
		})
	}
}

func TestQueryGrouped(t *testing.T) {
	query := tree.Query{
		{Key: "b", Value: "1"},
		{Key: "a", Value: "x"},
		{Key: "b", Value: "2"},
	}

	grouped := query.Grouped()
	test.Equal(t, len(grouped), 2)
	test.Equal(t, grouped[0].Key, "b")
	test.Equal(t, len(grouped[0].Values), 2)
	test.Equal(t, grouped[0].Values[1], "2")
	test.Equal(t, grouped[1].Key, "a")

	test.Equal(t, len(tree.Query{tree.NoQueryParameters}.Grouped()), 0)
}

func TestBodyString(t *testing.T) {
	test.Equal(t, tree.Body{}.String(), tree.NoBodyContent)
	test.Equal(t, tree.Body{Mode: tree.BodyUnsupported}.String(), tree.UnsupportedBodyContent)
	test.Equal(t, tree.RawBody(`{"a": 1}`).String(), `{"a": 1}`)
	test.Equal(t, tree.FieldsBody([]tree.Param{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}}).String(), "a=1&b=2")
}

func TestBodyModeText(t *testing.T) {
	text, err := tree.BodyFields.MarshalText()
	test.Ok(t, err)
	test.Equal(t, string(text), "fields")
	test.Equal(t, tree.BodyMode(42).String(), "BodyMode(42)")
}

func TestAssertionChecksStatusOK(t *testing.T) {
	ok := tree.Assertion{Name: "Status", Script: "pm.response.to.have.status(200); });"}
	notFound := tree.Assertion{Name: "Status", Script: "pm.response.to.have.status(404); });"}

	test.True(t, ok.ChecksStatusOK())
	test.False(t, notFound.ChecksStatusOK())

	request := &tree.Request{Assertions: []tree.Assertion{notFound, ok}}
	test.True(t, request.ChecksStatusOK())

	request = &tree.Request{Assertions: []tree.Assertion{notFound}}
	test.False(t, request.ChecksStatusOK())
}

func TestErrors(t *testing.T) {
	notFound := &tree.NotFoundError{Path: "missing.json", Err: fs.ErrNotExist}
	test.True(t, errors.Is(notFound, fs.ErrNotExist))
	test.Equal(t, notFound.Error(), "file missing.json does not exist")

	parse := &tree.ParseError{Format: "collection", Err: errors.New("unexpected EOF")}
	test.Equal(t, parse.Error(), "could not parse collection: unexpected EOF")

	var target *tree.ParseError
	test.True(t, errors.As(error(parse), &target))

	unsupported := &tree.UnsupportedFeatureError{Feature: "file upload body"}
	test.Equal(t, unsupported.Error(), "file upload body is not supported")
}
