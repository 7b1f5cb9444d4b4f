package collection_test

import (
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"slices"
	"strings"
	"testing"

	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/pmx/internal/collection"
	"go.followtheprocess.codes/pmx/internal/tree"
	"go.followtheprocess.codes/test"
)

var fixedIDs = collection.FixedIDs{Collection: "6f0e4c42-1d0b-4c2a-9a57-3c8f1f0b7a11", Exporter: "12345678"}

// plan builds a tree shaped like one parsed from a test plan.
func plan() *tree.Group {
	root := &tree.Group{Meta: tree.Meta{Name: "Plan"}}
	folder := &tree.Group{Meta: tree.Meta{Name: "Folder"}}
	folder.Add(&tree.Request{
		Meta:       tree.Meta{Name: "Get Pet"},
		Method:     "GET",
		URL:        "${tests_url}/v2/pet",
		Query:      tree.Query{{Key: "id", Value: "${petId}"}},
		Assertions: []tree.Assertion{{Name: "Status code is 200", Script: tree.StatusOKCheck}},
	})
	root.Add(folder)

	return root
}

func TestExport(t *testing.T) {
	want := `{
    "info": {
        "_postman_id": "6f0e4c42-1d0b-4c2a-9a57-3c8f1f0b7a11",
        "name": "Plan",
        "schema": "https://schema.getpostman.com/json/collection/v2.1.0/collection.json",
        "_exporter_id": "12345678"
    },
    "item": [
        {
            "name": "Folder",
            "item": [
                {
                    "name": "Get Pet",
                    "request": {
                        "method": "GET",
                        "header": [],
                        "url": {
                            "raw": "{{tests_url}}/v2/pet",
                            "host": [],
                            "path": [
                                "{{tests_url}}",
                                "v2",
                                "pet"
                            ],
                            "query": [
                                {
                                    "key": "id",
                                    "value": "{{petId}}"
                                }
                            ]
                        }
                    },
                    "response": [],
                    "event": [
                        {
                            "listen": "test",
                            "script": {
                                "exec": [
                                    "pm.test('Response time is less than 200ms', function() { pm.response.to.have.responseTime.lessThan(200); });",
                                    "pm.test(\"Status code is 200\", function () {",
                                    "    pm.response.to.have.status(200);",
                                    "});"
                                ],
                                "type": "text/javascript"
                            }
                        }
                    ]
                }
            ]
        }
    ]
}
`

	renderer := collection.NewRenderer(log.New(io.Discard), fixedIDs)

	buf := &bytes.Buffer{}
	test.Ok(t, renderer.Export(buf, plan()))

	test.Diff(t, buf.String(), want)
}

func TestRenderValidatesAgainstSchema(t *testing.T) {
	renderer := collection.NewRenderer(log.New(io.Discard), collection.RandomIDs{})

	buf := &bytes.Buffer{}
	test.Ok(t, renderer.Export(buf, plan()))

	var document any
	test.Ok(t, json.Unmarshal(buf.Bytes(), &document))

	test.Ok(t, collection.Validate(document))
}

func TestRandomIDs(t *testing.T) {
	ids := collection.RandomIDs{}

	uuid := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)
	exporter := regexp.MustCompile(`^[1-9][0-9]{7}$`)

	for range 50 {
		collectionID := ids.CollectionID()
		test.True(t, uuid.MatchString(collectionID), test.Context("bad collection id %q", collectionID))

		exporterID := ids.ExporterID()
		test.True(t, exporter.MatchString(exporterID), test.Context("bad exporter id %q", exporterID))
	}

	test.True(t, ids.CollectionID() != ids.CollectionID(), test.Context("collection ids should differ"))
}

func TestRenderDuplicates(t *testing.T) {
	root := &tree.Group{Meta: tree.Meta{Name: "Plan"}}
	folder := &tree.Group{Meta: tree.Meta{Name: "Folder"}}
	folder.Add(&tree.Request{Meta: tree.Meta{Name: "Same"}, Method: "GET", URL: "/first"})
	folder.Add(&tree.Request{Meta: tree.Meta{Name: "Same"}, Method: "POST", URL: "/second"})
	folder.Add(&tree.Request{Meta: tree.Meta{Name: "Other"}, Method: "GET", URL: "/other"})
	root.Add(folder)

	// Same name as a request in Folder but a different group, so not a duplicate
	root.Add(&tree.Request{Meta: tree.Meta{Name: "Same"}, Method: "GET", URL: "/top"})
	root.Add(&tree.Request{Meta: tree.Meta{Name: "Same"}, Method: "GET", URL: "/top/again"})

	logs := &bytes.Buffer{}
	document := collection.NewRenderer(log.New(logs), fixedIDs).Render(root)

	test.Equal(t, len(document.Item), 2)

	rendered, ok := document.Item[0].(*collection.Folder)
	test.True(t, ok, test.Context("first item is %T, not a folder", document.Item[0]))
	test.Equal(t, len(rendered.Item), 2)

	first, ok := rendered.Item[0].(*collection.RequestItem)
	test.True(t, ok)
	test.Equal(t, first.Name, "Same")
	test.Equal(t, first.Request.Method, "GET")
	test.Equal(t, first.Request.URL.Raw, "/first")

	top, ok := document.Item[1].(*collection.RequestItem)
	test.True(t, ok)
	test.Equal(t, top.Request.URL.Raw, "/top")

	test.True(t, strings.Contains(logs.String(), "Skipping duplicate request"), test.Context("logs: %s", logs.String()))
}

func TestRenderBody(t *testing.T) {
	tests := []struct {
		name string    // Name of the test case
		body tree.Body // Body under test
		want string    // Expected raw body, empty for none
	}{
		{
			name: "none",
			body: tree.Body{},
			want: "",
		},
		{
			name: "unsupported",
			body: tree.Body{Mode: tree.BodyUnsupported},
			want: "",
		},
		{
			name: "raw object keeps key order",
			body: tree.RawBody(`{"zebra": "${z}", "apple": [1, {"nested": "${n}"}], "price": 1.50, "ok": true, "none": null}`),
			want: `{
    "zebra": "{{z}}",
    "apple": [
        1,
        {
            "nested": "{{n}}"
        }
    ],
    "price": 1.50,
    "ok": true,
    "none": null
}`,
		},
		{
			name: "raw array",
			body: tree.RawBody(`[{"a": "${x}"}, "<b>"]`),
			want: `[
    {
        "a": "{{x}}"
    },
    "<b>"
]`,
		},
		{
			name: "raw empty object",
			body: tree.RawBody(`{}`),
			want: `{}`,
		},
		{
			name: "keys keep their placeholders",
			body: tree.RawBody(`{"${key}": "${value}"}`),
			want: `{
    "${key}": "{{value}}"
}`,
		},
		{
			name: "raw not JSON",
			body: tree.RawBody(`name=${name}&age=3`),
			want: `name={{name}}&age=3`,
		},
		{
			name: "raw scalar",
			body: tree.RawBody(`"${just a string}"`),
			want: `"{{just a string}}"`,
		},
		{
			name: "raw trailing garbage",
			body: tree.RawBody(`{"a": 1} {"b": 2}`),
			want: `{"a": 1} {"b": 2}`,
		},
		{
			name: "fields",
			body: tree.FieldsBody([]tree.Param{
				{Key: "first", Value: "line one\r\nline two"},
				{Key: "second", Value: `say "${greeting}"`},
			}),
			want: `{
    "first": "line one\r\nline two",
    "second": "say \"{{greeting}}\""
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := &tree.Group{Meta: tree.Meta{Name: "Plan"}}
			root.Add(&tree.Request{Meta: tree.Meta{Name: "Request"}, Method: "POST", URL: "/", Body: tt.body})

			document := collection.NewRenderer(log.New(io.Discard), fixedIDs).Render(root)
			request, ok := document.Item[0].(*collection.RequestItem)
			test.True(t, ok)

			if tt.want == "" {
				test.True(t, request.Request.Body == nil, test.Context("expected no body, got %+v", request.Request.Body))
				return
			}

			test.True(t, request.Request.Body != nil, test.Context("expected a body"))
			test.Equal(t, request.Request.Body.Mode, "raw")
			test.Equal(t, request.Request.Body.Options.Raw.Language, "json")
			test.Diff(t, request.Request.Body.Raw, tt.want)
		})
	}
}

func TestRenderEvents(t *testing.T) {
	root := &tree.Group{Meta: tree.Meta{Name: "Plan"}}
	root.Add(&tree.Request{
		Meta:       tree.Meta{Name: "Not OK"},
		Method:     "GET",
		URL:        "/",
		Assertions: []tree.Assertion{{Name: "Missing", Script: "pm.response.to.have.status(404);"}},
	})

	document := collection.NewRenderer(nil, fixedIDs).Render(root)
	request, ok := document.Item[0].(*collection.RequestItem)
	test.True(t, ok)

	test.Equal(t, len(request.Event), 1)
	test.Equal(t, request.Event[0].Listen, "test")
	test.True(t, slices.Equal(request.Event[0].Script.Exec, collection.Lines{collection.ResponseTimeScript}))
}

func TestRenderQuery(t *testing.T) {
	root := &tree.Group{Meta: tree.Meta{Name: "Plan"}}
	root.Add(&tree.Request{
		Meta:   tree.Meta{Name: "Sentinel"},
		Method: "GET",
		URL:    "/",
		Query:  tree.Query{tree.NoQueryParameters},
	})
	root.Add(&tree.Request{
		Meta:   tree.Meta{Name: "Ordered"},
		Method: "GET",
		URL:    "/",
		Query:  tree.Query{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "a", Value: "${three}"}},
	})

	document := collection.NewRenderer(nil, fixedIDs).Render(root)

	sentinel, ok := document.Item[0].(*collection.RequestItem)
	test.True(t, ok)
	test.Equal(t, len(sentinel.Request.URL.Query), 0)

	ordered, ok := document.Item[1].(*collection.RequestItem)
	test.True(t, ok)

	want := []collection.Field{{Key: "a", Value: "1"}, {Key: "b", Value: "2"}, {Key: "a", Value: "{{three}}"}}
	test.True(t, slices.Equal(ordered.Request.URL.Query, want), test.Context("got %v", ordered.Request.URL.Query))
}
