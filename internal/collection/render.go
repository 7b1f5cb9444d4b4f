package collection

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"go.followtheprocess.codes/log"
	"go.followtheprocess.codes/pmx/internal/placeholder"
	"go.followtheprocess.codes/pmx/internal/tree"
)

// SchemaURL is the collection format version written into every rendered collection.
const SchemaURL = "https://schema.getpostman.com/json/collection/v2.1.0/collection.json"

// ResponseTimeScript is the test script attached to every rendered request.
const ResponseTimeScript = "pm.test('Response time is less than 200ms', function() { pm.response.to.have.responseTime.lessThan(200); });"

// statusOKScript is appended to the test script of requests asserting a 200 status.
//
//nolint:gochecknoglobals // Effectively a constant
var statusOKScript = []string{
	`pm.test("Status code is 200", function () {`,
	"    " + tree.StatusOKCheck + ";",
	"});",
}

// Document is a rendered collection, ready to be serialised.
type Document struct {
	Info DocumentInfo `json:"info"`
	Item []any        `json:"item"` // *Folder or *RequestItem
}

// DocumentInfo is the info block of a rendered collection.
type DocumentInfo struct {
	PostmanID  string `json:"_postman_id"`
	Name       string `json:"name"`
	Schema     string `json:"schema"`
	ExporterID string `json:"_exporter_id"`
}

// Folder is a rendered group.
type Folder struct {
	Name string `json:"name"`
	Item []any  `json:"item"`
}

// RequestItem is a rendered request.
type RequestItem struct {
	Name     string            `json:"name"`
	Request  RequestDefinition `json:"request"`
	Response []any             `json:"response"`
	Event    []Event           `json:"event"`
}

// RequestDefinition is the request block of a [RequestItem].
type RequestDefinition struct {
	Body   *RawBody    `json:"body,omitempty"`
	Method string      `json:"method"`
	Header []any       `json:"header"`
	URL    RenderedURL `json:"url"`
}

// RenderedURL is the url block of a [RequestDefinition].
type RenderedURL struct {
	Raw   string   `json:"raw"`
	Host  []string `json:"host"`
	Path  []string `json:"path"`
	Query []Field  `json:"query"`
}

// RawBody is a rendered request body, always a raw JSON document.
type RawBody struct {
	Mode    string      `json:"mode"`
	Raw     string      `json:"raw"`
	Options BodyOptions `json:"options"`
}

// BodyOptions tells Postman which language a [RawBody] holds.
type BodyOptions struct {
	Raw struct {
		Language string `json:"language"`
	} `json:"raw"`
}

// Renderer converts a tree into a collection [Document].
type Renderer struct {
	logger *log.Logger
	ids    IDSource
}

// NewRenderer returns a [Renderer] that logs warnings to logger and takes
// the collection identifiers from ids.
func NewRenderer(logger *log.Logger, ids IDSource) Renderer {
	if ids == nil {
		ids = RandomIDs{}
	}

	return Renderer{logger: logger, ids: ids}
}

// Export renders root and writes it to w as four space indented JSON, it implements
// the format.Exporter interface.
func (r Renderer) Export(w io.Writer, root *tree.Group) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", bodyIndent)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(r.Render(root)); err != nil {
		return fmt.Errorf("could not encode collection: %w", err)
	}

	return nil
}

// Render converts root into a [Document] named after it.
//
// Requests whose name has already been seen in the same group are skipped,
// the first one wins.
func (r Renderer) Render(root *tree.Group) Document {
	return Document{
		Info: DocumentInfo{
			PostmanID:  r.ids.CollectionID(),
			Name:       root.Name,
			Schema:     SchemaURL,
			ExporterID: r.ids.ExporterID(),
		},
		Item: r.children(root),
	}
}

// children renders every child of group.
func (r Renderer) children(group *tree.Group) []any {
	items := make([]any, 0, len(group.Children))
	seen := make(map[string]struct{})

	for _, child := range group.Children {
		switch node := child.(type) {
		case *tree.Group:
			items = append(items, &Folder{Name: node.Name, Item: r.children(node)})
		case *tree.Request:
			if _, duplicate := seen[node.Name]; duplicate {
				r.warn(
					"Skipping duplicate request",
					slog.String("request", node.Name),
					slog.String("group", group.Name),
				)

				continue
			}

			seen[node.Name] = struct{}{}

			items = append(items, r.request(node))
		}
	}

	return items
}

// request renders a single request.
func (r Renderer) request(request *tree.Request) *RequestItem {
	raw := placeholder.Decode(request.URL)

	return &RequestItem{
		Name: request.Name,
		Request: RequestDefinition{
			Method: request.Method,
			Header: []any{},
			URL: RenderedURL{
				Raw:   raw,
				Host:  []string{},
				Path:  strings.Split(raw, "/"),
				Query: query(request.Query),
			},
			Body: r.body(request),
		},
		Response: []any{},
		Event:    events(request),
	}
}

// body renders the request body, returning nil if there is none.
func (r Renderer) body(request *tree.Request) *RawBody {
	var (
		raw string
		err error
	)

	switch request.Body.Mode {
	case tree.BodyRaw:
		raw, err = reencode(request.Body.Raw)
		if err != nil {
			r.warn(
				"Raw body is not a JSON document, keeping it as is",
				slog.String("request", request.Name),
				slog.String("error", err.Error()),
			)

			raw = placeholder.Decode(request.Body.Raw)
		}
	case tree.BodyFields:
		keys := make([]string, 0, len(request.Body.Fields))
		values := make([]string, 0, len(request.Body.Fields))

		for _, field := range request.Body.Fields {
			keys = append(keys, field.Key)
			values = append(values, field.Value)
		}

		raw, err = fieldsJSON(keys, values)
		if err != nil {
			// Keys and values are plain strings, encoding them cannot fail
			r.warn("Could not encode body fields", slog.String("request", request.Name), slog.String("error", err.Error()))
			return nil
		}
	default:
		return nil
	}

	body := &RawBody{Mode: "raw", Raw: raw}
	body.Options.Raw.Language = "json"

	return body
}

// warn logs a warning if the renderer has a logger.
func (r Renderer) warn(msg string, attrs ...slog.Attr) {
	if r.logger != nil {
		r.logger.Warn(msg, attrs...)
	}
}

// query renders the query parameters, re-encoding placeholders in the values.
func query(params tree.Query) []Field {
	fields := []Field{}
	if params.None() {
		return fields
	}

	for _, param := range params {
		fields = append(fields, Field{Key: param.Key, Value: placeholder.Decode(param.Value)})
	}

	return fields
}

// events returns the test scripts attached to a rendered request.
func events(request *tree.Request) []Event {
	exec := Lines{ResponseTimeScript}
	if request.ChecksStatusOK() {
		exec = append(exec, statusOKScript...)
	}

	return []Event{
		{
			Listen: "test",
			Script: Script{Exec: exec, Type: "text/javascript"},
		},
	}
}
