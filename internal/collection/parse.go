// Package collection reads and writes Postman collections (schema v2.1).
//
// The [Parser] turns a collection into a [tree.Group] and the [Renderer] turns a
// tree parsed from a JMeter test plan back into a collection [Document].
package collection

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"go.followtheprocess.codes/pmx/internal/tree"
)

// Defaults for missing names and values.
const (
	DefaultPlanName       = "Unnamed Test Plan"
	DefaultControllerName = "Unnamed Controller"
	DefaultRequestName    = "Unnamed Request"
	DefaultDescription    = "No description found"
	DefaultURL            = "No URL"
	DefaultMethod         = "GET"
)

// testPattern matches the line opening a named Postman test block.
//
//nolint:gochecknoglobals // Compiled once
var testPattern = regexp.MustCompile(`pm\.test\("(.*?)"`)

// Parser converts Postman collections into a [tree.Group].
type Parser struct {
	counter *tree.Counter
	strict  bool
}

// NewParser returns a [Parser] that draws node identifiers from counter.
//
// If strict is true, unsupported features such as file upload bodies are an
// error rather than being replaced by a sentinel.
func NewParser(counter *tree.Counter, strict bool) Parser {
	if counter == nil {
		counter = tree.NewCounter()
	}

	return Parser{counter: counter, strict: strict}
}

// Import reads an entire collection from r and parses it, it implements the
// format.Importer interface.
func (p Parser) Import(r io.Reader) (*tree.Group, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read collection: %w", err)
	}

	return p.Parse(src)
}

// Parse validates src against the collection schema and converts it into a tree
// whose root is the collection itself.
func (p Parser) Parse(src []byte) (*tree.Group, error) {
	var document any
	if err := json.Unmarshal(src, &document); err != nil {
		return nil, &tree.ParseError{Format: "collection", Err: err}
	}

	if err := Validate(document); err != nil {
		return nil, &tree.SchemaValidationError{Err: err}
	}

	var collection Collection

	decoder := json.NewDecoder(bytes.NewReader(src))
	if err := decoder.Decode(&collection); err != nil {
		// Only reachable if the schema admits something our model doesn't
		return nil, &tree.SchemaValidationError{Err: err}
	}

	root := &tree.Group{
		Meta: tree.Meta{
			ID:   p.counter.Next(),
			Name: sanitise(collection.Info.Name, DefaultPlanName),
		},
		Description: string(collection.Info.Description),
	}

	if root.Description == "" {
		root.Description = DefaultDescription
	}

	if err := p.items(root, collection.Item); err != nil {
		return nil, err
	}

	return root, nil
}

// items converts every item into a node and adds it to parent.
func (p Parser) items(parent *tree.Group, items []Item) error {
	for _, item := range items {
		id := p.counter.Next()

		if item.IsFolder() {
			group := &tree.Group{
				Meta: tree.Meta{ID: id, Name: sanitise(item.Name, DefaultControllerName)},
			}

			parent.Add(group)

			if err := p.items(group, item.Item); err != nil {
				return err
			}

			continue
		}

		if item.Request == nil {
			continue
		}

		request, err := p.request(id, item)
		if err != nil {
			return err
		}

		parent.Add(request)
	}

	return nil
}

// request converts a single request item.
func (p Parser) request(id string, item Item) (*tree.Request, error) {
	raw := item.Request.URL.Raw
	if raw == "" {
		raw = DefaultURL
	}

	raw = normaliseURL(raw)

	method := item.Request.Method
	if method == "" {
		method = DefaultMethod
	}

	body, err := p.body(item.Request.Body)
	if err != nil {
		return nil, fmt.Errorf("request %q: %w", item.Name, err)
	}

	return &tree.Request{
		Meta:       tree.Meta{ID: id, Name: sanitise(item.Name, DefaultRequestName)},
		Method:     method,
		URL:        raw,
		Query:      queryParams(raw),
		Body:       body,
		Assertions: assertions(item.Event),
	}, nil
}

// body extracts the request body according to its declared mode.
func (p Parser) body(body *Body) (tree.Body, error) {
	if body == nil || body.Mode == "" {
		return tree.Body{}, nil
	}

	switch body.Mode {
	case "raw":
		return tree.RawBody(body.Raw), nil
	case "formdata":
		return tree.FieldsBody(fields(body.FormData)), nil
	case "urlencoded":
		return tree.FieldsBody(fields(body.URLEncoded)), nil
	case "file":
		if p.strict {
			return tree.Body{}, &tree.UnsupportedFeatureError{Feature: "file upload body"}
		}

		return tree.Body{Mode: tree.BodyUnsupported}, nil
	default:
		return tree.Body{}, nil
	}
}

func fields(in []Field) []tree.Param {
	params := make([]tree.Param, 0, len(in))
	for _, field := range in {
		params = append(params, tree.Param{Key: field.Key, Value: field.Value})
	}

	return params
}

// assertions extracts the named tests from an item's test scripts.
//
// A line matching pm.test("<name>" starts a new assertion, subsequent lines are
// trimmed and collected as its script until the next match.
func assertions(events []Event) []tree.Assertion {
	var found []tree.Assertion

	for _, event := range events {
		if event.Listen != "test" {
			continue
		}

		var (
			current *tree.Assertion
			script  strings.Builder
		)

		flush := func() {
			if current != nil {
				current.Script = strings.TrimSpace(script.String())
				found = append(found, *current)
			}

			script.Reset()
		}

		for _, line := range event.Script.Exec {
			if match := testPattern.FindStringSubmatch(line); match != nil {
				flush()

				current = &tree.Assertion{Name: match[1]}

				continue
			}

			if current != nil {
				script.WriteString(strings.TrimSpace(line))
				script.WriteByte(' ')
			}
		}

		flush()
	}

	return found
}

// sanitise applies the default for an empty name and replaces '&' with "and".
func sanitise(name, fallback string) string {
	if name == "" {
		name = fallback
	}

	return strings.ReplaceAll(name, "&", "and")
}
