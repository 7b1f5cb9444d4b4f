// Package testplan reads and writes JMeter test plans (.jmx).
//
// Plans are handled as a generic [Element] tree built on encoding/xml, the [Parser]
// turns a plan into a [tree.Group] and the [Renderer] turns a tree parsed from a
// Postman collection into a plan.
package testplan

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.followtheprocess.codes/pmx/internal/tree"
)

// Parser converts JMeter test plans into a [tree.Group].
type Parser struct {
	counter *tree.Counter
}

// NewParser returns a [Parser] that draws node identifiers from counter.
func NewParser(counter *tree.Counter) Parser {
	if counter == nil {
		counter = tree.NewCounter()
	}

	return Parser{counter: counter}
}

// Import reads an entire test plan from r and parses it, it implements the
// format.Importer interface.
func (p Parser) Import(r io.Reader) (*tree.Group, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("could not read test plan: %w", err)
	}

	return p.Parse(src)
}

// Decode parses src into an [Element] tree.
func Decode(src []byte) (*Element, error) {
	var root Element

	decoder := xml.NewDecoder(bytes.NewReader(src))
	if err := decoder.Decode(&root); err != nil {
		return nil, &tree.ParseError{Format: "test plan", Err: err}
	}

	if err := trailing(decoder); err != nil {
		return nil, &tree.ParseError{Format: "test plan", Err: err}
	}

	return &root, nil
}

// trailing reads the rest of the document after the root element, only
// whitespace, comments and processing instructions may follow it.
func trailing(decoder *xml.Decoder) error {
	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return nil
		}

		if err != nil {
			return err
		}

		switch token := token.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(token)) != 0 {
				return fmt.Errorf("unexpected text %q after the root element", bytes.TrimSpace(token))
			}
		case xml.StartElement:
			return fmt.Errorf("unexpected element <%s> after the root element", token.Name.Local)
		default:
			return fmt.Errorf("unexpected %T after the root element", token)
		}
	}
}

// Parse converts src into a synthetic root group named after the test plan, whose
// children are the plan's top level items.
//
// Every controller in the plan becomes a top level group holding the samplers and
// sub-controllers directly beneath it. A sub-controller only collects its own
// samplers, controllers nested any deeper become top level groups in their own right.
// Samplers not already claimed by a controller follow as top level requests.
func (p Parser) Parse(src []byte) (*tree.Group, error) {
	document, err := Decode(src)
	if err != nil {
		return nil, err
	}

	name := DefaultPlanName
	if plan, ok := document.First(isTag(tagTestPlan)); ok {
		name = plan.AttrOr("testname", DefaultPlanName)
	}

	root := &tree.Group{Meta: tree.Meta{ID: p.counter.Next(), Name: name}}

	index := positions(document)
	seen := make(map[string]struct{})
	claimed := make(map[*Element]struct{})

	for _, controller := range document.Find(isController) {
		if _, ok := claimed[controller]; ok {
			continue
		}

		group := p.group(controller)

		block, ok := index[controller].next()
		if ok && block.Tag() == tagHashTree {
			for i, child := range block.Children {
				switch {
				case isSampler(child):
					request := p.request(child, block, i)
					group.Add(request)
					seen[request.Name] = struct{}{}
				case isController(child):
					claimed[child] = struct{}{}

					sub := p.group(child)
					group.Add(sub)

					if subBlock, ok := (sibling{parent: block, index: i}).next(); ok && subBlock.Tag() == tagHashTree {
						for j, grandchild := range subBlock.Children {
							if !isSampler(grandchild) {
								continue
							}

							request := p.request(grandchild, subBlock, j)
							sub.Add(request)
							seen[request.Name] = struct{}{}
						}
					}
				}
			}
		}

		root.Add(group)
	}

	for _, sampler := range document.Find(isSampler) {
		if _, ok := seen[sampler.AttrOr("testname", DefaultRequestName)]; ok {
			continue
		}

		position := index[sampler]
		root.Add(p.request(sampler, position.parent, position.index))
	}

	return root, nil
}

// group converts a controller header into an empty group.
func (p Parser) group(controller *Element) *tree.Group {
	return &tree.Group{
		Meta: tree.Meta{
			ID:   p.counter.Next(),
			Name: controller.AttrOr("testname", DefaultControllerName),
		},
	}
}

// request converts a sampler, found at index in parent, into a request.
func (p Parser) request(sampler, parent *Element, index int) *tree.Request {
	method := sampler.Prop(tagStringProp, propMethod, DefaultMethod)

	request := &tree.Request{
		Meta: tree.Meta{
			ID:   p.counter.Next(),
			Name: sampler.AttrOr("testname", DefaultRequestName),
		},
		Method: method,
		URL:    sampler.Prop(tagStringProp, propPath, ""),
	}

	var (
		body   *string
		query  tree.Query
		fields []tree.Param
	)

	for _, argument := range arguments(sampler) {
		switch {
		case argument.Key == bodyKey:
			body = &argument.Value
		case isBodyField(argument.Value):
			fields = append(fields, argument)
		default:
			query = append(query, argument)
		}
	}

	switch {
	case body != nil:
		request.Body = tree.RawBody(*body)
	case len(fields) != 0:
		request.Body = tree.FieldsBody(fields)
	}

	if len(query) == 0 {
		query = tree.Query{tree.NoQueryParameters}
	}

	request.Query = query

	if block, ok := (sibling{parent: parent, index: index}).next(); ok && block.Tag() == tagHashTree {
		request.Assertions = assertions(block)
	}

	return request
}

// arguments returns the HTTP arguments of a sampler keyed by name in first seen
// order, a later argument with the same name replaces the earlier value.
//
// An argument without a name is the raw body.
func arguments(sampler *Element) []tree.Param {
	var params []tree.Param

	index := make(map[string]int)

	for _, argument := range sampler.Find(isHTTPArgument) {
		key := argument.Prop(tagStringProp, propArgumentName, bodyKey)
		value := argument.Prop(tagStringProp, propArgumentValue, "")

		if i, ok := index[key]; ok {
			params[i].Value = value
			continue
		}

		index[key] = len(params)
		params = append(params, tree.Param{Key: key, Value: value})
	}

	return params
}

// assertions returns a status check for every response code assertion
// expecting 200 in a sampler's hashTree.
func assertions(block *Element) []tree.Assertion {
	var found []tree.Assertion

	for _, child := range block.Children {
		if child.Tag() != tagResponseAssertion && child.AttrOr("testclass", "") != tagResponseAssertion {
			continue
		}

		if child.Prop(tagStringProp, propTestField, "") != responseCodeField {
			continue
		}

		expects := child.Find(func(el *Element) bool {
			return el.Tag() == tagStringProp && strings.TrimSpace(el.Text) == statusOK
		})
		if len(expects) == 0 {
			continue
		}

		found = append(found, tree.Assertion{
			Name:   child.AttrOr("testname", "Status code is 200"),
			Script: tree.StatusOKCheck,
		})
	}

	return found
}

// isBodyField reports whether an argument value looks like part of a request body
// rather than a query parameter.
func isBodyField(value string) bool {
	return strings.Contains(value, "\r\n") || strings.Contains(value, `"`)
}

func isTag(tag string) func(*Element) bool {
	return func(el *Element) bool {
		return el.Tag() == tag
	}
}

func isController(el *Element) bool {
	return el.Tag() == tagController || el.AttrOr("guiclass", "") == guiController
}

func isSampler(el *Element) bool {
	return el.Tag() == tagSampler || el.AttrOr("guiclass", "") == guiSampler
}

func isHTTPArgument(el *Element) bool {
	return el.Tag() == tagElementProp && el.AttrOr("elementType", "") == elementHTTPArg
}
