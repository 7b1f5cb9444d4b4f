package testplan

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"go.followtheprocess.codes/pmx/internal/tree"
)

// Renderer converts a tree into a JMeter test plan.
type Renderer struct {
	// HostVariable is the JMeter variable prefixed to every sampler path, it
	// stands in for the scheme and host which are not carried over.
	HostVariable string
}

// NewRenderer returns a [Renderer] using hostVariable, or [DefaultHostVariable]
// if it is empty.
func NewRenderer(hostVariable string) Renderer {
	if hostVariable == "" {
		hostVariable = DefaultHostVariable
	}

	return Renderer{HostVariable: hostVariable}
}

// Render returns the complete test plan document for root as text.
func (r Renderer) Render(root *tree.Group) (string, error) {
	buf := &bytes.Buffer{}
	if err := r.Export(buf, root); err != nil {
		return "", err
	}

	return buf.String(), nil
}

// Export writes the test plan document for root to w, it implements the
// format.Exporter interface.
func (r Renderer) Export(w io.Writer, root *tree.Group) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("could not write XML header: %w", err)
	}

	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")

	if err := encoder.Encode(r.Document(root)); err != nil {
		return fmt.Errorf("could not encode test plan: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("could not flush test plan: %w", err)
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("could not write test plan: %w", err)
	}

	return nil
}

// Document builds the element tree for root.
//
// The plan is named after root and every child of root becomes an item of a
// single test fragment.
func (r Renderer) Document(root *tree.Group) *Element {
	plan := NewElement(
		tagTestPlan,
		"guiclass", guiTestPlan,
		"testclass", tagTestPlan,
		"testname", root.Name,
	).Append(
		NewElement(
			tagElementProp,
			"name", propUserVariables,
			"elementType", elementArguments,
			"guiclass", guiArguments,
			"testclass", elementArguments,
			"testname", userVariablesName,
		).Append(collectionProp(propArgumentList)),
		boolProp(propFunctionalMode, false),
		boolProp(propSerialize, false),
	)

	fragment := NewElement(
		tagFragment,
		"guiclass", guiFragment,
		"testclass", tagFragment,
		"testname", fragmentName,
		"enabled", "true",
	)

	items := hashTree()
	for _, child := range root.Children {
		items.Append(r.node(child)...)
	}

	return NewElement(
		tagRoot,
		"version", planVersion,
		"properties", planProperties,
		"jmeter", planJMeter,
	).Append(
		hashTree(
			plan,
			hashTree(fragment, items),
		),
	)
}

// node returns the header element and following hashTree for a single node.
func (r Renderer) node(node tree.Node) []*Element {
	switch node := node.(type) {
	case *tree.Group:
		return r.controller(node)
	case *tree.Request:
		return r.sampler(node)
	default:
		return nil
	}
}

// controller renders a group as a GenericController, its children go in
// the following hashTree.
func (r Renderer) controller(group *tree.Group) []*Element {
	header := NewElement(
		tagController,
		"guiclass", guiController,
		"testclass", tagController,
		"testname", group.Name,
	)

	children := hashTree()
	for _, child := range group.Children {
		children.Append(r.node(child)...)
	}

	return []*Element{header, children}
}

// sampler renders a request as an HTTPSamplerProxy, its assertions go in
// the following hashTree.
func (r Renderer) sampler(request *tree.Request) []*Element {
	path, _ := tree.SplitURL(request.URL)
	path = "${" + r.HostVariable + "}" + path

	raw := request.Body.Mode == tree.BodyRaw

	arguments := collectionProp(propArgumentList)

	if raw {
		// JMeter has no separate query list for a raw body, the parameters
		// stay on the path
		if query := request.Query.Encode(); query != "" {
			path += "?" + query
		}

		arguments.Append(rawBodyArgument(request.Body.Raw))
	} else {
		for _, values := range request.Query.Grouped() {
			for _, value := range values.Values {
				arguments.Append(queryArgument(values.Key, value))
			}
		}
	}

	header := NewElement(
		tagSampler,
		"guiclass", guiSampler,
		"testclass", tagSampler,
		"testname", request.Name,
		"enabled", "true",
	).Append(
		stringProp(propPath, path),
		boolProp(propFollow, true),
		stringProp(propMethod, request.Method),
		boolProp(propKeepAlive, true),
		boolProp(propPostBodyRaw, raw),
		NewElement(
			tagElementProp,
			"name", propArguments,
			"elementType", elementArguments,
			"guiclass", guiHTTPArgs,
			"testclass", elementArguments,
			"testname", userVariablesName,
		).Append(arguments),
	)

	assertions := hashTree()

	for _, assertion := range request.Assertions {
		if assertion.ChecksStatusOK() {
			assertions.Append(responseAssertion(request.Name, statusOK), hashTree())
		}
	}

	return []*Element{header, assertions}
}

func queryArgument(key, value string) *Element {
	return NewElement(tagElementProp, "name", key, "elementType", elementHTTPArg).Append(
		boolProp(propAlwaysEncode, false),
		stringProp(propArgumentValue, value),
		stringProp(propArgumentMeta, "="),
		boolProp(propUseEquals, true),
		stringProp(propArgumentName, key),
	)
}

// rawBodyArgument is the single unnamed argument JMeter uses for a raw body.
func rawBodyArgument(body string) *Element {
	return NewElement(tagElementProp, "name", "", "elementType", elementHTTPArg).Append(
		boolProp(propAlwaysEncode, false),
		stringProp(propArgumentValue, body),
		stringProp(propArgumentMeta, "="),
	)
}

func responseAssertion(name, status string) *Element {
	return NewElement(
		tagResponseAssertion,
		"guiclass", guiAssertion,
		"testclass", tagResponseAssertion,
		"testname", fmt.Sprintf("Response Assertion for %s expected_status: %s", name, status),
	).Append(
		collectionProp(propTestStringsLegacy, stringProp(statusOKStringProp, status)),
		collectionProp(propTestStrings, stringProp(statusOKStringProp, status)),
		stringProp(propCustomMessage, ""),
		stringProp(propTestField, responseCodeField),
		boolProp(propAssumeSuccess, false),
		intProp(propTestType, equalsTestType),
	)
}
