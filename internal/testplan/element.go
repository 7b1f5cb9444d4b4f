package testplan

import (
	"encoding/xml"
	"strconv"
)

// Element is a generic XML element, a test plan is a tree of them.
//
// Text is only meaningful for leaf elements, for elements with children it
// holds the whitespace between them.
type Element struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []*Element `xml:",any"`
}

// NewElement returns an element with the given tag and attributes, attrs
// are name value pairs.
func NewElement(tag string, attrs ...string) *Element {
	element := &Element{XMLName: xml.Name{Local: tag}}
	for i := 0; i+1 < len(attrs); i += 2 {
		element.Attrs = append(element.Attrs, xml.Attr{Name: xml.Name{Local: attrs[i]}, Value: attrs[i+1]})
	}

	return element
}

// Tag returns the element's local name.
func (e *Element) Tag() string {
	return e.XMLName.Local
}

// Attr returns the value of the named attribute and whether it was present.
func (e *Element) Attr(name string) (string, bool) {
	for _, attr := range e.Attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}

	return "", false
}

// AttrOr returns the value of the named attribute, or fallback if it is missing.
func (e *Element) AttrOr(name, fallback string) string {
	if value, ok := e.Attr(name); ok {
		return value
	}

	return fallback
}

// Append adds children to e and returns e for chaining.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Find returns every descendant of e (not e itself) for which match returns true,
// in document order.
func (e *Element) Find(match func(*Element) bool) []*Element {
	var found []*Element

	for _, child := range e.Children {
		if match(child) {
			found = append(found, child)
		}

		found = append(found, child.Find(match)...)
	}

	return found
}

// First returns the first descendant of e for which match returns true.
func (e *Element) First(match func(*Element) bool) (*Element, bool) {
	for _, child := range e.Children {
		if match(child) {
			return child, true
		}

		if found, ok := child.First(match); ok {
			return found, true
		}
	}

	return nil, false
}

// Prop returns the text of the first descendant <tag name="name"> element,
// or fallback if there isn't one.
func (e *Element) Prop(tag, name, fallback string) string {
	prop, ok := e.First(func(el *Element) bool {
		return el.Tag() == tag && el.AttrOr("name", "") == name
	})
	if !ok {
		return fallback
	}

	return prop.Text
}

// Property builders, named after the JMeter element they produce.

func stringProp(name, value string) *Element {
	prop := NewElement("stringProp", "name", name)
	prop.Text = value

	return prop
}

func boolProp(name string, value bool) *Element {
	prop := NewElement("boolProp", "name", name)
	prop.Text = strconv.FormatBool(value)

	return prop
}

func intProp(name string, value int) *Element {
	prop := NewElement("intProp", "name", name)
	prop.Text = strconv.Itoa(value)

	return prop
}

func collectionProp(name string, children ...*Element) *Element {
	return NewElement("collectionProp", "name", name).Append(children...)
}

func hashTree(children ...*Element) *Element {
	return NewElement(tagHashTree).Append(children...)
}

// sibling is an element together with its position in its parent.
type sibling struct {
	parent *Element
	index  int
}

// next returns the element immediately after s in its parent, if any.
func (s sibling) next() (*Element, bool) {
	if s.parent == nil || s.index+1 >= len(s.parent.Children) {
		return nil, false
	}

	return s.parent.Children[s.index+1], true
}

// positions records the parent and index of every descendant of root.
func positions(root *Element) map[*Element]sibling {
	index := make(map[*Element]sibling)

	var record func(parent *Element)

	record = func(parent *Element) {
		for i, child := range parent.Children {
			index[child] = sibling{parent: parent, index: i}
			record(child)
		}
	}

	record(root)

	return index
}
