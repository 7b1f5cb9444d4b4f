// Package tree provides the Group and Request types, the canonical in-memory
// representation of an API test suite shared by both conversion directions.
//
// A Postman collection parses into a root [Group] whose children mirror the collection's
// folder structure. A JMeter test plan parses into a synthetic root [Group] named after
// the test plan whose children are the plan's top level items. Renderers for either
// format consume the same tree.
//
// A tree is built fresh for every conversion and is not shared between conversions.
package tree

import (
	"fmt"
	"strings"
)

// Node is a single entry in the tree, either a [*Group] or a [*Request].
type Node interface {
	// Info returns the identifying metadata common to all nodes.
	Info() Meta
}

// Meta is the metadata shared by every [Node].
type Meta struct {
	// ID is unique within a single parse but not stable across conversions.
	ID string `json:"id,omitempty" toml:"id,omitempty" yaml:"id,omitempty"`

	// Parent is the ID of the enclosing group, empty for the root.
	Parent string `json:"parent,omitempty" toml:"parent,omitempty" yaml:"parent,omitempty"`

	// Name is the display name, never empty once parsed.
	Name string `json:"name" toml:"name" yaml:"name"`
}

// Info implements [Node].
func (m Meta) Info() Meta {
	return m
}

// Group is a folder in a collection or a logic controller in a test plan.
type Group struct {
	Meta `yaml:",inline"`

	// Optional free text description, only populated for the collection root
	Description string `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`

	// The sub groups and requests in document order
	Children []Node `json:"children,omitempty" toml:"children,omitempty" yaml:"children,omitempty"`
}

// Add appends a child to the group, setting its parent to the group's ID.
func (g *Group) Add(child Node) {
	switch node := child.(type) {
	case *Group:
		node.Parent = g.ID
	case *Request:
		node.Parent = g.ID
	}

	g.Children = append(g.Children, child)
}

// Groups returns the direct children of g that are groups.
func (g *Group) Groups() []*Group {
	var groups []*Group

	for _, child := range g.Children {
		if group, ok := child.(*Group); ok {
			groups = append(groups, group)
		}
	}

	return groups
}

// Requests returns every request in the tree rooted at g, depth first in
// document order.
func (g *Group) Requests() []*Request {
	var requests []*Request

	Walk(g, func(node Node, _ int) {
		if request, ok := node.(*Request); ok {
			requests = append(requests, request)
		}
	})

	return requests
}

// String implements [fmt.Stringer] for a [Group] and renders an indented
// outline of the tree, handy for debugging.
func (g *Group) String() string {
	builder := &strings.Builder{}

	Walk(g, func(node Node, depth int) {
		indent := strings.Repeat("  ", depth)

		switch node := node.(type) {
		case *Group:
			fmt.Fprintf(builder, "%s%s/\n", indent, node.Name)
		case *Request:
			fmt.Fprintf(builder, "%s%s %s (%s)\n", indent, node.Method, node.Name, node.URL)
		}
	})

	return builder.String()
}

// Walk calls fn for node and every node beneath it, pre-order and depth first.
//
// depth is 0 for node itself.
func Walk(node Node, fn func(node Node, depth int)) {
	walk(node, 0, fn)
}

func walk(node Node, depth int, fn func(node Node, depth int)) {
	fn(node, depth)

	group, ok := node.(*Group)
	if !ok {
		return
	}

	for _, child := range group.Children {
		walk(child, depth+1, fn)
	}
}
