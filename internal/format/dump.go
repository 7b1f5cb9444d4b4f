package format

import (
	"strings"

	"go.followtheprocess.codes/pmx/internal/tree"
)

// Dump is a flattened view of a tree, every group and request listed once with
// the path of the groups above it.
//
// Structured exporters encode a Dump rather than the tree itself so that every format
// can represent it, TOML has no way of mixing groups and requests in one array.
type Dump struct {
	Name        string         `json:"name"                  toml:"name"                  yaml:"name"`
	Description string         `json:"description,omitempty" toml:"description,omitempty" yaml:"description,omitempty"`
	Groups      []GroupEntry   `json:"groups,omitempty"      toml:"groups,omitempty"      yaml:"groups,omitempty"`
	Requests    []RequestEntry `json:"requests,omitempty"    toml:"requests,omitempty"    yaml:"requests,omitempty"`
}

// GroupEntry is a single group in a [Dump].
type GroupEntry struct {
	tree.Meta `yaml:",inline"`

	// Slash separated names of the enclosing groups, empty at the top level
	Path string `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`

	// Number of direct children
	Children int `json:"children" toml:"children" yaml:"children"`
}

// RequestEntry is a single request in a [Dump].
type RequestEntry struct {
	tree.Request `yaml:",inline"`

	// Slash separated names of the enclosing groups, empty at the top level
	Path string `json:"path,omitempty" toml:"path,omitempty" yaml:"path,omitempty"`
}

// NewDump flattens the tree rooted at root, depth first in document order.
func NewDump(root *tree.Group) Dump {
	dump := Dump{Name: root.Name, Description: root.Description}
	dump.walk(root, nil)

	return dump
}

func (d *Dump) walk(group *tree.Group, path []string) {
	joined := strings.Join(path, "/")

	for _, child := range group.Children {
		switch node := child.(type) {
		case *tree.Group:
			d.Groups = append(d.Groups, GroupEntry{Meta: node.Meta, Path: joined, Children: len(node.Children)})
			d.walk(node, append(path, node.Name))
		case *tree.Request:
			d.Requests = append(d.Requests, RequestEntry{Request: *node, Path: joined})
		}
	}
}
