package format

import (
	"io"

	"go.followtheprocess.codes/pmx/internal/tree"
	"go.yaml.in/yaml/v4"
)

const yamlIndent = 2

// YAMLExporter is an [Exporter] that dumps a tree as a YAML document.
type YAMLExporter struct{}

// Export implements [Exporter] for [YAMLExporter] and exports the given tree as
// a complete YAML document.
func (y YAMLExporter) Export(w io.Writer, root *tree.Group) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(yamlIndent)

	return encoder.Encode(NewDump(root))
}
