package format

import (
	"encoding/json"
	"io"

	"go.followtheprocess.codes/pmx/internal/tree"
)

// JSONExporter is an [Exporter] that dumps a tree as a JSON document.
type JSONExporter struct{}

// Export implements [Exporter] for [JSONExporter] and exports the given tree
// as a complete JSON document.
func (j JSONExporter) Export(w io.Writer, root *tree.Group) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	return encoder.Encode(NewDump(root))
}
