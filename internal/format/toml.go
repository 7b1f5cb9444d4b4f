package format

import (
	"io"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/pmx/internal/tree"
)

// TOMLExporter is an [Exporter] that dumps a tree as a TOML document.
type TOMLExporter struct{}

// Export implements [Exporter] for [TOMLExporter] and exports the given tree
// as a complete TOML document.
func (t TOMLExporter) Export(w io.Writer, root *tree.Group) error {
	encoder := toml.NewEncoder(w)
	encoder.Indent = ""

	return encoder.Encode(NewDump(root))
}
