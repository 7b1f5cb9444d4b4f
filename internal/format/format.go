// Package format dumps the internal tree into other formats and reads it back from
// the two conversion formats.
//
// Notably, the package provides the [Importer] and [Exporter] interfaces for doing this
// in a format-agnostic way.
//
// It also provides the built in exporters: JSON, YAML, TOML and curl. A Postman collection
// parser or JMeter test plan parser is an [Importer], their renderers are [Exporter]s.
package format

import (
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"

	"go.followtheprocess.codes/pmx/internal/collection"
	"go.followtheprocess.codes/pmx/internal/testplan"
	"go.followtheprocess.codes/pmx/internal/tree"
)

// Exporter is the interface defining a mechanism for exporting a tree into an
// external format.
type Exporter interface {
	// Export exports the tree rooted at root into an external format, written to w.
	Export(w io.Writer, root *tree.Group) error
}

// Importer is the interface defining a mechanism for importing external formats
// into a tree.
type Importer interface {
	// Import imports the data from the external format into a tree.
	Import(r io.Reader) (*tree.Group, error)
}

var (
	_ Importer = collection.Parser{}
	_ Importer = testplan.Parser{}
	_ Exporter = collection.Renderer{}
	_ Exporter = testplan.Renderer{}
)

// exporters maps the names accepted by [Lookup] to their exporter.
//
//nolint:gochecknoglobals // Read only lookup table
var exporters = map[string]Exporter{
	"json": JSONExporter{},
	"yaml": YAMLExporter{},
	"yml":  YAMLExporter{},
	"toml": TOMLExporter{},
	"curl": CurlExporter{},
}

// Names returns the names accepted by [Lookup], sorted.
func Names() []string {
	names := make([]string, 0, len(exporters))
	for name := range exporters {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Lookup returns the built in [Exporter] called name, case insensitive.
func Lookup(name string) (Exporter, error) {
	exporter, ok := exporters[strings.ToLower(name)]
	if !ok {
		return nil, &tree.UnsupportedFeatureError{
			Feature: fmt.Sprintf("format %q, expected one of %s", name, strings.Join(Names(), ", ")),
		}
	}

	return exporter, nil
}

// ForFile returns the [Importer] for path, chosen by its extension.
//
// The importer draws identifiers from counter, a new one if nil.
func ForFile(path string, counter *tree.Counter, strict bool) (Importer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return collection.NewParser(counter, strict), nil
	case ".jmx":
		return testplan.NewParser(counter), nil
	default:
		return nil, &tree.UnsupportedFeatureError{Feature: fmt.Sprintf("reading %q files", filepath.Ext(path))}
	}
}
