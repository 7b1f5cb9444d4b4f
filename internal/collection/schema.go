package collection

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"
)

// schemaJSON is the static schema a collection must satisfy before it is converted.
//
//go:embed schema.json
var schemaJSON []byte

// resolvedSchema compiles schemaJSON exactly once.
//
//nolint:gochecknoglobals // Compiling the schema once is the point
var resolvedSchema = sync.OnceValues(func() (*jsonschema.Resolved, error) {
	var schema jsonschema.Schema
	if err := json.Unmarshal(schemaJSON, &schema); err != nil {
		return nil, fmt.Errorf("could not decode collection schema: %w", err)
	}

	resolved, err := schema.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("could not resolve collection schema: %w", err)
	}

	return resolved, nil
})

// Validate checks a decoded JSON document (as produced by unmarshalling into an any)
// against the collection schema.
//
// A nil error means the document is a recognised collection.
func Validate(document any) error {
	schema, err := resolvedSchema()
	if err != nil {
		return err
	}

	return schema.Validate(document)
}
