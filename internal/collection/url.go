package collection

import (
	"strings"

	"go.followtheprocess.codes/pmx/internal/placeholder"
	"go.followtheprocess.codes/pmx/internal/tree"
)

// normaliseURL turns a Postman raw URL into the internal form: {{name}} placeholders
// become ${name} and every '.' becomes '_'.
//
// The dot rewrite is lossy, "api.example.com" cannot be recovered from "api_example_com".
func normaliseURL(raw string) string {
	return strings.ReplaceAll(placeholder.Encode(raw), ".", "_")
}

// queryParams extracts the query parameters from a normalised raw URL,
// returning the [tree.NoQueryParameters] sentinel if there are none.
func queryParams(raw string) tree.Query {
	_, query := tree.SplitURL(raw)

	params := tree.ParseQuery(query)
	if len(params) == 0 {
		return tree.Query{tree.NoQueryParameters}
	}

	return params
}
