package tree

import (
	"fmt"
	"strings"
)

// Sentinels used where the source formats have no value.
const (
	// NoBodyContent is the textual form of a request without a body.
	NoBodyContent = "No body content"

	// UnsupportedBodyContent is the textual form of a file upload body.
	UnsupportedBodyContent = "File upload not supported in JSON output"

	// StatusOKCheck is the only assertion pattern translated between formats.
	StatusOKCheck = "pm.response.to.have.status(200)"
)

// NoQueryParameters is the single entry of the [Query] produced for a URL
// without a query string.
//
//nolint:gochecknoglobals // Sentinel value, compared against by callers
var NoQueryParameters = Param{Key: "No query parameters"}

// Request is a single HTTP request definition.
type Request struct {
	Meta `yaml:",inline"`

	// The HTTP method e.g. GET
	Method string `json:"method" toml:"method" yaml:"method"`

	// The raw URL with placeholders in ${name} form
	URL string `json:"url" toml:"url" yaml:"url"`

	// Query parameters in the order they appear in the URL
	Query Query `json:"query,omitempty" toml:"query,omitempty" yaml:"query,omitempty"`

	// The request body
	Body Body `json:"body" toml:"body" yaml:"body"`

	// Test assertions attached to the request
	Assertions []Assertion `json:"assertions,omitempty" toml:"assertions,omitempty" yaml:"assertions,omitempty"`
}

// ChecksStatusOK reports whether any of the request's assertions
// checks for a 200 response.
func (r *Request) ChecksStatusOK() bool {
	for _, assertion := range r.Assertions {
		if assertion.ChecksStatusOK() {
			return true
		}
	}

	return false
}

// Param is a single key value pair, used for query parameters and form fields.
type Param struct {
	Key   string `json:"key" toml:"key" yaml:"key"`
	Value string `json:"value" toml:"value" yaml:"value"`
}

// Query is an ordered list of query parameters, keys may repeat.
type Query []Param

// None reports whether q carries no real parameters, either because it is empty
// or because it is the [NoQueryParameters] sentinel.
func (q Query) None() bool {
	return len(q) == 0 || (len(q) == 1 && q[0] == NoQueryParameters)
}

// Grouped returns the values of q grouped by key, keys in first seen order.
func (q Query) Grouped() []Values {
	if q.None() {
		return nil
	}

	var grouped []Values

	index := make(map[string]int)

	for _, param := range q {
		i, seen := index[param.Key]
		if !seen {
			index[param.Key] = len(grouped)
			grouped = append(grouped, Values{Key: param.Key})
			i = len(grouped) - 1
		}

		grouped[i].Values = append(grouped[i].Values, param.Value)
	}

	return grouped
}

// Encode renders q as a URL query string without escaping, the values keep
// their placeholders intact.
func (q Query) Encode() string {
	if q.None() {
		return ""
	}

	parts := make([]string, 0, len(q))
	for _, param := range q {
		parts = append(parts, param.Key+"="+param.Value)
	}

	return strings.Join(parts, "&")
}

// Values is every value given for a single query key.
type Values struct {
	Key    string
	Values []string
}

// BodyMode identifies which representation of a [Body] is populated.
type BodyMode int

// Body modes.
const (
	BodyNone        BodyMode = iota // No body
	BodyRaw                         // A raw string
	BodyFields                      // Form or urlencoded key value pairs
	BodyUnsupported                 // A file upload, which is not converted
)

// String implements [fmt.Stringer] for [BodyMode].
func (m BodyMode) String() string {
	switch m {
	case BodyNone:
		return "none"
	case BodyRaw:
		return "raw"
	case BodyFields:
		return "fields"
	case BodyUnsupported:
		return "unsupported"
	default:
		return fmt.Sprintf("BodyMode(%d)", int(m))
	}
}

// MarshalText implements [encoding.TextMarshaler] for [BodyMode].
func (m BodyMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// Body is a request body. Exactly one of Raw or Fields is meaningful,
// selected by Mode.
type Body struct {
	// Raw body text, only for BodyRaw
	Raw string `json:"raw,omitempty" toml:"raw,omitempty" yaml:"raw,omitempty"`

	// Form fields, only for BodyFields
	Fields []Param `json:"fields,omitempty" toml:"fields,omitempty" yaml:"fields,omitempty"`

	// Which representation is populated
	Mode BodyMode `json:"mode" toml:"mode" yaml:"mode"`
}

// RawBody returns a raw [Body].
func RawBody(raw string) Body {
	return Body{Mode: BodyRaw, Raw: raw}
}

// FieldsBody returns a key value [Body].
func FieldsBody(fields []Param) Body {
	return Body{Mode: BodyFields, Fields: fields}
}

// String implements [fmt.Stringer] for a [Body].
func (b Body) String() string {
	switch b.Mode {
	case BodyRaw:
		return b.Raw
	case BodyFields:
		parts := make([]string, 0, len(b.Fields))
		for _, field := range b.Fields {
			parts = append(parts, field.Key+"="+field.Value)
		}

		return strings.Join(parts, "&")
	case BodyUnsupported:
		return UnsupportedBodyContent
	default:
		return NoBodyContent
	}
}

// Assertion is a named test attached to a request.
//
// Only the status 200 check is translated between formats, everything else
// is carried as opaque script text.
type Assertion struct {
	Name   string `json:"name" toml:"name" yaml:"name"`
	Script string `json:"script" toml:"script" yaml:"script"`
}

// ChecksStatusOK reports whether the assertion's script checks for a
// 200 response.
func (a Assertion) ChecksStatusOK() bool {
	return strings.Contains(a.Script, StatusOKCheck)
}
