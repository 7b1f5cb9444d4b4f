package tree

import "fmt"

// NotFoundError is returned when an input file does not exist.
type NotFoundError struct {
	Err  error  // The underlying filesystem error
	Path string // The missing path
}

// Error implements the error interface for [NotFoundError].
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("file %s does not exist", e.Path)
}

// Unwrap returns the underlying filesystem error.
func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// ParseError is returned when a document is not syntactically valid
// JSON or XML.
type ParseError struct {
	Err    error  // The decoder error
	Format string // "collection" or "test plan"
}

// Error implements the error interface for [ParseError].
func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %v", e.Format, e.Err)
}

// Unwrap returns the decoder error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// SchemaValidationError is returned when a collection is valid JSON but
// does not conform to the collection schema.
type SchemaValidationError struct {
	Err error // The validator error
}

// Error implements the error interface for [SchemaValidationError].
func (e *SchemaValidationError) Error() string {
	return fmt.Sprintf("the provided file does not conform to the Postman Collection schema: %v", e.Err)
}

// Unwrap returns the validator error.
func (e *SchemaValidationError) Unwrap() error {
	return e.Err
}

// UnsupportedFeatureError is returned for input the converter deliberately
// does not handle, such as file upload bodies or an unknown conversion.
type UnsupportedFeatureError struct {
	Feature string
}

// Error implements the error interface for [UnsupportedFeatureError].
func (e *UnsupportedFeatureError) Error() string {
	return fmt.Sprintf("%s is not supported", e.Feature)
}
