package collection

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"go.followtheprocess.codes/pmx/internal/placeholder"
)

// errNotContainer is returned by [reencode] when a JSON document is a bare scalar.
var errNotContainer = errors.New("raw body is not a JSON object or array")

// bodyIndent is the indentation used for re-serialised raw bodies.
const bodyIndent = "    "

// reencode parses a raw JSON body and re-serialises it with four space indentation,
// rewriting ${name} placeholders to {{name}} in every string value.
//
// Object key order is preserved, which is why this works on the token stream
// rather than decoding into a map.
func reencode(raw string) (string, error) {
	decoder := json.NewDecoder(bytes.NewReader([]byte(raw)))
	decoder.UseNumber()

	first, err := decoder.Token()
	if err != nil {
		return "", fmt.Errorf("invalid JSON body: %w", err)
	}

	if first != json.Delim('{') && first != json.Delim('[') {
		return "", errNotContainer
	}

	compact := &bytes.Buffer{}

	if err := writeValue(compact, decoder, first); err != nil {
		return "", fmt.Errorf("invalid JSON body: %w", err)
	}

	if _, err := decoder.Token(); !errors.Is(err, io.EOF) {
		return "", errors.New("invalid JSON body: trailing data after top level value")
	}

	indented := &bytes.Buffer{}
	if err := json.Indent(indented, compact.Bytes(), "", bodyIndent); err != nil {
		return "", fmt.Errorf("could not indent JSON body: %w", err)
	}

	return indented.String(), nil
}

// writeValue writes the value starting at token, consuming the rest of it from decoder
// if it is an object or array.
func writeValue(w *bytes.Buffer, decoder *json.Decoder, token json.Token) error {
	switch value := token.(type) {
	case json.Delim:
		switch value {
		case '{':
			return writeObject(w, decoder)
		case '[':
			return writeArray(w, decoder)
		default:
			return fmt.Errorf("unexpected delimiter %q", value)
		}
	case string:
		return writeScalar(w, placeholder.Decode(value))
	default:
		return writeScalar(w, value)
	}
}

func writeObject(w *bytes.Buffer, decoder *json.Decoder) error {
	w.WriteByte('{')

	for i := 0; decoder.More(); i++ {
		if i > 0 {
			w.WriteByte(',')
		}

		key, err := decoder.Token()
		if err != nil {
			return err
		}

		if err := writeScalar(w, key); err != nil {
			return err
		}

		w.WriteByte(':')

		token, err := decoder.Token()
		if err != nil {
			return err
		}

		if err := writeValue(w, decoder, token); err != nil {
			return err
		}
	}

	// Closing '}'
	if _, err := decoder.Token(); err != nil {
		return err
	}

	w.WriteByte('}')

	return nil
}

func writeArray(w *bytes.Buffer, decoder *json.Decoder) error {
	w.WriteByte('[')

	for i := 0; decoder.More(); i++ {
		if i > 0 {
			w.WriteByte(',')
		}

		token, err := decoder.Token()
		if err != nil {
			return err
		}

		if err := writeValue(w, decoder, token); err != nil {
			return err
		}
	}

	// Closing ']'
	if _, err := decoder.Token(); err != nil {
		return err
	}

	w.WriteByte(']')

	return nil
}

// writeScalar writes a single JSON scalar without escaping HTML characters.
func writeScalar(w *bytes.Buffer, value any) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(value); err != nil {
		return err
	}

	// Encode always appends a newline
	w.Truncate(w.Len() - 1)

	return nil
}

// fieldsJSON serialises key value pairs as a JSON object in the given order,
// re-encoding placeholders in the values.
func fieldsJSON(keys, values []string) (string, error) {
	compact := &bytes.Buffer{}
	compact.WriteByte('{')

	for i := range keys {
		if i > 0 {
			compact.WriteByte(',')
		}

		if err := writeScalar(compact, keys[i]); err != nil {
			return "", err
		}

		compact.WriteByte(':')

		if err := writeScalar(compact, placeholder.Decode(values[i])); err != nil {
			return "", err
		}
	}

	compact.WriteByte('}')

	indented := &bytes.Buffer{}
	if err := json.Indent(indented, compact.Bytes(), "", bodyIndent); err != nil {
		return "", err
	}

	return indented.String(), nil
}
