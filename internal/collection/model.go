package collection

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Collection is a Postman collection document as read from disk.
type Collection struct {
	Info Info   `json:"info"`
	Item []Item `json:"item"`
}

// Info is the collection's metadata block.
type Info struct {
	// Description is either a plain string or an object with a content field
	Description Description `json:"description,omitempty"`
	Name        string      `json:"name"`
	Schema      string      `json:"schema,omitempty"`
}

// Item is either a folder (Item is non-nil) or a request.
type Item struct {
	Request  *Request `json:"request,omitempty"`
	Name     string   `json:"name,omitempty"`
	Item     []Item   `json:"item,omitempty"`
	Event    []Event  `json:"event,omitempty"`
	isFolder bool
}

// IsFolder reports whether the item is a folder, i.e. it has an item array.
func (i Item) IsFolder() bool {
	return i.isFolder
}

// UnmarshalJSON implements [json.Unmarshaler] for [Item] so that a folder
// with an empty item array is still recognised as a folder.
func (i *Item) UnmarshalJSON(data []byte) error {
	type plain Item

	var raw struct {
		Item json.RawMessage `json:"item"`
		plain
	}

	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = Item(raw.plain)

	if len(raw.Item) != 0 && !bytes.Equal(raw.Item, []byte("null")) {
		i.isFolder = true
		if err := json.Unmarshal(raw.Item, &i.Item); err != nil {
			return err
		}
	}

	return nil
}

// Request is the request definition of an item. Postman allows a bare
// URL string in place of the object.
type Request struct {
	Body   *Body  `json:"body,omitempty"`
	Method string `json:"method,omitempty"`
	URL    URL    `json:"url"`
}

// UnmarshalJSON implements [json.Unmarshaler] for [Request].
func (r *Request) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*r = Request{URL: URL{Raw: raw}}
		return nil
	}

	type plain Request

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*r = Request(p)

	return nil
}

// URL is a request URL, Postman allows either a string or an object.
type URL struct {
	Raw string `json:"raw"`
}

// UnmarshalJSON implements [json.Unmarshaler] for [URL].
func (u *URL) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		u.Raw = raw
		return nil
	}

	type plain URL

	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	*u = URL(p)

	return nil
}

// Body is a request body, Mode selects which of the other fields is used.
type Body struct {
	Mode       string  `json:"mode,omitempty"`
	Raw        string  `json:"raw,omitempty"`
	FormData   []Field `json:"formdata,omitempty"`
	URLEncoded []Field `json:"urlencoded,omitempty"`
}

// Field is a single form or urlencoded body entry.
type Field struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Event is a script attached to an item, e.g. a test script.
type Event struct {
	Listen string `json:"listen"`
	Script Script `json:"script"`
}

// Script is the source of an [Event].
type Script struct {
	Exec Lines  `json:"exec"`
	Type string `json:"type,omitempty"`
}

// Lines is a script's source lines. Postman allows a single string as well as
// an array, a string is split on newlines.
type Lines []string

// UnmarshalJSON implements [json.Unmarshaler] for [Lines].
func (l *Lines) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*l = strings.Split(raw, "\n")
		return nil
	}

	var lines []string
	if err := json.Unmarshal(data, &lines); err != nil {
		return err
	}

	*l = lines

	return nil
}

// Description is a collection description, either a string or an object
// with a content field.
type Description string

// UnmarshalJSON implements [json.Unmarshaler] for [Description].
func (d *Description) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err == nil {
		*d = Description(raw)
		return nil
	}

	var object struct {
		Content string `json:"content"`
	}

	if err := json.Unmarshal(data, &object); err != nil {
		return err
	}

	*d = Description(object.Content)

	return nil
}
