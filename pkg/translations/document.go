// Package translations models the manually-maintained localization file that
// a sync run mutates. Only the "fields" section gets typed access; every
// other top-level section is carried as raw JSON so option labels, request
// type labels, and anything else the operators keep in the file round-trip
// untouched.
package translations

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/goliatone/go-formsync/internal/jsonmap"
)

const fieldsKey = "fields"

// Document is the mutable target of a sync run.
type Document struct {
	root   *jsonmap.Map
	fields *jsonmap.Map
}

// Parse decodes a translations payload. A document without a "fields"
// section is valid; it simply exposes no field keys.
func Parse(data []byte) (*Document, error) {
	root, err := jsonmap.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("translations: parse document: %w", err)
	}

	doc := &Document{root: root}

	raw, ok := root.Get(fieldsKey)
	if !ok {
		return doc, nil
	}
	fields, err := jsonmap.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("translations: parse %s section: %w", fieldsKey, err)
	}
	doc.fields = fields
	return doc, nil
}

// FieldKeys lists the keys of the fields section in document order.
func (d *Document) FieldKeys() []string {
	if d == nil {
		return nil
	}
	return d.fields.Keys()
}

// HasField reports whether key exists in the fields section.
func (d *Document) HasField(key string) bool {
	if d == nil {
		return false
	}
	return d.fields.Has(key)
}

// Field returns the raw value stored under key in the fields section.
func (d *Document) Field(key string) (json.RawMessage, bool) {
	if d == nil {
		return nil, false
	}
	return d.fields.Get(key)
}

// SetField overwrites the value stored under an existing field key. Keys not
// already present are rejected: the sync engine never introduces fields, and
// this keeps that invariant enforceable at the document layer.
func (d *Document) SetField(key string, raw json.RawMessage) error {
	if d == nil || !d.fields.Has(key) {
		return fmt.Errorf("translations: field %q not present", key)
	}
	d.fields.Set(key, raw)
	return nil
}

// Sections lists the top-level keys of the document in order.
func (d *Document) Sections() []string {
	if d == nil {
		return nil
	}
	return d.root.Keys()
}

// Encode serializes the document as pretty-printed JSON: two-space indent,
// HTML and non-ASCII characters literal, trailing newline. The mutated fields
// section is folded back into the root before encoding.
func (d *Document) Encode() ([]byte, error) {
	if d == nil || d.root == nil {
		return nil, fmt.Errorf("translations: encode nil document")
	}

	if d.fields != nil {
		compact, err := d.fields.MarshalCompact()
		if err != nil {
			return nil, fmt.Errorf("translations: encode %s section: %w", fieldsKey, err)
		}
		d.root.Set(fieldsKey, compact)
	}

	var buf bytes.Buffer
	if err := d.root.Encode(&buf, 0); err != nil {
		return nil, fmt.Errorf("translations: encode document: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
