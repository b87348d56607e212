// Package jsonmap implements an insertion-ordered JSON object. The standard
// map-based decoding loses key order, which matters twice in this module: the
// target document must round-trip operator-curated sections untouched, and
// update reporting follows the template's own key order.
package jsonmap

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Map is a JSON object whose keys iterate in insertion order. Values are kept
// as raw JSON so unrecognized payloads pass through without re-interpretation.
type Map struct {
	keys   []string
	values map[string]json.RawMessage
}

// New returns an empty Map ready for use.
func New() *Map {
	return &Map{values: make(map[string]json.RawMessage)}
}

// Parse decodes data as a single JSON object, preserving the order keys
// appear in the document. Duplicate keys keep their first position but take
// the last value, matching standard JSON semantics.
func Parse(data []byte) (*Map, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("jsonmap: decode: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("jsonmap: expected object, got %v", tok)
	}

	m := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("jsonmap: decode key: %w", err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonmap: expected string key, got %v", keyTok)
		}

		var raw json.RawMessage
		if err := dec.Decode(&raw); err != nil {
			return nil, fmt.Errorf("jsonmap: decode value for %q: %w", key, err)
		}
		m.Set(key, raw)
	}

	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("jsonmap: decode: %w", err)
	}
	if dec.More() {
		return nil, fmt.Errorf("jsonmap: trailing content after object")
	}

	return m, nil
}

// Len reports the number of keys.
func (m *Map) Len() int {
	if m == nil {
		return 0
	}
	return len(m.keys)
}

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	if m == nil {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Has reports whether key is present.
func (m *Map) Has(key string) bool {
	if m == nil {
		return false
	}
	_, ok := m.values[key]
	return ok
}

// Get returns the raw value stored under key.
func (m *Map) Get(key string) (json.RawMessage, bool) {
	if m == nil {
		return nil, false
	}
	raw, ok := m.values[key]
	return raw, ok
}

// Set stores raw under key. Existing keys keep their position; new keys are
// appended.
func (m *Map) Set(key string, raw json.RawMessage) {
	if m.values == nil {
		m.values = make(map[string]json.RawMessage)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = raw
}

// MarshalCompact serializes the map as a compact JSON object in key order.
func (m *Map) MarshalCompact() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		encodedKey, err := EncodeValue(key)
		if err != nil {
			return nil, err
		}
		buf.Write(encodedKey)
		buf.WriteByte(':')
		if err := json.Compact(&buf, m.values[key]); err != nil {
			return nil, fmt.Errorf("jsonmap: compact value for %q: %w", key, err)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Encode writes the map as a pretty-printed JSON object into buf. depth is
// the nesting level of the object itself; values are indented with two spaces
// per level. Raw values keep their internal key order via json.Indent.
func (m *Map) Encode(buf *bytes.Buffer, depth int) error {
	if m.Len() == 0 {
		buf.WriteString("{}")
		return nil
	}

	pad := strings.Repeat("  ", depth)
	inner := pad + "  "

	buf.WriteString("{\n")
	for i, key := range m.keys {
		buf.WriteString(inner)
		encodedKey, err := EncodeValue(key)
		if err != nil {
			return err
		}
		buf.Write(encodedKey)
		buf.WriteString(": ")
		if err := json.Indent(buf, m.values[key], inner, "  "); err != nil {
			return fmt.Errorf("jsonmap: indent value for %q: %w", key, err)
		}
		if i < len(m.keys)-1 {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteString(pad)
	buf.WriteByte('}')
	return nil
}

// EncodeValue marshals v with HTML characters and non-ASCII runes emitted
// literally, the way the synced documents are stored on disk.
func EncodeValue(v any) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("jsonmap: encode value: %w", err)
	}
	return json.RawMessage(bytes.TrimRight(buf.Bytes(), "\n")), nil
}
