package webform

import (
	"encoding/json"
	"fmt"

	"golang.org/x/text/language"

	"github.com/goliatone/go-formsync/internal/jsonmap"
)

const translationsKey = "formTranslations"

// Document is a parsed webform template. Only the embedded formTranslations
// table is retained; the document is read-only for the lifetime of a run.
type Document struct {
	languages []string
	labels    map[string]*LabelSet
}

// LabelSet is the field-key → label mapping for one language, in template
// order. It is the authoritative side of a sync.
type LabelSet struct {
	entries *jsonmap.Map
}

// Parse decodes a webform template payload. A template without a
// formTranslations table parses successfully and simply exposes no languages;
// the sync engine turns that into its structural failure.
func Parse(data []byte) (*Document, error) {
	root, err := jsonmap.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("webform: parse template: %w", err)
	}

	doc := &Document{labels: make(map[string]*LabelSet)}

	raw, ok := root.Get(translationsKey)
	if !ok {
		return doc, nil
	}

	table, err := jsonmap.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("webform: parse %s: %w", translationsKey, err)
	}

	for _, code := range table.Keys() {
		block, _ := table.Get(code)
		entries, err := jsonmap.Parse(block)
		if err != nil {
			return nil, fmt.Errorf("webform: parse %s.%s: %w", translationsKey, code, err)
		}
		doc.languages = append(doc.languages, code)
		doc.labels[code] = &LabelSet{entries: entries}
	}

	return doc, nil
}

// Languages lists the language codes present in the template, in template
// order.
func (d *Document) Languages() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.languages))
	copy(out, d.languages)
	return out
}

// Labels returns the label set for the requested language code. Lookup is
// exact first; when that misses, codes are compared as canonical BCP 47 tags
// so "en-US" finds a template block keyed "en-us".
func (d *Document) Labels(code string) (*LabelSet, bool) {
	if d == nil {
		return nil, false
	}
	if set, ok := d.labels[code]; ok {
		return set, true
	}

	want, err := language.Parse(code)
	if err != nil {
		return nil, false
	}
	for _, candidate := range d.languages {
		got, err := language.Parse(candidate)
		if err != nil {
			continue
		}
		if got == want {
			return d.labels[candidate], true
		}
	}
	return nil, false
}

// Len reports the number of labels in the set.
func (s *LabelSet) Len() int {
	if s == nil {
		return 0
	}
	return s.entries.Len()
}

// Keys returns the field keys in template order.
func (s *LabelSet) Keys() []string {
	if s == nil {
		return nil
	}
	return s.entries.Keys()
}

// Label returns the raw label value for a field key. Labels are normally JSON
// strings but the raw form is preserved so comparisons stay exact.
func (s *LabelSet) Label(key string) (json.RawMessage, bool) {
	if s == nil {
		return nil, false
	}
	return s.entries.Get(key)
}
