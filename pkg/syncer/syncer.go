// Package syncer implements the authoritative-overwrite policy: labels from
// the webform template's translation table always supersede whatever the
// manually-maintained translations file holds for the same field key.
package syncer

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/goliatone/go-formsync/pkg/translations"
	"github.com/goliatone/go-formsync/pkg/webform"
)

// DefaultLanguage is the template language block that drives a sync unless an
// option overrides it.
const DefaultLanguage = "en-us"

// Option customises the engine configuration.
type Option func(*Engine)

// WithLanguage selects which language block of the template is treated as
// authoritative.
func WithLanguage(code string) Option {
	return func(e *Engine) {
		if code != "" {
			e.language = code
		}
	}
}

// WithSanitizedLabels strips markup from authoritative string labels before
// they are compared and applied.
func WithSanitizedLabels() Option {
	return func(e *Engine) {
		e.sanitize = true
	}
}

// Engine computes and applies field-label overwrites.
type Engine struct {
	language string
	sanitize bool
}

// New constructs an Engine applying any provided options.
func New(options ...Option) *Engine {
	e := &Engine{language: DefaultLanguage}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(e)
	}
	return e
}

// Language reports the language code the engine syncs from.
func (e *Engine) Language() string {
	return e.language
}

// Sync applies the template's authoritative labels to doc in place and
// returns the ordered update records. A template without a usable language
// block yields a *MissingTranslationsError and leaves doc untouched; that is
// a distinct outcome from a successful run that found zero differences.
//
// Fields present only in doc are never modified; fields present only in the
// template are never created. Comparison is exact: a null or non-string value
// under a field key is never equal to a string label.
func (e *Engine) Sync(doc *translations.Document, source *webform.Document) (*Result, error) {
	labels, ok := source.Labels(e.language)
	if !ok || labels.Len() == 0 {
		return nil, &MissingTranslationsError{Language: e.language}
	}

	result := &Result{
		Language:     e.language,
		SourceLabels: labels.Len(),
	}

	for _, key := range labels.Keys() {
		if !doc.HasField(key) {
			continue
		}

		authoritative, _ := labels.Label(key)
		if e.sanitize {
			authoritative = sanitizeLabel(authoritative)
		}

		current, _ := doc.Field(key)
		if valuesEqual(current, authoritative) {
			continue
		}

		if err := doc.SetField(key, authoritative); err != nil {
			return nil, err
		}
		result.Updates = append(result.Updates, Update{
			Field: key,
			Old:   current,
			New:   authoritative,
		})
	}

	return result, nil
}

// valuesEqual compares two raw JSON values by decoded structure, so
// equivalent encodings (escape sequences, whitespace) compare equal while
// type differences (null vs "" vs 0) do not. Undecodable values fall back to
// a byte comparison; the sync is total over the mapping either way.
func valuesEqual(a, b json.RawMessage) bool {
	var av, bv any
	if json.Unmarshal(a, &av) != nil || json.Unmarshal(b, &bv) != nil {
		return bytes.Equal(a, b)
	}
	return reflect.DeepEqual(av, bv)
}
