package syncer

import (
	"encoding/json"
	"fmt"
)

// MissingTranslationsError reports that the template has no usable block for
// the designated language. It aborts a run before any mutation but is an
// expected, reportable condition rather than a parse failure.
type MissingTranslationsError struct {
	Language string
}

func (e *MissingTranslationsError) Error() string {
	return fmt.Sprintf("syncer: no %q translations found in webform template", e.Language)
}

// Update records a single field whose label changed during a run. Old and New
// hold the raw JSON values so null and non-string shapes survive for
// reporting.
type Update struct {
	Field string
	Old   json.RawMessage
	New   json.RawMessage
}

// OldLabel renders the previous value for operator output.
func (u Update) OldLabel() string {
	return renderValue(u.Old)
}

// NewLabel renders the authoritative value for operator output.
func (u Update) NewLabel() string {
	return renderValue(u.New)
}

// Result is the outcome of one engine pass.
type Result struct {
	// Language is the template block that drove the sync.
	Language string

	// SourceLabels counts the labels found in the authoritative mapping.
	SourceLabels int

	// Updates lists changed fields in the template's iteration order. Empty
	// means the target already agreed on every shared field.
	Updates []Update
}

// Changed reports whether the run produced any updates.
func (r *Result) Changed() bool {
	return r != nil && len(r.Updates) > 0
}

func renderValue(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}
