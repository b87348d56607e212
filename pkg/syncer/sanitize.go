package syncer

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formsync/internal/jsonmap"
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// sanitizeLabel strips markup from string labels. Non-string values pass
// through unchanged so the comparison semantics stay exact.
func sanitizeLabel(raw json.RawMessage) json.RawMessage {
	var label string
	if err := json.Unmarshal(raw, &label); err != nil {
		return raw
	}

	cleaned := strings.TrimSpace(labelSanitizer().Sanitize(label))
	if cleaned == label {
		return raw
	}

	encoded, err := jsonmap.EncodeValue(cleaned)
	if err != nil {
		return raw
	}
	return encoded
}

func labelSanitizer() *bluemonday.Policy {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	return labelPolicy
}
