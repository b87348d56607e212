package webform

import (
	"fmt"
	"os"
)

// Load reads and parses the webform template at path. Missing files surface
// as wrapped os.ErrNotExist so callers can report the path distinctly from a
// malformed document.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("webform: read %s: %w", path, err)
	}

	return Parse(data)
}
