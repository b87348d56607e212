package translations

import (
	"fmt"
	"os"
)

// Load reads and parses the translations file at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("translations: read %s: %w", path, err)
	}
	return Parse(data)
}
