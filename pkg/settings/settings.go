// Package settings loads optional run defaults from a JSON or YAML file so
// recurring invocations don't need to repeat flags.
package settings

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Settings carries run defaults. Zero values mean "not configured"; explicit
// CLI flags always win over file values.
type Settings struct {
	// Language selects the authoritative template block.
	Language string `json:"language" yaml:"language"`

	// SanitizeLabels strips markup from authoritative labels.
	SanitizeLabels bool `json:"sanitizeLabels" yaml:"sanitizeLabels"`

	// ReportTemplate points at a custom diff template file.
	ReportTemplate string `json:"reportTemplate" yaml:"reportTemplate"`

	// NoColor disables ANSI styling in reports.
	NoColor bool `json:"noColor" yaml:"noColor"`

	// Confirm prompts before writing.
	Confirm bool `json:"confirm" yaml:"confirm"`
}

// Default returns the settings used when no file is supplied.
func Default() Settings {
	return Settings{Language: "en-us"}
}

// Load reads a settings file. The payload is tried as JSON first and YAML
// second, so either format works with the same flag.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("settings: read %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (Settings, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return Settings{}, fmt.Errorf("settings: file %s is empty", source)
	}

	s := Default()
	if err := json.Unmarshal(data, &s); err == nil {
		return s, nil
	}

	s = Default()
	if err := yaml.Unmarshal(data, &s); err == nil {
		return s, nil
	}

	return Settings{}, fmt.Errorf("settings: parse %s: invalid JSON or YAML", source)
}
