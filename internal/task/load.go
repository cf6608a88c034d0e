package task

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies a task file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from a file extension. JSON is the
// default for unknown extensions.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Load reads, validates, and decodes a task file. The encoding is chosen by
// file extension. Validation failures are returned as a *ValidationError
// listing every issue.
func Load(path string) (*Task, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file: %w", err)
	}
	return Parse(data, FormatForPath(path))
}

// Parse validates and decodes task data in the given format.
func Parse(data []byte, format Format) (*Task, error) {
	if err := Validate(data, format); err != nil {
		return nil, err
	}

	var t Task
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to decode YAML task: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &t); err != nil {
			return nil, fmt.Errorf("failed to decode JSON task: %w", err)
		}
	}

	return &t, nil
}
