package task

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// taskSchema is the structural contract for task files. The action value is
// deliberately not an enum: the engine degrades unrecognized actions to a
// skipped result instead of refusing the whole file.
const taskSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["changes"],
	"properties": {
		"name": {"type": "string"},
		"root": {"type": "string"},
		"changes": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["path", "action"],
				"properties": {
					"path": {"type": "string", "minLength": 1},
					"action": {"type": "string", "minLength": 1},
					"content": {"type": "string"}
				}
			}
		}
	}
}`

// ValidationError reports every schema violation found in a task file.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid task file: %s", strings.Join(e.Issues, "; "))
}

// Validate checks task data against the task schema without decoding it
// into a Task. Returns *ValidationError when the data is structurally
// invalid.
func Validate(data []byte, format Format) error {
	var doc any

	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return fmt.Errorf("failed to parse YAML: %w", err)
		}
	default:
		dec := json.NewDecoder(strings.NewReader(string(data)))
		dec.UseNumber()
		if err := dec.Decode(&doc); err != nil {
			return fmt.Errorf("failed to parse JSON: %w", err)
		}
	}

	schemaLoader := gojsonschema.NewStringLoader(taskSchema)
	docLoader := gojsonschema.NewGoLoader(doc)

	result, err := gojsonschema.Validate(schemaLoader, docLoader)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}

	if !result.Valid() {
		issues := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			issues = append(issues, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
		}
		return &ValidationError{Issues: issues}
	}

	return nil
}
