// Package task defines the declarative file-change model and loads task
// files that describe a batch of changes.
//
// A task file is JSON or YAML with a list of changes. Fields the tool does
// not know about are preserved verbatim on each change, so upstream
// producers (e.g. an LLM planner) can attach their own metadata and see it
// echoed back in results.
package task

import (
	"encoding/json"
	"fmt"
)

// Action is the requested operation for a single change.
type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionNoop   Action = "noop"
)

// FileChange is a single declarative instruction targeting one
// project-relative path. Path may use either separator convention.
type FileChange struct {
	// Path is the project-relative target path.
	Path string `yaml:"path"`

	// Action is the requested operation.
	Action Action `yaml:"action"`

	// Content is the full file content for create/update. A nil pointer
	// means absent, which is distinct from an empty string.
	Content *string `yaml:"content,omitempty"`

	// Extra holds unrecognized fields, preserved verbatim.
	Extra map[string]any `yaml:",inline"`
}

// Task is a named batch of file changes.
type Task struct {
	// Name is an optional human-readable label for the batch.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Root optionally overrides the target root directory.
	Root string `json:"root,omitempty" yaml:"root,omitempty"`

	// Changes is the ordered list of changes to apply.
	Changes []FileChange `json:"changes" yaml:"changes"`
}

// knownChangeFields are the FileChange fields the tool interprets; anything
// else round-trips through Extra.
var knownChangeFields = map[string]struct{}{
	"path":    {},
	"action":  {},
	"content": {},
}

// UnmarshalJSON decodes the known fields and captures the rest in Extra.
func (c *FileChange) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if v, ok := raw["path"]; ok {
		if err := json.Unmarshal(v, &c.Path); err != nil {
			return fmt.Errorf("invalid path field: %w", err)
		}
	}
	if v, ok := raw["action"]; ok {
		if err := json.Unmarshal(v, &c.Action); err != nil {
			return fmt.Errorf("invalid action field: %w", err)
		}
	}
	if v, ok := raw["content"]; ok {
		if err := json.Unmarshal(v, &c.Content); err != nil {
			return fmt.Errorf("invalid content field: %w", err)
		}
	}

	for key, v := range raw {
		if _, known := knownChangeFields[key]; known {
			continue
		}
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("invalid field %q: %w", key, err)
		}
		if c.Extra == nil {
			c.Extra = make(map[string]any)
		}
		c.Extra[key] = val
	}

	return nil
}

// MarshalJSON emits the known fields merged with Extra.
func (c FileChange) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(c.Extra)+len(knownChangeFields))
	for key, val := range c.Extra {
		out[key] = val
	}
	out["path"] = c.Path
	out["action"] = c.Action
	if c.Content != nil {
		out["content"] = *c.Content
	}
	return json.Marshal(out)
}

// ContentOf is a convenience for building changes in code and tests.
func ContentOf(s string) *string {
	return &s
}
