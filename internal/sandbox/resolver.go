// Package sandbox confines file paths to a project root directory.
//
// Every path the engine touches is resolved through this package first,
// which guarantees that no change can escape the configured root via
// traversal segments or absolute paths.
package sandbox

import (
	"fmt"
	"path/filepath"
	"strings"
)

// InvalidPathError reports a requested path that resolves outside the
// sandbox root.
type InvalidPathError struct {
	// Path is the path as the caller requested it.
	Path string

	// Root is the canonical absolute sandbox root the path escaped.
	Root string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("path %q resolves outside the sandbox root %q", e.Path, e.Root)
}

// Resolve converts a project-relative path into an absolute path nested
// under rootDir. Both "/" and "\" are accepted as separators regardless of
// the host platform. The containment check operates on the fully resolved
// path, so a file name that merely starts with ".." (e.g. "..file.txt") is
// accepted, while "../x" or an absolute path like "/etc/passwd" fails with
// *InvalidPathError.
//
// Resolve is pure and safe for concurrent use.
func Resolve(rootDir, relPath string) (string, error) {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize root %q: %w", rootDir, err)
	}

	normalized := filepath.FromSlash(strings.ReplaceAll(relPath, "\\", "/"))

	// Absolute inputs are not joined onto the root, so they only survive
	// the containment check when they already point inside it.
	var resolved string
	if filepath.IsAbs(normalized) {
		resolved = filepath.Clean(normalized)
	} else {
		resolved = filepath.Join(root, normalized)
	}

	if resolved != root && !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", &InvalidPathError{Path: relPath, Root: root}
	}

	return resolved, nil
}
