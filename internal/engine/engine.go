// Package engine applies declarative file changes to a sandboxed root
// directory.
//
// The engine is the only component that mutates the project tree. Every
// target path is confined to the root via the sandbox resolver, deletes are
// idempotent, and a dry run reports exactly the statuses a real run would,
// without touching the filesystem. A single unsafe path or filesystem
// failure aborts the whole batch with no partial summary.
package engine

import (
	"os"

	"github.com/dkim-dev/changeset/internal/fsops"
	"github.com/dkim-dev/changeset/internal/sandbox"
)

// defaultFileMode is the permission for files the engine creates.
const defaultFileMode os.FileMode = 0644

// Engine applies batches of file changes.
// It is the main API surface called by the CLI.
type Engine struct {
	fs fsops.FS
}

// New creates a new Engine using the given filesystem.
func New(fs fsops.FS) *Engine {
	return &Engine{fs: fs}
}

// writeFile materializes content at the resolved path, creating parent
// directories as needed and overwriting any existing file.
func (e *Engine) writeFile(resolved, requested string, content string) error {
	if err := e.fs.AtomicWrite(resolved, []byte(content), defaultFileMode); err != nil {
		return &FileOpError{Op: "write", Path: requested, Err: err}
	}
	return nil
}

// deleteFile removes the resolved path. A missing target is success.
func (e *Engine) deleteFile(resolved, requested string) error {
	if err := e.fs.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return &FileOpError{Op: "delete", Path: requested, Err: err}
	}
	return nil
}

// resolve confines a change's path to the root directory.
func resolve(rootDir, path string) (string, error) {
	return sandbox.Resolve(rootDir, path)
}
