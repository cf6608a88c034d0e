package engine

import "fmt"

// FileOpError reports a filesystem write or delete that failed for a reason
// other than the target being absent. It is fatal to the whole batch.
type FileOpError struct {
	// Op is the operation that failed: "write" or "delete".
	Op string

	// Path is the change's path as requested.
	Path string

	// Err is the underlying cause.
	Err error
}

func (e *FileOpError) Error() string {
	return fmt.Sprintf("failed to %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *FileOpError) Unwrap() error {
	return e.Err
}
