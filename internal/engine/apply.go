package engine

import (
	"context"

	"github.com/dkim-dev/changeset/internal/task"
)

// Apply processes the request's changes strictly in input order and returns
// a summary with one result per change.
//
// A path that escapes the root (*sandbox.InvalidPathError) or a filesystem
// failure (*FileOpError) aborts the whole batch: no partial summary is
// returned, on the principle that one untrusted path invalidates confidence
// in the rest. Structural problems (missing content, unknown action) are
// not errors; they are recorded as skipped results and processing
// continues.
//
// The engine imposes no deadline of its own; ctx is checked between
// changes so an outer cancellation aborts the batch.
func (e *Engine) Apply(ctx context.Context, req *ApplyRequest) (*ApplySummary, error) {
	summary := newSummary(req.DryRun, len(req.Changes))

	for _, change := range req.Changes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		result, err := e.applyChange(req, change)
		if err != nil {
			return nil, err
		}

		summary.Operations = append(summary.Operations, result)
		summary.Counts[result.Status]++
	}

	return summary, nil
}

// applyChange performs (or simulates) the filesystem effect of one change
// and builds its result record.
func (e *Engine) applyChange(req *ApplyRequest, change task.FileChange) (FileOperationResult, error) {
	out := outcomeFor(change)

	if out.effect != effectNone {
		resolved, err := resolve(req.RootDir, change.Path)
		if err != nil {
			return FileOperationResult{}, err
		}

		if !req.DryRun {
			switch out.effect {
			case effectWrite:
				if err := e.writeFile(resolved, change.Path, *change.Content); err != nil {
					return FileOperationResult{}, err
				}
			case effectDelete:
				if err := e.deleteFile(resolved, change.Path); err != nil {
					return FileOperationResult{}, err
				}
			}
		}
	}

	if req.OnEvent != nil {
		req.OnEvent(out.eventLine(change.Path))
	}

	return FileOperationResult{
		Change:  change,
		Status:  out.status,
		Message: out.message(req.DryRun),
	}, nil
}
