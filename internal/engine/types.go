package engine

import (
	"github.com/dkim-dev/changeset/internal/task"
)

// Status is the engine's determination of a change's outcome. It is not
// always equal to the requested action: a create without content degrades
// to skipped, and noop always reports skipped.
type Status string

const (
	StatusCreated Status = "created"
	StatusUpdated Status = "updated"
	StatusDeleted Status = "deleted"
	StatusSkipped Status = "skipped"
)

// allStatuses enumerates every status, for count initialization.
var allStatuses = []Status{StatusCreated, StatusUpdated, StatusDeleted, StatusSkipped}

// ApplyRequest describes one invocation of the engine.
type ApplyRequest struct {
	// RootDir is the sandbox root; no change may take effect outside it.
	RootDir string

	// Changes is the ordered list of changes to apply.
	Changes []task.FileChange

	// DryRun reports what would happen without mutating the filesystem.
	DryRun bool

	// OnEvent, when non-nil, is invoked synchronously with one descriptive
	// line per change, in input order.
	OnEvent func(string)
}

// FileOperationResult records the outcome of a single change.
type FileOperationResult struct {
	// Change is the original change, echoed unchanged.
	Change task.FileChange `json:"change"`

	// Status is the engine's determination of the outcome.
	Status Status `json:"status"`

	// Message explains what happened or would happen.
	Message string `json:"message"`
}

// ApplySummary aggregates the results of one invocation.
type ApplySummary struct {
	// Operations holds one result per input change, in input order.
	Operations []FileOperationResult `json:"operations"`

	// DryRun echoes the invocation mode.
	DryRun bool `json:"dryRun"`

	// Counts maps each status to the number of results with that status.
	// Every status is present, and the counts sum to len(Operations).
	Counts map[Status]int `json:"counts"`
}

func newSummary(dryRun bool, capacity int) *ApplySummary {
	counts := make(map[Status]int, len(allStatuses))
	for _, s := range allStatuses {
		counts[s] = 0
	}
	return &ApplySummary{
		Operations: make([]FileOperationResult, 0, capacity),
		DryRun:     dryRun,
		Counts:     counts,
	}
}
