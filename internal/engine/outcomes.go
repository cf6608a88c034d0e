package engine

import (
	"fmt"

	"github.com/dkim-dev/changeset/internal/task"
)

// effect is the filesystem side of an outcome.
type effect int

const (
	effectNone effect = iota
	effectWrite
	effectDelete
)

// outcome is one row of the decision table: the status, the mode-dependent
// messages, the observer event verb, and the filesystem effect.
type outcome struct {
	status   Status
	writeMsg string
	dryMsg   string
	event    string
	effect   effect
}

// outcomeFor maps a change's (action, precondition) pair to its outcome.
// The requested action alone determines the created/updated label; there is
// no existence check, so update on a missing file behaves like create.
func outcomeFor(c task.FileChange) outcome {
	switch c.Action {
	case task.ActionCreate:
		if c.Content == nil {
			return missingContentOutcome
		}
		return outcome{
			status:   StatusCreated,
			writeMsg: "written successfully",
			dryMsg:   "would be written",
			event:    "CREATE",
			effect:   effectWrite,
		}
	case task.ActionUpdate:
		if c.Content == nil {
			return missingContentOutcome
		}
		return outcome{
			status:   StatusUpdated,
			writeMsg: "written successfully",
			dryMsg:   "would be written",
			event:    "UPDATE",
			effect:   effectWrite,
		}
	case task.ActionDelete:
		return outcome{
			status:   StatusDeleted,
			writeMsg: "deleted (or already absent)",
			dryMsg:   "would be deleted",
			event:    "DELETE",
			effect:   effectDelete,
		}
	default:
		// noop and anything unrecognized.
		return outcome{
			status:   StatusSkipped,
			writeMsg: "no action (noop)",
			dryMsg:   "no action (noop)",
			event:    "SKIP (noop)",
			effect:   effectNone,
		}
	}
}

var missingContentOutcome = outcome{
	status:   StatusSkipped,
	writeMsg: "missing content for create/update action",
	dryMsg:   "missing content for create/update action",
	event:    "SKIP (missing content)",
	effect:   effectNone,
}

func (o outcome) message(dryRun bool) string {
	if dryRun {
		return o.dryMsg
	}
	return o.writeMsg
}

func (o outcome) eventLine(path string) string {
	return fmt.Sprintf("%s: %s", o.event, path)
}
