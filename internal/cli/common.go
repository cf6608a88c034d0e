package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/dkim-dev/changeset/internal/config"
	"github.com/dkim-dev/changeset/internal/engine"
	"github.com/dkim-dev/changeset/internal/fsops"
	"github.com/dkim-dev/changeset/internal/runlog"
	"github.com/dkim-dev/changeset/internal/task"
)

// loadConfig reads the tool configuration and applies global output flags.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if noColorFlag || cfg.NoColor {
		color.NoColor = true
	}

	return cfg, nil
}

// newEngine creates an engine backed by the real filesystem.
func newEngine() *engine.Engine {
	return engine.New(fsops.NewRealFS())
}

// newRunStore creates the run record store, ensuring its directory exists.
func newRunStore(cfg *config.Config) (*runlog.Store, error) {
	dir, err := cfg.EnsureRunsDir()
	if err != nil {
		return nil, fmt.Errorf("failed to prepare runs directory: %w", err)
	}
	return runlog.NewStore(fsops.NewRealFS(), dir), nil
}

// loadTask loads changes from a task file, or extracts them from markdown
// when fromMarkdown is set.
func loadTask(path string, fromMarkdown bool) (*task.Task, error) {
	if !fromMarkdown {
		return task.Load(path)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read markdown file: %w", err)
	}
	changes, err := task.ExtractChanges(source)
	if err != nil {
		return nil, fmt.Errorf("failed to extract changes from markdown: %w", err)
	}
	return &task.Task{Changes: changes}, nil
}

// pickRoot resolves the effective sandbox root: flag beats task file beats
// config default.
func pickRoot(flagRoot string, tk *task.Task, cfg *config.Config) string {
	if flagRoot != "" {
		return flagRoot
	}
	if tk.Root != "" {
		return tk.Root
	}
	return cfg.Root
}

// applyRequest builds the engine request for a loaded task.
func applyRequest(tk *task.Task, root string, dryRun bool, onEvent func(string)) *engine.ApplyRequest {
	return &engine.ApplyRequest{
		RootDir: root,
		Changes: tk.Changes,
		DryRun:  dryRun,
		OnEvent: onEvent,
	}
}

// renderSummaryTable formats the per-change results as a table.
func renderSummaryTable(summary *engine.ApplySummary) string {
	w := table.NewWriter()
	w.SetStyle(table.StyleLight)
	w.AppendHeader(table.Row{"PATH", "ACTION", "STATUS", "MESSAGE"})
	for _, op := range summary.Operations {
		w.AppendRow(table.Row{op.Change.Path, string(op.Change.Action), string(op.Status), op.Message})
	}
	return w.Render()
}

// countsLine condenses a status tally into one line.
func countsLine(summary *engine.ApplySummary) string {
	return fmt.Sprintf("%d created, %d updated, %d deleted, %d skipped",
		summary.Counts[engine.StatusCreated],
		summary.Counts[engine.StatusUpdated],
		summary.Counts[engine.StatusDeleted],
		summary.Counts[engine.StatusSkipped])
}
