package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkim-dev/changeset/internal/diffview"
	"github.com/dkim-dev/changeset/internal/engine"
	"github.com/dkim-dev/changeset/internal/sandbox"
	"github.com/dkim-dev/changeset/internal/task"
)

var (
	planRoot         string
	planFromMarkdown bool
)

var planCmd = &cobra.Command{
	Use:   "plan <task-file>",
	Short: "Preview a task file as a dry run with per-file diffs",
	Long: `Run a task file in dry-run mode and show a line diff of what each
create or update would change. The filesystem is only read, never written.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tk, err := loadTask(args[0], planFromMarkdown)
		if err != nil {
			return err
		}

		root := pickRoot(planRoot, tk, cfg)

		summary, err := newEngine().Apply(context.Background(), applyRequest(tk, root, true, nil))
		if err != nil {
			return err
		}

		PrintInfo(renderSummaryTable(summary))

		for _, op := range summary.Operations {
			if op.Status != engine.StatusCreated && op.Status != engine.StatusUpdated {
				continue
			}
			if err := printChangeDiff(root, op.Change); err != nil {
				return err
			}
		}

		PrintWarning(fmt.Sprintf("Plan only: %s (no files were touched)", countsLine(summary)))
		return nil
	},
}

// printChangeDiff shows the line diff one write would produce, against the
// file's current content if it exists.
func printChangeDiff(root string, change task.FileChange) error {
	resolved, err := sandbox.Resolve(root, change.Path)
	if err != nil {
		return err
	}

	current := ""
	data, err := os.ReadFile(resolved)
	if err == nil {
		current = string(data)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to read %q for diff: %w", change.Path, err)
	}

	lines := diffview.Preview(current, *change.Content)
	if len(lines) == 0 {
		PrintLabelValue(change.Path, "no content changes")
		return nil
	}

	PrintSection(change.Path)
	fmt.Print(diffview.Render(lines))
	return nil
}

func init() {
	planCmd.Flags().StringVarP(&planRoot, "root", "r", "", "Sandbox root directory (default from task file or config)")
	planCmd.Flags().BoolVar(&planFromMarkdown, "from-markdown", false, "Treat the input as markdown and extract changes from code blocks")
}
