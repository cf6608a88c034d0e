package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dkim-dev/changeset/internal/sandbox"
)

var (
	applyRoot         string
	applyDryRun       bool
	applyVerbose      bool
	applyFromMarkdown bool
)

var applyCmd = &cobra.Command{
	Use:   "apply <task-file>",
	Short: "Apply a task file's changes to the sandbox root",
	Long: `Apply the changes described by a task file (JSON or YAML) to the target
root directory. With --from-markdown, the input is LLM-style markdown and
changes are extracted from its fenced code blocks.

Every path is confined to the root; a change that would escape it aborts
the whole batch before any summary is produced.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		tk, err := loadTask(args[0], applyFromMarkdown)
		if err != nil {
			return err
		}

		root := pickRoot(applyRoot, tk, cfg)

		var onEvent func(string)
		if applyVerbose {
			onEvent = func(line string) { PrintInfo("  " + line) }
		}

		summary, err := newEngine().Apply(context.Background(), applyRequest(tk, root, applyDryRun, onEvent))
		if err != nil {
			var invalid *sandbox.InvalidPathError
			if errors.As(err, &invalid) {
				PrintError(fmt.Sprintf("Unsafe path %q - nothing was applied from this batch", invalid.Path))
			}
			return err
		}

		PrintInfo(renderSummaryTable(summary))
		if summary.DryRun {
			PrintWarning(fmt.Sprintf("Dry run: %s (no files were touched)", countsLine(summary)))
		} else {
			PrintSuccess(countsLine(summary))
		}

		store, err := newRunStore(cfg)
		if err != nil {
			return err
		}
		rec, err := store.Record(args[0], tk.Name, root, summary)
		if err != nil {
			return err
		}
		if _, err := store.Prune(cfg.MaxRuns); err != nil {
			return err
		}
		PrintLabelValue("Run ID", rec.ID)

		return nil
	},
}

func init() {
	applyCmd.Flags().StringVarP(&applyRoot, "root", "r", "", "Sandbox root directory (default from task file or config)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "Report what would happen without touching the filesystem")
	applyCmd.Flags().BoolVarP(&applyVerbose, "verbose", "v", false, "Print one event line per change")
	applyCmd.Flags().BoolVar(&applyFromMarkdown, "from-markdown", false, "Treat the input as markdown and extract changes from code blocks")
}
