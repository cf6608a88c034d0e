package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/dkim-dev/changeset/internal/engine"
	"github.com/dkim-dev/changeset/internal/runlog"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List recorded apply runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := newRunStore(cfg)
		if err != nil {
			return err
		}

		records, err := store.List()
		if err != nil {
			return err
		}
		if len(records) == 0 {
			PrintEmptyState("No runs recorded yet")
			return nil
		}

		w := table.NewWriter()
		w.SetStyle(table.StyleLight)
		w.AppendHeader(table.Row{"RUN ID", "WHEN", "TASK", "ROOT", "MODE", "RESULT"})
		for _, rec := range records {
			mode := "apply"
			if rec.DryRun {
				mode = "dry-run"
			}
			taskLabel := rec.TaskName
			if taskLabel == "" {
				taskLabel = rec.TaskFile
			}
			w.AppendRow(table.Row{
				rec.ID,
				humanize.Time(rec.StartedAt),
				taskLabel,
				rec.RootDir,
				mode,
				runResultLine(rec),
			})
		}
		PrintInfo(w.Render())
		return nil
	},
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run in detail",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := newRunStore(cfg)
		if err != nil {
			return err
		}

		rec, err := store.Load(args[0])
		if err != nil {
			return err
		}

		PrintSection(fmt.Sprintf("Run %s", rec.ID))
		PrintLabelValue("Started", fmt.Sprintf("%s (%s)", rec.StartedAt.Format("2006-01-02 15:04:05 MST"), humanize.Time(rec.StartedAt)))
		if rec.TaskFile != "" {
			PrintLabelValue("Task file", rec.TaskFile)
		}
		if rec.TaskName != "" {
			PrintLabelValue("Task name", rec.TaskName)
		}
		PrintLabelValue("Root", rec.RootDir)
		PrintLabelValue("Dry run", fmt.Sprintf("%t", rec.DryRun))
		PrintLabelValue("Result", runResultLine(rec))
		PrintLabelValue("Size", humanize.Bytes(contentBytes(rec)))

		lines := make([]string, 0, len(rec.Operations))
		for _, op := range rec.Operations {
			lines = append(lines, fmt.Sprintf("%s %s - %s", op.Status, op.Change.Path, op.Message))
		}
		PrintList(lines, 1)
		return nil
	},
}

var runsPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete old run records beyond the configured maximum",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := newRunStore(cfg)
		if err != nil {
			return err
		}

		removed, err := store.Prune(cfg.MaxRuns)
		if err != nil {
			return err
		}
		PrintSuccess(fmt.Sprintf("Pruned %s", PrintCount(removed, "run record", "run records")))
		return nil
	},
}

// runResultLine condenses a record's tally into one cell.
func runResultLine(rec *runlog.Record) string {
	return fmt.Sprintf("%dc/%du/%dd/%ds",
		rec.Counts[engine.StatusCreated], rec.Counts[engine.StatusUpdated],
		rec.Counts[engine.StatusDeleted], rec.Counts[engine.StatusSkipped])
}

// contentBytes totals the content attached to a run's changes.
func contentBytes(rec *runlog.Record) uint64 {
	var total uint64
	for _, op := range rec.Operations {
		if op.Change.Content != nil {
			total += uint64(len(*op.Change.Content))
		}
	}
	return total
}

func init() {
	runsCmd.AddCommand(runsShowCmd)
	runsCmd.AddCommand(runsPruneCmd)
}
