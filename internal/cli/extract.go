package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dkim-dev/changeset/internal/task"
)

var extractOutput string

var extractCmd = &cobra.Command{
	Use:   "extract <markdown-file>",
	Short: "Turn LLM-style markdown output into a task file",
	Long: `Extract file changes from markdown: a fenced code block preceded by a
backtick-quoted path becomes a create change, and a "delete" block lists
paths to remove. The result is written as a task file (JSON, or YAML when
the output path ends in .yaml/.yml) or printed to stdout.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}

		source, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read markdown file: %w", err)
		}

		changes, err := task.ExtractChanges(source)
		if err != nil {
			return fmt.Errorf("failed to extract changes: %w", err)
		}
		if len(changes) == 0 {
			PrintWarning("No changes found in markdown input")
			changes = []task.FileChange{}
		}

		tk := &task.Task{Changes: changes}

		var data []byte
		if task.FormatForPath(extractOutput) == task.FormatYAML {
			data, err = yaml.Marshal(tk)
		} else {
			data, err = json.MarshalIndent(tk, "", "  ")
		}
		if err != nil {
			return fmt.Errorf("failed to encode task: %w", err)
		}

		if extractOutput == "" {
			fmt.Println(string(data))
			return nil
		}

		if err := os.WriteFile(extractOutput, data, 0644); err != nil {
			return fmt.Errorf("failed to write task file: %w", err)
		}
		PrintSuccess(fmt.Sprintf("Wrote %s with %s", extractOutput,
			PrintCount(len(changes), "change", "changes")))
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Task file to write (default stdout, JSON)")
}
