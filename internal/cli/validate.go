package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dkim-dev/changeset/internal/task"
)

// exitCodeValidationFailure is the exit code for validation failures.
const exitCodeValidationFailure = 2

var validateCmd = &cobra.Command{
	Use:   "validate <task-file>",
	Short: "Validate a task file against the task schema",
	Long: `Check that a task file is structurally valid without applying it.
Unknown change fields are allowed and preserved; a missing path or action
is an error.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := loadConfig(); err != nil {
			return err
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read task file: %w", err)
		}

		err = task.Validate(data, task.FormatForPath(args[0]))
		if err == nil {
			PrintSuccess(fmt.Sprintf("%s is a valid task file", args[0]))
			return nil
		}

		var verr *task.ValidationError
		if !errors.As(err, &verr) {
			return err
		}

		PrintError(fmt.Sprintf("%s is not a valid task file:", args[0]))
		PrintList(verr.Issues, 1)
		os.Exit(exitCodeValidationFailure)
		return nil
	},
}
