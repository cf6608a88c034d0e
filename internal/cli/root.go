// Package cli implements the changeset command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile     string
	noColorFlag bool
)

// rootCmd is the root command for changeset.
var rootCmd = &cobra.Command{
	Use:     "changeset",
	Version: "dev",
	Short:   "Apply declarative file changes to a sandboxed project directory",
	Long: `changeset materializes batches of declarative file operations (create,
update, delete, noop) against a bounded project directory.

Changes come from JSON/YAML task files or from LLM-style markdown output.
No operation can escape the configured root, deletes are idempotent, and a
dry run previews exactly what a real run would report.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
}

func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default .changeset.yaml in CWD or $HOME)")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "Disable colored output")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the changeset CLI version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			_, _ = fmt.Fprintln(os.Stdout, rootCmd.Version)
		},
	}
	rootCmd.AddCommand(versionCmd)

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(runsCmd)
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}
