package cli

import (
	"github.com/spf13/cobra"

	"github.com/slashcmd/slashcmd/internal/output"
)

var infoCmd = &cobra.Command{
	Use:   "info <name>",
	Short: "Show details for one command",
	Long: `Show the description, source file, and tool allowlist for a command.

The name may use colon or slash notation; both address the same command:
  slashcmd info project:frontend:component
  slashcmd info project/frontend/component`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		sp := output.StartSpinner("Loading command...")
		command, err := a.coordinator.Info(cmd.Context(), args[0], queryOptions())
		sp.Stop()
		if err != nil {
			return err
		}

		output.PrintCommandInfo(cmd.OutOrStdout(), command)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(infoCmd)
}
