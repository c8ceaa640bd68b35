package cli

import (
	"github.com/spf13/cobra"

	"github.com/slashcmd/slashcmd/internal/output"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List available slash commands",
	Long: `List every slash command available for the resolved language.

The manifest is served from the local cache when fresh; use
--force-refresh to fetch the latest from the repository.

Examples:
  slashcmd list
  slashcmd list -l fr
  slashcmd list --force-refresh`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		sp := output.StartSpinner("Loading commands...")
		cmds, err := a.coordinator.List(cmd.Context(), queryOptions())
		sp.Stop()
		if err != nil {
			return err
		}

		output.PrintCommands(cmd.OutOrStdout(), a.resolver.Effective(flagLanguage), cmds)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
