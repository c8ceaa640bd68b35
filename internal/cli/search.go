package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slashcmd/slashcmd/internal/output"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search commands by name or description",
	Long: `Search the resolved manifest for commands whose name or description
contains the query, case-insensitively.

Examples:
  slashcmd search deploy
  slashcmd search "pull request" -l es`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		sp := output.StartSpinner("Searching...")
		matches, err := a.coordinator.Search(cmd.Context(), args[0], queryOptions())
		sp.Stop()
		if err != nil {
			return err
		}

		if len(matches) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "No commands match %q.\n", args[0])
			return nil
		}
		output.PrintCommands(cmd.OutOrStdout(), a.resolver.Effective(flagLanguage), matches)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
}
