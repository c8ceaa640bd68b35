package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slashcmd/slashcmd/internal/output"
	"github.com/slashcmd/slashcmd/internal/service"
)

var (
	updateAll     bool
	updateChanges bool
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Refresh the local manifest cache",
	Long: `Force-fetch the manifest for the resolved language and replace the
local cache entry.

With --changes the fresh manifest is compared against the previous
snapshot and every added, removed, and modified command is reported.
With --all every supported language is refreshed concurrently.

Examples:
  slashcmd update
  slashcmd update --changes
  slashcmd update --all`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		if updateAll {
			sp := output.StartSpinner("Updating all languages...")
			results, err := a.coordinator.UpdateAll(cmd.Context())
			sp.Stop()
			if err != nil {
				return err
			}
			for _, res := range results {
				fmt.Fprintf(out, "  %s: %d commands\n", res.Language, res.CommandCount)
			}
			fmt.Fprintf(out, "Updated %d language(s).\n", len(results))
			return nil
		}

		opts := service.Options{Language: flagLanguage, ForceRefresh: true}

		if updateChanges {
			sp := output.StartSpinner("Updating cache...")
			res, err := a.coordinator.UpdateWithChanges(cmd.Context(), opts)
			sp.Stop()
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Updated %s: %d commands as of %s\n\n",
				res.Language, res.CommandCount, res.Timestamp.Format("2006-01-02 15:04 MST"))
			output.PrintChanges(out, res.Comparison)
			return nil
		}

		sp := output.StartSpinner("Updating cache...")
		res, err := a.coordinator.Update(cmd.Context(), opts)
		sp.Stop()
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Updated %s: %d commands as of %s\n",
			res.Language, res.CommandCount, res.Timestamp.Format("2006-01-02 15:04 MST"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(updateCmd)
	updateCmd.Flags().BoolVar(&updateAll, "all", false, "Refresh every supported language")
	updateCmd.Flags().BoolVar(&updateChanges, "changes", false, "Report what changed since the previous snapshot")
}
