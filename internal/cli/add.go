package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slashcmd/slashcmd/internal/install"
	"github.com/slashcmd/slashcmd/internal/output"
)

var addUserLevel bool

var addCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Install a command into the Claude Code commands directory",
	Long: `Download a command's source file and install it under
.claude/commands/ (or ~/.claude/commands/ with --user).

Namespaced commands nest into subdirectories, so
'slashcmd add project:frontend:component' writes
.claude/commands/project/frontend/component.md.

Examples:
  slashcmd add deploy
  slashcmd add project:frontend:component --user`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}

		command, err := a.coordinator.Info(cmd.Context(), args[0], queryOptions())
		if err != nil {
			return err
		}

		fetcher, err := a.fileFetcher()
		if err != nil {
			return err
		}
		dir, err := a.installDir(addUserLevel)
		if err != nil {
			return err
		}

		sp := output.StartSpinner("Installing " + command.Name + "...")
		result, err := install.New(dir, fetcher).Install(cmd.Context(), a.resolver.Effective(flagLanguage), command)
		sp.Stop()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s /%s -> %s\n", result.Action, result.Name, result.Path)
		fmt.Fprintf(cmd.OutOrStdout(), "The command is now available as /%s in Claude Code.\n", result.Name)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().BoolVar(&addUserLevel, "user", false, "Install into ~/.claude/commands instead of the project")
}
