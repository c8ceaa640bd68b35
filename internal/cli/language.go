package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/slashcmd/slashcmd/internal/config"
	"github.com/slashcmd/slashcmd/internal/errors"
	"github.com/slashcmd/slashcmd/internal/language"
	"github.com/slashcmd/slashcmd/internal/output"
)

var languageCmd = &cobra.Command{
	Use:   "language",
	Short: "Show and set the preferred manifest language",
}

var languageListCmd = &cobra.Command{
	Use:   "list",
	Short: "List supported language codes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, code := range language.Codes() {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s  %s\n", code, language.Name(code))
		}
		return nil
	},
}

var languageStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show language availability and cache state",
	Long: `Show every supported language with its cached command count.
Counts come from local snapshots only; run 'slashcmd update --all'
first for a complete picture.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		entries := language.StatusList(a.coordinator.CommandCounts(), a.store.CachedLanguages())
		output.PrintLanguageStatus(cmd.OutOrStdout(), a.resolver.Effective(flagLanguage), entries)
		return nil
	},
}

var languageSetUser bool

var languageSetCmd = &cobra.Command{
	Use:   "set <code>",
	Short: "Persist the preferred language",
	Long: `Persist the preferred language in the project config
(.slashcmd/config.yml), or the user config with --user.

Examples:
  slashcmd language set fr
  slashcmd language set ja --user`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		code := args[0]
		if !language.IsSupported(code) {
			return errors.Newf(errors.Validation, "unsupported language code %q", code).
				WithOp("language set", code)
		}

		scope := config.ScopeProject
		if languageSetUser {
			scope = config.ScopeUser
		}
		if err := config.Set(scope, "language", code); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Preferred language set to %s (%s scope).\n", code, scope)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(languageCmd)
	languageCmd.AddCommand(languageListCmd)
	languageCmd.AddCommand(languageStatusCmd)
	languageCmd.AddCommand(languageSetCmd)
	languageSetCmd.Flags().BoolVar(&languageSetUser, "user", false, "Write to the user config instead of the project")
}
