package cli

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/slashcmd/slashcmd/internal/health"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the environment and registry connectivity",
	Long: `Run health checks: configuration validity, cache and install
directory access, and registry reachability.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		lang := a.resolver.Effective(flagLanguage)

		report := health.RunChecks(cmd.Context(), a.cfg, lang)

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		for _, check := range report.Checks {
			mark := green("✓")
			if !check.Passed {
				mark = red("✗")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %-18s %s\n", mark, check.Name, check.Message)
		}
		fmt.Fprintln(cmd.OutOrStdout(), report.Summary())

		if !report.Passed {
			return fmt.Errorf("environment checks failed")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
