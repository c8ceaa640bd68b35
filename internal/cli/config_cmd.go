package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/slashcmd/slashcmd/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show and edit slashcmd configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective configuration",
	Long: `Print the merged configuration after applying the full precedence
chain: environment > project config > user config > defaults.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		out, err := yaml.Marshal(cfg.AsMap())
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), string(out))
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file locations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userPath, err := config.ConfigPath(config.ScopeUser)
		if err != nil {
			return err
		}
		projectPath, _ := config.ConfigPath(config.ScopeProject)
		fmt.Fprintf(cmd.OutOrStdout(), "user:    %s\nproject: %s\n", userPath, projectPath)
		return nil
	},
}

var configSetUser bool

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set one key in the project config (.slashcmd/config.yml), or the
user config with --user. Nested keys use dots.

Examples:
  slashcmd config set language fr
  slashcmd config set cache_ttl_hours 6
  slashcmd config set registry.source git --user`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := config.ScopeProject
		if configSetUser {
			scope = config.ScopeUser
		}
		if err := config.Set(scope, args[0], config.CoerceValue(args[1])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s (%s scope).\n", args[0], args[1], scope)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a commented default config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		scope := config.ScopeProject
		if configSetUser {
			scope = config.ScopeUser
		}
		path, err := config.WriteTemplate(scope)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configSetCmd.Flags().BoolVar(&configSetUser, "user", false, "Write to the user config instead of the project")
	configInitCmd.Flags().BoolVar(&configSetUser, "user", false, "Write to the user config instead of the project")
}
