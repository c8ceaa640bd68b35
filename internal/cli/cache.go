package cli

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/slashcmd/slashcmd/internal/output"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and manage the local manifest cache",
}

var cacheStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show cached languages, their age, and freshness",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		statuses, err := a.store.StatusList()
		if err != nil {
			return err
		}
		output.PrintCacheStatus(cmd.OutOrStdout(), a.store.Dir(), statuses)
		return nil
	},
}

var cacheClearAll bool

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove cached manifest snapshots",
	Long: `Remove the cache entry for the resolved language, or every entry
with --all. The next query re-fetches from the repository.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if cacheClearAll {
			if err := a.store.ClearAll(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared all cache entries.")
			return nil
		}
		lang := a.resolver.Effective(flagLanguage)
		if err := a.store.Clear(lang); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Cleared cache entry for %s.\n", lang)
		return nil
	},
}

var cacheWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Watch the cache directory for refreshes",
	Long: `Watch the cache directory and print a line whenever another
invocation replaces a language snapshot. Useful when several terminal
sessions share the cache. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(a.store.Dir(), 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return fmt.Errorf("starting watcher: %w", err)
		}
		defer watcher.Close()
		if err := watcher.Add(a.store.Dir()); err != nil {
			return fmt.Errorf("watching %s: %w", a.store.Dir(), err)
		}

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Watching %s (Ctrl+C to stop)\n", a.store.Dir())

		for {
			select {
			case <-cmd.Context().Done():
				return nil
			case <-sigCh:
				return nil
			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				// Snapshots land via rename; creates cover first writes.
				if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
					continue
				}
				name := filepath.Base(event.Name)
				if !strings.HasSuffix(name, ".json") {
					continue
				}
				lang := strings.TrimSuffix(name, ".json")
				if event.Has(fsnotify.Remove) {
					fmt.Fprintf(out, "cleared: %s\n", lang)
					continue
				}
				if m, ok := a.store.Get(lang); ok {
					fmt.Fprintf(out, "refreshed: %s (%d commands)\n", lang, len(m.Commands))
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				fmt.Fprintf(cmd.ErrOrStderr(), "watch error: %v\n", err)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheStatusCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheWatchCmd)
	cacheClearCmd.Flags().BoolVar(&cacheClearAll, "all", false, "Clear every language's cache entry")
}
