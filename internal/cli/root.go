// Package cli wires the cobra command tree and acts as the composition
// root: every component is constructed once here and injected directly.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/slashcmd/slashcmd/internal/cache"
	"github.com/slashcmd/slashcmd/internal/config"
	"github.com/slashcmd/slashcmd/internal/errors"
	"github.com/slashcmd/slashcmd/internal/install"
	"github.com/slashcmd/slashcmd/internal/language"
	"github.com/slashcmd/slashcmd/internal/registry"
	"github.com/slashcmd/slashcmd/internal/service"
)

var rootCmd = &cobra.Command{
	Use:   "slashcmd",
	Short: "Discover and install Claude Code slash commands",
	Long: `slashcmd discovers, installs, and manages reusable slash commands
from the remote command repository, cached locally per language.

Manifests are cached for 24 hours; use --force-refresh to bypass the
cache, or 'slashcmd update' to refresh it explicitly.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	flagLanguage     string
	flagForceRefresh bool
	flagNoColor      bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagLanguage, "language", "l", "", "Manifest language code (default: resolved from config/locale)")
	rootCmd.PersistentFlags().BoolVar(&flagForceRefresh, "force-refresh", false, "Bypass the local cache and fetch fresh data")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
}

// app holds the constructed components for one invocation.
type app struct {
	cfg         *config.Configuration
	store       *cache.Store
	fetcher     registry.Fetcher
	resolver    *language.Resolver
	coordinator *service.Coordinator
}

// newApp builds the component graph from the effective configuration.
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagNoColor || cfg.NoColor {
		color.NoColor = true
	}

	cacheDir := cfg.CacheDir
	if cacheDir == "" {
		cacheDir, err = cache.DefaultDir()
		if err != nil {
			return nil, fmt.Errorf("resolving cache directory: %w", err)
		}
	}

	storeOpts := []cache.Option{}
	if cfg.CacheTTLHours > 0 {
		storeOpts = append(storeOpts, cache.WithTTL(time.Duration(cfg.CacheTTLHours)*time.Hour))
	}
	store := cache.NewStore(cacheDir, storeOpts...)

	fetcher := registry.ForConfig(cfg)
	resolver := language.NewResolver()

	return &app{
		cfg:         cfg,
		store:       store,
		fetcher:     fetcher,
		resolver:    resolver,
		coordinator: service.New(store, fetcher, resolver),
	}, nil
}

// fileFetcher returns the transport's file accessor for installs.
func (a *app) fileFetcher() (registry.FileFetcher, error) {
	ff, ok := a.fetcher.(registry.FileFetcher)
	if !ok {
		return nil, fmt.Errorf("registry source does not support file downloads")
	}
	return ff, nil
}

// installDir resolves where `add` writes command files.
func (a *app) installDir(userLevel bool) (string, error) {
	if a.cfg.InstallDir != "" {
		return a.cfg.InstallDir, nil
	}
	if userLevel {
		return install.UserDir()
	}
	return install.DefaultProjectDir, nil
}

// queryOptions translates the persistent flags into service options.
func queryOptions() service.Options {
	return service.Options{
		Language:     flagLanguage,
		ForceRefresh: flagForceRefresh,
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		if structured := errors.AsError(err); structured != nil {
			errors.Print(structured)
			return exitCodeFor(structured.Kind)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitFailure
	}
	return ExitSuccess
}
