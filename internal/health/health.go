// Package health provides environment health checks for slashcmd. It
// validates that the configuration parses, the cache and install
// directories are writable, and the command registry is reachable,
// returning structured reports used by the 'slashcmd doctor' command.
package health

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/slashcmd/slashcmd/internal/cache"
	"github.com/slashcmd/slashcmd/internal/config"
	"github.com/slashcmd/slashcmd/internal/install"
	"github.com/slashcmd/slashcmd/internal/registry"
)

// registryCheckTimeout bounds the network probe so doctor stays fast
// on broken networks.
const registryCheckTimeout = 5 * time.Second

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
}

// Report contains all health check results
type Report struct {
	Checks []CheckResult
	Passed bool
}

func (r *Report) add(c CheckResult) {
	r.Checks = append(r.Checks, c)
	if !c.Passed {
		r.Passed = false
	}
}

// Summary renders a one-line outcome for scripting.
func (r *Report) Summary() string {
	failed := 0
	for _, c := range r.Checks {
		if !c.Passed {
			failed++
		}
	}
	if failed == 0 {
		return fmt.Sprintf("%d checks passed", len(r.Checks))
	}
	return fmt.Sprintf("%d of %d checks failed", failed, len(r.Checks))
}

// RunChecks runs all health checks and returns a report. The registry
// probe fetches the manifest for the given language.
func RunChecks(ctx context.Context, cfg *config.Configuration, language string) *Report {
	report := &Report{Passed: true}

	report.add(CheckConfig(cfg))
	report.add(CheckCacheDir(cfg))
	report.add(CheckInstallDir(cfg))
	report.add(CheckRegistry(ctx, cfg, language))

	return report
}

// CheckConfig validates the loaded configuration values.
func CheckConfig(cfg *config.Configuration) CheckResult {
	if err := config.ValidateConfigValues(cfg); err != nil {
		return CheckResult{
			Name:    "Configuration",
			Passed:  false,
			Message: err.Error(),
		}
	}
	return CheckResult{
		Name:    "Configuration",
		Passed:  true,
		Message: "configuration is valid",
	}
}

// CheckCacheDir verifies the manifest cache directory is writable.
func CheckCacheDir(cfg *config.Configuration) CheckResult {
	dir := cfg.CacheDir
	if dir == "" {
		var err error
		dir, err = cache.DefaultDir()
		if err != nil {
			return CheckResult{
				Name:    "Cache directory",
				Passed:  false,
				Message: fmt.Sprintf("cannot resolve cache directory: %v", err),
			}
		}
	}
	if err := checkWritable(dir); err != nil {
		return CheckResult{
			Name:    "Cache directory",
			Passed:  false,
			Message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	return CheckResult{
		Name:    "Cache directory",
		Passed:  true,
		Message: fmt.Sprintf("%s is writable", dir),
	}
}

// CheckInstallDir verifies the command install directory is writable.
func CheckInstallDir(cfg *config.Configuration) CheckResult {
	dir := cfg.InstallDir
	if dir == "" {
		dir = install.DefaultProjectDir
	}
	if err := checkWritable(dir); err != nil {
		return CheckResult{
			Name:    "Install directory",
			Passed:  false,
			Message: fmt.Sprintf("%s is not writable: %v", dir, err),
		}
	}
	return CheckResult{
		Name:    "Install directory",
		Passed:  true,
		Message: fmt.Sprintf("%s is writable", dir),
	}
}

// CheckRegistry probes the configured registry by fetching one
// manifest.
func CheckRegistry(ctx context.Context, cfg *config.Configuration, language string) CheckResult {
	fetcher := registry.ForConfig(cfg)
	ctx, cancel := context.WithTimeout(ctx, registryCheckTimeout)
	defer cancel()

	m, err := fetcher.Fetch(ctx, language, false)
	if err != nil {
		return CheckResult{
			Name:    "Registry",
			Passed:  false,
			Message: fmt.Sprintf("cannot reach registry: %v", err),
		}
	}
	return CheckResult{
		Name:    "Registry",
		Passed:  true,
		Message: fmt.Sprintf("reachable, %d commands published for %q", len(m.Commands), language),
	}
}

// checkWritable creates the directory if needed and proves write access
// with a throwaway file.
func checkWritable(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return err
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}
