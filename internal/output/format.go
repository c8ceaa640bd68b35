// Package output provides terminal output formatting for the slashcmd
// CLI. This package is designed to have minimal dependencies to avoid
// import cycles.
package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/slashcmd/slashcmd/internal/cache"
	"github.com/slashcmd/slashcmd/internal/language"
	"github.com/slashcmd/slashcmd/internal/manifest"
)

// IsTTY reports whether stdout is a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// TerminalWidth returns the terminal width, defaulting to 80 if unavailable.
func TerminalWidth() int {
	if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && width > 0 {
		return width
	}
	return 80
}

var (
	headerFmt = color.New(color.FgCyan, color.Bold).SprintFunc()
	nameFmt   = color.New(color.FgWhite, color.Bold).SprintFunc()
	dimFmt    = color.New(color.Faint).SprintFunc()
	okFmt     = color.New(color.FgGreen).SprintFunc()
	warnFmt   = color.New(color.FgYellow).SprintFunc()
)

// PrintCommands writes a command listing, one row per command.
func PrintCommands(w io.Writer, language string, cmds []manifest.Command) {
	if len(cmds) == 0 {
		fmt.Fprintf(w, "No commands available for language %q.\n", language)
		return
	}

	fmt.Fprintf(w, "%s (%d commands, language: %s)\n\n", headerFmt("Available commands"), len(cmds), language)
	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	for _, cmd := range cmds {
		fmt.Fprintf(tw, "  /%s\t%s\n", nameFmt(cmd.Name), cmd.Description)
	}
	tw.Flush()
}

// PrintCommandInfo writes the full detail view for one command.
func PrintCommandInfo(w io.Writer, cmd manifest.Command) {
	fmt.Fprintf(w, "%s /%s\n\n", headerFmt("Command"), nameFmt(cmd.Name))
	fmt.Fprintf(w, "  Description:  %s\n", cmd.Description)
	fmt.Fprintf(w, "  Source file:  %s\n", cmd.File)
	if len(cmd.AllowedTools) > 0 {
		fmt.Fprintf(w, "  Allowed tools: %s\n", strings.Join(cmd.AllowedTools, ", "))
	}
}

// PrintCacheStatus writes one row per cached language snapshot.
func PrintCacheStatus(w io.Writer, dir string, statuses []cache.Status) {
	fmt.Fprintf(w, "%s %s\n\n", headerFmt("Cache directory:"), dir)
	if len(statuses) == 0 {
		fmt.Fprintln(w, "  (empty)")
		return
	}

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  LANGUAGE\tCOMMANDS\tAGE\tSIZE\tSTATE\n")
	for _, s := range statuses {
		state := okFmt("fresh")
		if s.Expired {
			state = warnFmt("stale")
		}
		fmt.Fprintf(tw, "  %s\t%d\t%s\t%s\t%s\n",
			s.Language, s.Commands, formatAge(s.Age), formatSize(s.Size), state)
	}
	tw.Flush()
}

// PrintLanguageStatus writes the supported-language availability table.
func PrintLanguageStatus(w io.Writer, effective string, entries []language.StatusEntry) {
	fmt.Fprintf(w, "%s %s\n\n", headerFmt("Effective language:"), nameFmt(effective))

	tw := tabwriter.NewWriter(w, 2, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "  CODE\tLANGUAGE\tCOMMANDS\tCACHED\n")
	for _, e := range entries {
		count := dimFmt("-")
		if e.Available {
			count = fmt.Sprintf("%d", e.Commands)
		}
		cached := dimFmt("no")
		if e.Cached {
			cached = okFmt("yes")
		}
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", e.Code, e.Name, count, cached)
	}
	tw.Flush()
}

func formatAge(age time.Duration) string {
	switch {
	case age < time.Minute:
		return "just now"
	case age < time.Hour:
		return fmt.Sprintf("%dm", int(age.Minutes()))
	case age < 24*time.Hour:
		return fmt.Sprintf("%dh", int(age.Hours()))
	default:
		return fmt.Sprintf("%dd", int(age.Hours()/24))
	}
}

func formatSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%dB", size)
	}
	return fmt.Sprintf("%.1fKB", float64(size)/1024)
}
