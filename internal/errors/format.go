package errors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

var (
	// Color functions with auto-detection for terminal support.
	// These fall back gracefully when colors are unavailable.
	errorLabel = color.New(color.FgRed, color.Bold).SprintFunc()
	errorMsg   = color.New(color.FgRed).SprintFunc()
	fixLabel   = color.New(color.FgGreen, color.Bold).SprintFunc()
	bullet     = color.New(color.FgGreen).SprintFunc()
	kindFmt    = color.New(color.FgYellow).SprintFunc()
	langFmt    = color.New(color.Faint).SprintFunc()
)

// Format formats an *Error for display in the terminal.
// It uses colors when available and falls back to plain text otherwise.
func Format(err *Error) string {
	if err == nil {
		return ""
	}
	return format(err, true)
}

// FormatPlain formats an *Error without colors.
func FormatPlain(err *Error) string {
	if err == nil {
		return ""
	}
	return format(err, false)
}

func format(err *Error, useColors bool) string {
	var sb strings.Builder

	if useColors {
		sb.WriteString(errorLabel("Error"))
		sb.WriteString(" [")
		sb.WriteString(kindFmt(err.Kind.String()))
		sb.WriteString("]: ")
		sb.WriteString(errorMsg(err.Error()))
	} else {
		sb.WriteString("Error [")
		sb.WriteString(err.Kind.String())
		sb.WriteString("]: ")
		sb.WriteString(err.Error())
	}
	if err.Language != "" {
		note := fmt.Sprintf(" (language: %s)", err.Language)
		if useColors {
			note = langFmt(note)
		}
		sb.WriteString(note)
	}
	sb.WriteString("\n")

	if len(err.Remediation) > 0 {
		sb.WriteString("\n")
		if useColors {
			sb.WriteString(fixLabel("To fix this:"))
		} else {
			sb.WriteString("To fix this:")
		}
		sb.WriteString("\n")
		for _, step := range err.Remediation {
			if useColors {
				sb.WriteString("  ")
				sb.WriteString(bullet("•"))
				sb.WriteString(" ")
			} else {
				sb.WriteString("  • ")
			}
			sb.WriteString(step)
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

// Print prints a formatted *Error to stderr.
func Print(err *Error) {
	Fprint(os.Stderr, err)
}

// Fprint prints a formatted *Error to the given writer, plain when
// colors are globally disabled (--no-color, NO_COLOR, non-TTY).
func Fprint(w io.Writer, err *Error) {
	if err == nil {
		return
	}
	if color.NoColor {
		fmt.Fprint(w, FormatPlain(err))
		return
	}
	fmt.Fprint(w, Format(err))
}
