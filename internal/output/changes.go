package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/slashcmd/slashcmd/internal/manifest"
)

var (
	addedFmt    = color.New(color.FgGreen).SprintFunc()
	removedFmt  = color.New(color.FgRed).SprintFunc()
	modifiedFmt = color.New(color.FgYellow).SprintFunc()
	insFmt      = color.New(color.FgGreen, color.Bold).SprintFunc()
	delFmt      = color.New(color.FgRed, color.CrossedOut).SprintFunc()
)

// PrintChanges renders a manifest comparison: a summary line, then one
// line per change. Modified descriptions get an inline word-level diff.
func PrintChanges(w io.Writer, cmp *manifest.Comparison) {
	s := cmp.Summary
	if !s.HasChanges {
		fmt.Fprintln(w, "No changes.")
		return
	}

	fmt.Fprintf(w, "%d change(s): %s, %s, %s\n\n",
		s.Total,
		addedFmt(fmt.Sprintf("%d added", s.Added)),
		modifiedFmt(fmt.Sprintf("%d modified", s.Modified)),
		removedFmt(fmt.Sprintf("%d removed", s.Removed)),
	)

	for _, change := range cmp.Changes {
		switch change.Type {
		case manifest.Added:
			fmt.Fprintf(w, "  %s /%s  %s\n", addedFmt("+"), change.Name, change.NewCommand.Description)
		case manifest.Removed:
			fmt.Fprintf(w, "  %s /%s\n", removedFmt("-"), change.Name)
		case manifest.Modified:
			fmt.Fprintf(w, "  %s /%s\n", modifiedFmt("~"), change.Name)
			printFieldDiffs(w, change.FieldDiffs)
		}
	}
}

func printFieldDiffs(w io.Writer, diffs []manifest.FieldDiff) {
	for _, d := range diffs {
		oldText, oldOK := d.Old.(string)
		newText, newOK := d.New.(string)
		if oldOK && newOK {
			fmt.Fprintf(w, "      %s: %s\n", d.Field, inlineDiff(oldText, newText))
			continue
		}
		fmt.Fprintf(w, "      %s: %v -> %v\n", d.Field, formatValue(d.Old), formatValue(d.New))
	}
}

// inlineDiff renders old -> new as one line with insertions and
// deletions highlighted, using a semantic word-level diff.
func inlineDiff(oldText, newText string) string {
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(oldText, newText, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var sb strings.Builder
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			sb.WriteString(insFmt(d.Text))
		case diffmatchpatch.DiffDelete:
			sb.WriteString(delFmt(d.Text))
		default:
			sb.WriteString(d.Text)
		}
	}
	return sb.String()
}

func formatValue(v any) string {
	switch value := v.(type) {
	case []string:
		return "[" + strings.Join(value, ", ") + "]"
	case nil:
		return "(none)"
	default:
		return fmt.Sprintf("%v", value)
	}
}
