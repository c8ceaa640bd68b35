package manifest

import (
	"time"

	"github.com/slashcmd/slashcmd/internal/errors"
)

// ChangeType classifies a single command change between two manifests.
type ChangeType string

const (
	Added    ChangeType = "added"
	Removed  ChangeType = "removed"
	Modified ChangeType = "modified"
)

// FieldDiff records one field whose value differs between the old and new
// version of a command.
type FieldDiff struct {
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// Change records one added, removed, or modified command.
// OldCommand is nil for added, NewCommand is nil for removed, and
// FieldDiffs is populated only for modified.
type Change struct {
	Type       ChangeType  `json:"type"`
	Name       string      `json:"name"`
	OldCommand *Command    `json:"old_command,omitempty"`
	NewCommand *Command    `json:"new_command,omitempty"`
	FieldDiffs []FieldDiff `json:"field_diffs,omitempty"`
}

// Summary aggregates change counts. Total always equals the number of
// change records, and Added+Removed+Modified always equals Total.
type Summary struct {
	Total      int  `json:"total"`
	Added      int  `json:"added"`
	Removed    int  `json:"removed"`
	Modified   int  `json:"modified"`
	HasChanges bool `json:"has_changes"`
}

// Comparison is the full structural diff between two manifest snapshots.
type Comparison struct {
	Old        *Manifest `json:"old"`
	New        *Manifest `json:"new"`
	Summary    Summary   `json:"summary"`
	Changes    []Change  `json:"changes"`
	ComparedAt time.Time `json:"compared_at"`
}

// Compare computes the structural diff between two manifest snapshots.
//
// Emission order is deterministic: added and modified entries in
// new-manifest order, followed by removed entries in old-manifest order.
// Duplicate command names in either manifest break the diff invariants
// and are rejected.
func Compare(oldM, newM *Manifest) (*Comparison, error) {
	if oldM == nil || newM == nil {
		return nil, errors.NewComparison("cannot compare nil manifest")
	}

	oldByName, err := indexByName(oldM)
	if err != nil {
		return nil, err
	}
	newByName, err := indexByName(newM)
	if err != nil {
		return nil, err
	}

	changes := []Change{}
	summary := Summary{}

	for i := range newM.Commands {
		nc := newM.Commands[i]
		oc, existed := oldByName[nc.Name]
		if !existed {
			summary.Added++
			changes = append(changes, Change{
				Type:       Added,
				Name:       nc.Name,
				NewCommand: &newM.Commands[i],
			})
			continue
		}
		if oc.Equal(nc) {
			continue
		}
		summary.Modified++
		old := oc
		changes = append(changes, Change{
			Type:       Modified,
			Name:       nc.Name,
			OldCommand: &old,
			NewCommand: &newM.Commands[i],
			FieldDiffs: fieldDiffs(oc, nc),
		})
	}

	for i := range oldM.Commands {
		oc := oldM.Commands[i]
		if _, kept := newByName[oc.Name]; !kept {
			summary.Removed++
			changes = append(changes, Change{
				Type:       Removed,
				Name:       oc.Name,
				OldCommand: &oldM.Commands[i],
			})
		}
	}

	summary.Total = len(changes)
	summary.HasChanges = summary.Total > 0

	return &Comparison{
		Old:        oldM,
		New:        newM,
		Summary:    summary,
		Changes:    changes,
		ComparedAt: time.Now().UTC(),
	}, nil
}

// Identical reports whether two manifests contain the same commands.
// Equivalent to Compare(oldM, newM).Summary.HasChanges == false; the
// length check is only a short-circuit and never diverges from the
// full diff result.
func Identical(oldM, newM *Manifest) (bool, error) {
	if oldM == nil || newM == nil {
		return false, errors.NewComparison("cannot compare nil manifest")
	}
	if len(oldM.Commands) != len(newM.Commands) {
		return false, nil
	}
	cmp, err := Compare(oldM, newM)
	if err != nil {
		return false, err
	}
	return !cmp.Summary.HasChanges, nil
}

func indexByName(m *Manifest) (map[string]Command, error) {
	byName := make(map[string]Command, len(m.Commands))
	for _, c := range m.Commands {
		if _, dup := byName[c.Name]; dup {
			return nil, errors.Newf(errors.Comparison, "duplicate command name %q in %s manifest", c.Name, m.Language)
		}
		byName[c.Name] = c
	}
	return byName, nil
}

// fieldDiffs returns every field whose value differs between the two
// versions of a command. Slice-valued fields are order-sensitive.
func fieldDiffs(oc, nc Command) []FieldDiff {
	var diffs []FieldDiff
	if oc.Description != nc.Description {
		diffs = append(diffs, FieldDiff{Field: "description", Old: oc.Description, New: nc.Description})
	}
	if oc.File != nc.File {
		diffs = append(diffs, FieldDiff{Field: "file", Old: oc.File, New: nc.File})
	}
	if !stringSliceEqual(oc.AllowedTools, nc.AllowedTools) {
		diffs = append(diffs, FieldDiff{Field: "allowed-tools", Old: oc.AllowedTools, New: nc.AllowedTools})
	}
	return diffs
}

// stringSliceEqual compares two string slices for equality
func stringSliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
