package manifest

import (
	"testing"

	"github.com/slashcmd/slashcmd/internal/errors"
)

func mf(lang string, cmds ...Command) *Manifest {
	return &Manifest{Language: lang, Commands: cmds}
}

func TestCompareIdenticalManifests(t *testing.T) {
	t.Parallel()

	m := mf("en",
		Command{Name: "deploy", Description: "Deploy the app", File: "deploy.md", AllowedTools: []string{"Bash", "Read"}},
		Command{Name: "review", Description: "Review a PR", File: "review.md"},
	)

	cmp, err := Compare(m, m)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.Summary.HasChanges {
		t.Errorf("Compare(A, A).Summary.HasChanges = true, want false")
	}
	if len(cmp.Changes) != 0 {
		t.Errorf("Compare(A, A) produced %d changes, want 0", len(cmp.Changes))
	}
}

func TestCompareEmptyManifests(t *testing.T) {
	t.Parallel()

	cmp, err := Compare(Empty("en"), Empty("en"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmp.Summary.HasChanges {
		t.Errorf("empty manifests compare as changed")
	}
}

func TestCompareClassification(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		old          *Manifest
		new          *Manifest
		wantAdded    int
		wantRemoved  int
		wantModified int
	}{
		"all added from empty": {
			old: Empty("en"),
			new: mf("en",
				Command{Name: "a", Description: "a", File: "a.md"},
				Command{Name: "b", Description: "b", File: "b.md"},
			),
			wantAdded: 2,
		},
		"all removed to empty": {
			old: mf("en",
				Command{Name: "a", Description: "a", File: "a.md"},
			),
			new:         Empty("en"),
			wantRemoved: 1,
		},
		"description change is modified": {
			old: mf("en", Command{Name: "a", Description: "old", File: "a.md"}),
			new: mf("en", Command{Name: "a", Description: "new", File: "a.md"}),

			wantModified: 1,
		},
		"file change is modified": {
			old:          mf("en", Command{Name: "a", Description: "a", File: "a.md"}),
			new:          mf("en", Command{Name: "a", Description: "a", File: "b.md"}),
			wantModified: 1,
		},
		"tool reorder is modified": {
			old:          mf("en", Command{Name: "a", Description: "a", File: "a.md", AllowedTools: []string{"Bash", "Read"}}),
			new:          mf("en", Command{Name: "a", Description: "a", File: "a.md", AllowedTools: []string{"Read", "Bash"}}),
			wantModified: 1,
		},
		"mixed changes": {
			old: mf("en",
				Command{Name: "keep", Description: "k", File: "k.md"},
				Command{Name: "gone", Description: "g", File: "g.md"},
				Command{Name: "edit", Description: "before", File: "e.md"},
			),
			new: mf("en",
				Command{Name: "keep", Description: "k", File: "k.md"},
				Command{Name: "edit", Description: "after", File: "e.md"},
				Command{Name: "fresh", Description: "f", File: "f.md"},
			),
			wantAdded:    1,
			wantRemoved:  1,
			wantModified: 1,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			cmp, err := Compare(tt.old, tt.new)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			s := cmp.Summary
			if s.Added != tt.wantAdded || s.Removed != tt.wantRemoved || s.Modified != tt.wantModified {
				t.Errorf("summary = %+v, want added=%d removed=%d modified=%d", s, tt.wantAdded, tt.wantRemoved, tt.wantModified)
			}
			if s.Total != len(cmp.Changes) {
				t.Errorf("summary.Total = %d, want len(changes) = %d", s.Total, len(cmp.Changes))
			}
			if s.Added+s.Removed+s.Modified != s.Total {
				t.Errorf("added+removed+modified = %d, want total = %d", s.Added+s.Removed+s.Modified, s.Total)
			}
			if s.HasChanges != (s.Total > 0) {
				t.Errorf("HasChanges = %v with total %d", s.HasChanges, s.Total)
			}
		})
	}
}

func TestCompareEmissionOrder(t *testing.T) {
	t.Parallel()

	old := mf("en",
		Command{Name: "r2", Description: "r2", File: "r2.md"},
		Command{Name: "m1", Description: "before", File: "m1.md"},
		Command{Name: "r1", Description: "r1", File: "r1.md"},
	)
	updated := mf("en",
		Command{Name: "a1", Description: "a1", File: "a1.md"},
		Command{Name: "m1", Description: "after", File: "m1.md"},
		Command{Name: "a2", Description: "a2", File: "a2.md"},
	)

	cmp, err := Compare(old, updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Added/modified in new-manifest order, then removed in old-manifest order.
	wantNames := []string{"a1", "m1", "a2", "r2", "r1"}
	if len(cmp.Changes) != len(wantNames) {
		t.Fatalf("got %d changes, want %d", len(cmp.Changes), len(wantNames))
	}
	for i, want := range wantNames {
		if cmp.Changes[i].Name != want {
			t.Errorf("changes[%d].Name = %q, want %q", i, cmp.Changes[i].Name, want)
		}
	}
}

func TestCompareFieldDiffs(t *testing.T) {
	t.Parallel()

	old := mf("en", Command{Name: "a", Description: "before", File: "a.md", AllowedTools: []string{"Bash"}})
	updated := mf("en", Command{Name: "a", Description: "after", File: "b.md", AllowedTools: []string{"Bash", "Read"}})

	cmp, err := Compare(old, updated)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cmp.Changes) != 1 {
		t.Fatalf("got %d changes, want 1", len(cmp.Changes))
	}

	change := cmp.Changes[0]
	if change.Type != Modified {
		t.Fatalf("change.Type = %q, want %q", change.Type, Modified)
	}

	gotFields := map[string]bool{}
	for _, d := range change.FieldDiffs {
		gotFields[d.Field] = true
	}
	for _, want := range []string{"description", "file", "allowed-tools"} {
		if !gotFields[want] {
			t.Errorf("missing field diff for %q, got %v", want, change.FieldDiffs)
		}
	}
	if len(change.FieldDiffs) != 3 {
		t.Errorf("got %d field diffs, want 3", len(change.FieldDiffs))
	}
}

func TestCompareNilManifest(t *testing.T) {
	t.Parallel()

	_, err := Compare(nil, Empty("en"))
	if !errors.IsKind(err, errors.Comparison) {
		t.Errorf("Compare(nil, m) error = %v, want Comparison kind", err)
	}
}

func TestCompareDuplicateNames(t *testing.T) {
	t.Parallel()

	dup := mf("en",
		Command{Name: "a", Description: "1", File: "a.md"},
		Command{Name: "a", Description: "2", File: "a2.md"},
	)
	_, err := Compare(dup, Empty("en"))
	if !errors.IsKind(err, errors.Comparison) {
		t.Errorf("duplicate names error = %v, want Comparison kind", err)
	}
}

func TestIdenticalMatchesCompare(t *testing.T) {
	t.Parallel()

	a := mf("en", Command{Name: "a", Description: "a", File: "a.md"})
	b := mf("en", Command{Name: "a", Description: "b", File: "a.md"})

	same, err := Identical(a, a)
	if err != nil || !same {
		t.Errorf("Identical(A, A) = (%v, %v), want (true, nil)", same, err)
	}
	same, err = Identical(a, b)
	if err != nil || same {
		t.Errorf("Identical(A, B) = (%v, %v), want (false, nil)", same, err)
	}
}
