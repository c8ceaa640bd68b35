package manifest

import "testing"

func TestCommandEqual(t *testing.T) {
	t.Parallel()

	base := Command{Name: "deploy", Description: "Deploy", File: "deploy.md", AllowedTools: []string{"Bash", "Read"}}

	tests := map[string]struct {
		other Command
		want  bool
	}{
		"identical": {
			other: Command{Name: "deploy", Description: "Deploy", File: "deploy.md", AllowedTools: []string{"Bash", "Read"}},
			want:  true,
		},
		"different description": {
			other: Command{Name: "deploy", Description: "Ship it", File: "deploy.md", AllowedTools: []string{"Bash", "Read"}},
			want:  false,
		},
		"different file": {
			other: Command{Name: "deploy", Description: "Deploy", File: "ship.md", AllowedTools: []string{"Bash", "Read"}},
			want:  false,
		},
		"reordered allowed tools": {
			other: Command{Name: "deploy", Description: "Deploy", File: "deploy.md", AllowedTools: []string{"Read", "Bash"}},
			want:  false,
		},
		"missing allowed tools": {
			other: Command{Name: "deploy", Description: "Deploy", File: "deploy.md"},
			want:  false,
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			if got := base.Equal(tt.other); got != tt.want {
				t.Errorf("Equal = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestManifestLookup(t *testing.T) {
	t.Parallel()

	m := mf("en",
		Command{Name: "deploy", Description: "Deploy", File: "deploy.md"},
		Command{Name: "project:frontend:component", Description: "Scaffold", File: "component.md"},
	)

	cmd, ok := m.Lookup("project:frontend:component")
	if !ok {
		t.Fatal("Lookup missed an existing command")
	}
	if cmd.File != "component.md" {
		t.Errorf("cmd.File = %q, want %q", cmd.File, "component.md")
	}

	if _, ok := m.Lookup("missing"); ok {
		t.Error("Lookup found a command that does not exist")
	}
}
