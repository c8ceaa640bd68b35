package cli

import (
	"testing"

	"github.com/slashcmd/slashcmd/internal/errors"
)

func TestExitCodeFor(t *testing.T) {
	tests := map[string]struct {
		kind errors.Kind
		want int
	}{
		"validation": {kind: errors.Validation, want: ExitValidation},
		"not found":  {kind: errors.NotFound, want: ExitNotFound},
		"fetch":      {kind: errors.Fetch, want: ExitFetchFailed},
		"cache":      {kind: errors.Cache, want: ExitFailure},
		"comparison": {kind: errors.Comparison, want: ExitFailure},
	}

	for name, tc := range tests {
		tc := tc
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			if got := exitCodeFor(tc.kind); got != tc.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tc.kind, got, tc.want)
			}
		})
	}
}
