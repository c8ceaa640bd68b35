package output

import (
	"time"

	"github.com/briandowns/spinner"
)

// Spinner shows fetch progress on a TTY and degrades to nothing when
// output is piped.
type Spinner struct {
	s *spinner.Spinner
}

// StartSpinner begins a spinner with the given message. On a non-TTY it
// returns a no-op spinner so piped output stays clean.
func StartSpinner(message string) *Spinner {
	if !IsTTY() {
		return &Spinner{}
	}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " " + message
	s.Start()
	return &Spinner{s: s}
}

// Stop halts the spinner and clears its line.
func (sp *Spinner) Stop() {
	if sp.s != nil {
		sp.s.Stop()
	}
}
