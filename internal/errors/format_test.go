package errors

import (
	"strings"
	"testing"
)

func TestFormatPlain(t *testing.T) {
	t.Parallel()

	err := NewFetch("connection refused", "Check your network connection").
		WithOp("update", "fr")

	got := FormatPlain(err)
	want := "Error [Fetch Error]: update: connection refused (language: fr)\n" +
		"\nTo fix this:\n  • Check your network connection\n"
	if got != want {
		t.Errorf("FormatPlain = %q, want %q", got, want)
	}
	if strings.Contains(got, "\x1b[") {
		t.Error("plain output must carry no ANSI escapes")
	}
}

func TestFormatPlainNil(t *testing.T) {
	t.Parallel()

	if got := FormatPlain(nil); got != "" {
		t.Errorf("FormatPlain(nil) = %q, want empty", got)
	}
}
