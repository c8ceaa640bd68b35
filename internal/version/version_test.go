package version

import "testing"

func TestIsDevBuild(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	Version = "dev"
	if !IsDevBuild() {
		t.Error("IsDevBuild() = false for a dev build")
	}

	Version = "1.4.0"
	if IsDevBuild() {
		t.Error("IsDevBuild() = true for a release build")
	}
}
