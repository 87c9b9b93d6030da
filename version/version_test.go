package version

import (
	"strings"
	"testing"
)

func TestClientHeaderUsesVersion(t *testing.T) {
	previous := Version
	Version = "1.2.3"
	defer func() { Version = previous }()

	if got := ClientHeader("fire-admin-go"); got != "fire-admin-go/1.2.3" {
		t.Fatalf("unexpected client header: %q", got)
	}
}

func TestStringIncludesCommit(t *testing.T) {
	got := String("appcheck")
	if !strings.HasPrefix(got, "appcheck "+Version) {
		t.Fatalf("unexpected version string: %q", got)
	}
	if !strings.Contains(got, "commit="+GitCommit) {
		t.Fatalf("expected commit in version string, got %q", got)
	}
}
