package version

import (
	"fmt"
	"runtime"
)

// Set via -ldflags at build time:
//
//	go build -ldflags "-X github.com/goliatone/go-appcheck/version.Version=0.1.0"
var (
	Version   = "dev"
	GitCommit = "unknown"
)

// ClientHeader returns the client identification value sent to Firebase.
func ClientHeader(clientName string) string {
	return fmt.Sprintf("%s/%s", clientName, Version)
}

// String returns a human-readable version string.
func String(name string) string {
	return fmt.Sprintf("%s %s (commit=%s, go=%s, %s/%s)",
		name, Version, GitCommit, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
