// Package vars holds build information injected with -ldflags.
package vars

import (
	"fmt"
	"runtime"
)

// Build information, set with -ldflags "-X github.com/woozymasta/bsp-tool/internal/vars.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the one-line build information.
func String() string {
	return fmt.Sprintf("bsp-tool %s (commit %s, built %s, %s %s/%s)",
		Version, Commit, BuildTime, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Print writes the build information to stdout.
func Print() {
	fmt.Println(String())
}
