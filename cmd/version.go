package cmd

import (
	"fmt"
	"runtime"
	"strings"
)

// Version information set at build time via ldflags.
// Example: go build -ldflags="-X github.com/smashah/workspace-updater/cmd.Version=1.0.0"
var (
	// Version is the semantic version of the build.
	Version = "dev"
	// BuildTime is the timestamp of the build.
	BuildTime = ""
	// GitCommit is the git commit hash of the build.
	GitCommit = ""
	// BuildOS is the target OS the binary was built for.
	BuildOS = ""
	// BuildArch is the target architecture the binary was built for.
	BuildArch = ""
)

// getBuildTarget returns the OS and architecture the binary was built for,
// falling back to the runtime values for dev builds.
func getBuildTarget() (string, string) {
	buildOS, buildArch := BuildOS, BuildArch
	if buildOS == "" {
		buildOS = runtime.GOOS
	}
	if buildArch == "" {
		buildArch = runtime.GOARCH
	}
	return buildOS, buildArch
}

// versionTemplate renders the --version output.
func versionTemplate() string {
	var b strings.Builder

	buildOS, buildArch := getBuildTarget()
	fmt.Fprintf(&b, "  Build:   %s/%s\n", buildOS, buildArch)
	if buildOS != runtime.GOOS || buildArch != runtime.GOARCH {
		fmt.Fprintf(&b, "  Runtime: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	fmt.Fprintf(&b, "  Go:      %s\n", runtime.Version())
	if BuildTime != "" {
		fmt.Fprintf(&b, "  Date:    %s\n", BuildTime)
	}
	if GitCommit != "" {
		fmt.Fprintf(&b, "  Git:     %s\n", GitCommit)
	}
	b.WriteString("  Version: {{.Version}}\n")

	return b.String()
}
