// Package version holds build metadata injected at link time via
// -ldflags "-X github.com/echolearn/echolearn/version.GitRelease=...".
package version

import "runtime"

var (
	// GitRelease is the git tag or release name of this build.
	GitRelease = "dev"

	// GitCommit is the git commit hash of this build.
	GitCommit = "unknown"

	// GitCommitDate is the commit date of this build.
	GitCommitDate = "unknown"

	// GoInfo is the Go runtime version used to build the binary.
	GoInfo = runtime.Version()
)
