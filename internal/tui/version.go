package tui

import "fmt"

// Set with -ldflags "-X github.com/akyairhashvil/studybuddy/internal/tui.AppVersion=...".
var (
	AppVersion = "0.1.0"
	GitCommit  = "unknown"
	BuildTime  = "unknown"
)

// VersionLabel is the version plus build details when they were stamped in.
func VersionLabel() string {
	label := AppVersion
	if GitCommit != "unknown" || BuildTime != "unknown" {
		label = fmt.Sprintf("%s (%s %s)", AppVersion, GitCommit, BuildTime)
	}
	return label
}
