// Package version exposes build information. The Git values are set with
// -ldflags "-X github.com/jackzampolin/pagenum/version.GitRelease=..." and
// fall back to the module build info.
package version

import (
	"runtime"
	"runtime/debug"
)

var (
	GitRelease    = "dev"
	GitCommit     = "unknown"
	GitCommitDate = "unknown"
	GoInfo        = runtime.Version() + " " + runtime.GOOS + "/" + runtime.GOARCH
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if GitRelease == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		GitRelease = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if GitCommit == "unknown" {
				GitCommit = s.Value
			}
		case "vcs.time":
			if GitCommitDate == "unknown" {
				GitCommitDate = s.Value
			}
		}
	}
}
