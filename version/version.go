// Package version reports the version of the sompyler tools.
package version

import "runtime/debug"

// Version can be set at build time:
// go build -ldflags "-X github.com/sompyler/sompyler/version.Version=$(git describe --dirty)"
var Version string

// String returns Version if set, otherwise the module version or VCS
// revision recorded in the binary, or "devel".
func String() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "devel"
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}
	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if len(revision) < 7 {
		return "devel"
	}
	if dirty {
		return revision[:7] + "-dirty"
	}
	return revision[:7]
}
