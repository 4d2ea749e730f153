package enummessage

import "runtime/debug"

// Version overrides the reported version. Release builds set it with
// -ldflags "-X github.com/pablor21/enummessage.Version=v1.2.3".
var Version = ""

const (
	modulePath   = "github.com/pablor21/enummessage"
	develVersion = "(devel)"
)

// GetVersion reports the enummessage version: Version when set, otherwise
// what the build info knows about this module.
func GetVersion() string {
	if Version != "" {
		return Version
	}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return develVersion
	}
	return versionFromBuildInfo(info)
}

// versionFromBuildInfo finds this module in info, either as the main module
// (go install, go run) or as a dependency of the program embedding the
// generator. A main module built from a checkout without a tagged version
// reports its short VCS revision.
func versionFromBuildInfo(info *debug.BuildInfo) string {
	if info.Main.Path != modulePath {
		for _, dep := range info.Deps {
			if dep.Path != modulePath {
				continue
			}
			if dep.Replace != nil && dep.Replace.Version != "" {
				return dep.Replace.Version
			}
			if dep.Version != "" {
				return dep.Version
			}
		}
		return develVersion
	}

	if v := info.Main.Version; v != "" && v != develVersion {
		return v
	}

	var revision string
	dirty := false
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if revision == "" {
		return develVersion
	}
	revision = revision[:min(len(revision), 12)]
	if dirty {
		revision += "+dirty"
	}
	return revision
}
