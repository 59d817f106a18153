package main

import (
	"runtime/debug"

	"github.com/marcus/devsetup/cmd"
	"github.com/marcus/devsetup/internal/config"
)

// Version is stamped by release builds: -ldflags "-X main.Version=v1.2.3".
var Version = "dev"

func main() {
	config.LoadDotEnv()
	info, _ := debug.ReadBuildInfo()
	cmd.SetVersion(resolveVersion(Version, info))
	cmd.Execute()
}

// resolveVersion prefers a stamped version, then the module version recorded
// by `go install module@version`, then the VCS revision as
// "devel+<rev>[+dirty]".
func resolveVersion(stamped string, info *debug.BuildInfo) string {
	if stamped != "" && stamped != "dev" {
		return stamped
	}
	if info == nil {
		return stamped
	}
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	vcs := make(map[string]string, len(info.Settings))
	for _, s := range info.Settings {
		vcs[s.Key] = s.Value
	}
	rev := vcs["vcs.revision"]
	if rev == "" {
		return stamped
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	v := "devel+" + rev
	if vcs["vcs.modified"] == "true" {
		v += "+dirty"
	}
	return v
}
