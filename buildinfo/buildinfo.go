// Package buildinfo reports the VCS state the running binary was built from,
// so a summary in a lab notebook can be traced back to a commit.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

type Info struct {
	Path      string
	GoVersion string
	Revision  string
	BuildTime string
	Dirty     bool
}

func (i Info) String() string {
	dirty := ""
	if i.Dirty {
		dirty = " (with uncommitted changes)"
	}

	return fmt.Sprintf("%s built with %s from commit %s at %s%s", i.Path, i.GoVersion, i.Revision, i.BuildTime, dirty)
}

// Get reads the build metadata stamped into the binary. Binaries built
// outside a checkout yield an Info with empty VCS fields.
func Get() Info {
	out := Info{}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	out.Path = bi.Path
	out.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.BuildTime = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}
