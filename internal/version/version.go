package version

import (
	"fmt"
	"runtime"
)

// Set via -ldflags "-X github.com/nhdewitt/freeletters/internal/version.Version=..."
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// Info describes the running build.
type Info struct {
	Version   string
	Commit    string
	BuildTime string
	GoVersion string
}

// Get returns the build info.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

// String formats the info for a banner, e.g. "freeletters - v1.2.0 (abc1234)".
func (i Info) String() string {
	return fmt.Sprintf("freeletters - v%s (%s)", i.Version, i.Commit)
}
