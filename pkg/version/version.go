// Package version holds build information, set at link time.
package version

import (
	"runtime"
)

// Version is the tswig release, set with -ldflags "-X github.com/cloudposse/tswig/pkg/version.Version=v1.2.3".
var Version = "0.0.0-dev"

// Info describes the running binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

// Get returns the build information.
func Get() Info {
	return Info{
		Version:   Version,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
