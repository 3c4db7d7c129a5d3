package platform

import "fmt"

// Info describes the host the tool runs on.
type Info struct {
	ProductName    string // "Windows 11 Pro"
	DisplayVersion string // "23H2"
	Build          string // "22631"

	// IsAdmin reports membership of BUILTIN\Administrators. Writing
	// MountedDevices needs an elevated token.
	IsAdmin bool
}

// String formats the host for a banner.
func (i Info) String() string {
	s := i.ProductName
	if i.DisplayVersion != "" {
		s += " " + i.DisplayVersion
	}
	if i.Build != "" {
		s += fmt.Sprintf(" (build %s)", i.Build)
	}
	return s
}
