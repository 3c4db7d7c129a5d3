// Package registry reads and deletes drive letter reservations under
// HKLM\SYSTEM\MountedDevices.
package registry

// MountedDevicesPath is the key holding persistent drive letter assignments.
const MountedDevicesPath = `SYSTEM\MountedDevices`

// MountedDevices is the reservation store backed by the live registry.
// The zero value is ready to use; each call opens and closes the key.
type MountedDevices struct {
	path string
}

// Open returns the store for HKLM\SYSTEM\MountedDevices.
func Open() *MountedDevices {
	return &MountedDevices{path: MountedDevicesPath}
}

// Path returns the key path relative to HKLM.
func (m *MountedDevices) Path() string {
	if m.path == "" {
		return MountedDevicesPath
	}
	return m.path
}
