//go:build !windows

package registry

import (
	apperrors "github.com/nhdewitt/freeletters/internal/errors"
)

func (m *MountedDevices) unsupported() error {
	return apperrors.StoreAccessError(`open HKLM\`+m.Path(),
		apperrors.UnsupportedError("the registry is only available on windows")).
		WithContext("path", m.Path())
}

func (m *MountedDevices) ValueNames() ([]string, error) { return nil, m.unsupported() }

func (m *MountedDevices) ReadValue(string) ([]byte, error) { return nil, m.unsupported() }

func (m *MountedDevices) HasValue(string) (bool, error) { return false, m.unsupported() }

func (m *MountedDevices) DeleteValue(string) error { return m.unsupported() }
