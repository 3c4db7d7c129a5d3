//go:build windows

package registry

import (
	"errors"
	"fmt"

	apperrors "github.com/nhdewitt/freeletters/internal/errors"
	"golang.org/x/sys/windows/registry"
)

// openKey opens the store key in the 64-bit registry view.
func (m *MountedDevices) openKey(access uint32) (registry.Key, error) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, m.Path(), access|registry.WOW64_64KEY)
	if err != nil {
		return 0, apperrors.StoreAccessError(fmt.Sprintf(`open HKLM\%s`, m.Path()), err).
			WithContext("path", m.Path())
	}
	return k, nil
}

// ValueNames returns every value name under the key.
func (m *MountedDevices) ValueNames() ([]string, error) {
	k, err := m.openKey(registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	names, err := k.ReadValueNames(-1)
	if err != nil {
		return nil, apperrors.StoreAccessError(fmt.Sprintf(`read values of HKLM\%s`, m.Path()), err)
	}

	return names, nil
}

// ReadValue returns the raw data of a value.
func (m *MountedDevices) ReadValue(name string) ([]byte, error) {
	k, err := m.openKey(registry.QUERY_VALUE)
	if err != nil {
		return nil, err
	}
	defer k.Close()

	data, _, err := k.GetBinaryValue(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}

	return data, nil
}

// HasValue reports whether the value exists.
func (m *MountedDevices) HasValue(name string) (bool, error) {
	k, err := m.openKey(registry.QUERY_VALUE)
	if err != nil {
		return false, err
	}
	defer k.Close()

	_, _, err = k.GetValue(name, nil)
	if errors.Is(err, registry.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("query %s: %w", name, err)
	}

	return true, nil
}

// DeleteValue removes a value. The key is opened writable only for this call.
func (m *MountedDevices) DeleteValue(name string) error {
	k, err := m.openKey(registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	if err := k.DeleteValue(name); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}

	return nil
}
