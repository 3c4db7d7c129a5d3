//go:build !windows

package volume

import apperrors "github.com/nhdewitt/freeletters/internal/errors"

// Native enumerates volumes through kernel32.
type Native struct{}

func (Native) Volumes() ([]Volume, error) {
	return nil, apperrors.UnsupportedError("native volume enumeration requires windows")
}

// WMI enumerates volumes through Win32_LogicalDisk.
type WMI struct{}

func (WMI) Volumes() ([]Volume, error) {
	return nil, apperrors.UnsupportedError("WMI volume enumeration requires windows")
}
