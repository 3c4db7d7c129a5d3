//go:build windows

package volume

import (
	"fmt"
	"log/slog"
	"math/bits"
	"unsafe"

	"golang.org/x/sys/windows"
)

// Native enumerates volumes through kernel32.
type Native struct{}

// logicalDrives returns the GetLogicalDrives bitmask (mockable).
var logicalDrives = func() uint32 {
	ret, _, _ := procGetLogicalDrives.Call()
	return uint32(ret)
}

func (Native) Volumes() ([]Volume, error) {
	driveMask := logicalDrives()
	if driveMask == 0 {
		return nil, fmt.Errorf("GetLogicalDrives failed")
	}

	result := make([]Volume, 0, bits.OnesCount32(driveMask))

	for i := 0; i < 26; i++ {
		if driveMask&(1<<i) == 0 {
			continue
		}

		letter := rune('A' + i)
		rootPath := rootFor(letter)
		rootPathPtr, _ := windows.UTF16PtrFromString(rootPath)

		typeRet, _, _ := procGetDriveType.Call(uintptr(unsafe.Pointer(rootPathPtr)))

		vol := Volume{
			Letter:    letter,
			Root:      rootPath,
			DriveType: DriveType(typeRet),
		}

		// Card readers and optical drives without media fail here but still hold the letter
		var volNameBuf [256]uint16
		var fsNameBuf [256]uint16

		ret, _, _ := procGetVolumeInformation.Call(
			uintptr(unsafe.Pointer(rootPathPtr)),
			uintptr(unsafe.Pointer(&volNameBuf[0])),
			uintptr(len(volNameBuf)),
			0,
			0,
			0,
			uintptr(unsafe.Pointer(&fsNameBuf[0])),
			uintptr(len(fsNameBuf)),
		)
		if ret == 0 {
			slog.Debug("volume information unavailable", "root", rootPath)
			result = append(result, vol)
			continue
		}

		vol.Label = windows.UTF16ToString(volNameBuf[:])
		vol.FileSystem = windows.UTF16ToString(fsNameBuf[:])

		var freeBytesAvailable, totalNumberOfBytes, totalNumberOfFreeBytes uint64

		ret, _, _ = procGetDiskFreeSpaceEx.Call(
			uintptr(unsafe.Pointer(rootPathPtr)),
			uintptr(unsafe.Pointer(&freeBytesAvailable)),
			uintptr(unsafe.Pointer(&totalNumberOfBytes)),
			uintptr(unsafe.Pointer(&totalNumberOfFreeBytes)),
		)
		if ret != 0 {
			vol.Total = totalNumberOfBytes
			vol.Free = freeBytesAvailable
		}

		result = append(result, vol)
	}

	return result, nil
}
