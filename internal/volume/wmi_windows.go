//go:build windows

package volume

import (
	"fmt"

	"github.com/yusufpapurcu/wmi"
)

// Win32_LogicalDisk maps to the WMI class of the same name.
type Win32_LogicalDisk struct {
	DeviceID   string // "C:"
	VolumeName string
	FileSystem string
	DriveType  uint32
	Size       *uint64
	FreeSpace  *uint64
}

// WMI enumerates volumes through Win32_LogicalDisk.
type WMI struct{}

// queryLogicalDisks runs the WMI query (mockable).
var queryLogicalDisks = func() ([]Win32_LogicalDisk, error) {
	var dst []Win32_LogicalDisk
	q := wmi.CreateQuery(&dst, "")
	if err := wmi.Query(q, &dst); err != nil {
		return nil, err
	}
	return dst, nil
}

func (WMI) Volumes() ([]Volume, error) {
	disks, err := queryLogicalDisks()
	if err != nil {
		return nil, fmt.Errorf("query Win32_LogicalDisk: %w", err)
	}

	return fromLogicalDisks(disks), nil
}

func fromLogicalDisks(disks []Win32_LogicalDisk) []Volume {
	result := make([]Volume, 0, len(disks))
	for _, d := range disks {
		letter := LetterOf(d.DeviceID)
		if letter < 'A' || letter > 'Z' {
			continue
		}

		v := Volume{
			Letter:     letter,
			Root:       rootFor(letter),
			Label:      d.VolumeName,
			FileSystem: d.FileSystem,
			DriveType:  DriveType(d.DriveType),
		}
		if d.Size != nil {
			v.Total = *d.Size
		}
		if d.FreeSpace != nil {
			v.Free = *d.FreeSpace
		}
		result = append(result, v)
	}

	sortByLetter(result)
	return result
}
