// Package volume enumerates the volumes that are mounted right now.
package volume

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	apperrors "github.com/nhdewitt/freeletters/internal/errors"
	"golang.org/x/exp/constraints"
)

// Source names accepted by New.
const (
	SourceNative = "native"
	SourceWMI    = "wmi"
)

// DriveType mirrors the GetDriveTypeW / Win32_LogicalDisk.DriveType codes.
type DriveType uint32

const (
	DriveUnknown   DriveType = 0
	DriveNoRootDir DriveType = 1
	DriveRemovable DriveType = 2
	DriveFixed     DriveType = 3
	DriveRemote    DriveType = 4
	DriveCdrom     DriveType = 5
	DriveRamdisk   DriveType = 6
)

func (t DriveType) String() string {
	switch t {
	case DriveNoRootDir:
		return "no root"
	case DriveRemovable:
		return "removable"
	case DriveFixed:
		return "fixed"
	case DriveRemote:
		return "network"
	case DriveCdrom:
		return "cd-rom"
	case DriveRamdisk:
		return "ramdisk"
	default:
		return "unknown"
	}
}

// Volume is a live volume with a drive letter.
type Volume struct {
	Letter     rune
	Root       string // "D:\"
	Label      string
	FileSystem string
	DriveType  DriveType
	Total      uint64
	Free       uint64
}

// UsedPct returns the used share of the volume in percent.
func (v Volume) UsedPct() float64 {
	return percent(v.Total-v.Free, v.Total)
}

// Provider returns the volumes currently mounted on the host.
type Provider interface {
	Volumes() ([]Volume, error)
}

// New returns the provider for the named source. An empty source selects the native one.
func New(source string) (Provider, error) {
	switch strings.ToLower(source) {
	case "", SourceNative:
		return Native{}, nil
	case SourceWMI:
		return WMI{}, nil
	default:
		return nil, apperrors.ArgumentError(fmt.Sprintf("unknown volume source %q", source)).
			WithContext("source", source)
	}
}

// Static is a fixed set of volumes.
type Static []Volume

func (s Static) Volumes() ([]Volume, error) {
	out := make([]Volume, len(s))
	copy(out, s)
	return out, nil
}

// Lookup returns the volume mounted at letter.
func Lookup(p Provider, letter rune) (Volume, error) {
	vols, err := p.Volumes()
	if err != nil {
		return Volume{}, fmt.Errorf("enumerate volumes: %w", err)
	}

	for _, v := range vols {
		if matches(v, letter) {
			return v, nil
		}
	}

	return Volume{}, apperrors.NotMountedError(unicode.ToUpper(letter))
}

// IsMounted reports whether any live volume uses letter.
func IsMounted(p Provider, letter rune) (bool, error) {
	_, err := Lookup(p, letter)
	if err == nil {
		return true, nil
	}
	if apperrors.IsType(err, apperrors.TypeNotMounted) {
		return false, nil
	}
	return false, err
}

// MountedSet indexes vols by upper-case drive letter.
func MountedSet(vols []Volume) map[rune]Volume {
	set := make(map[rune]Volume, len(vols))
	for _, v := range vols {
		l := LetterOf(v.Root)
		if l == 0 {
			continue
		}
		set[l] = v
	}
	return set
}

// LetterOf returns the upper-case first character of a root path, or 0 for an empty root.
func LetterOf(root string) rune {
	for _, r := range root {
		return unicode.ToUpper(r)
	}
	return 0
}

// matches compares the first character of the root path, ignoring case.
func matches(v Volume, letter rune) bool {
	l := LetterOf(v.Root)
	return l != 0 && l == unicode.ToUpper(letter)
}

func sortByLetter(vols []Volume) {
	sort.Slice(vols, func(i, j int) bool { return vols[i].Letter < vols[j].Letter })
}

func rootFor(letter rune) string {
	return string(unicode.ToUpper(letter)) + `:\`
}

type numeric interface {
	constraints.Integer | constraints.Float
}

func percent[T numeric](part, total T) float64 {
	if total == 0 {
		return 0.0
	}
	return (float64(part) / float64(total)) * 100.0
}
