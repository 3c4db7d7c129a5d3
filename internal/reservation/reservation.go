// Package reservation lists, classifies and releases the drive letter
// reservations Windows keeps under MountedDevices.
package reservation

import (
	"strings"
	"unicode"

	"github.com/nhdewitt/freeletters/internal/volume"
)

// SystemLetter is always protected.
const SystemLetter = 'C'

// Policy decides which letters may be released.
type Policy struct {
	// Protected letters are never removable unless AlwaysAllowRemove is set.
	Protected []rune
	// AlwaysAllowRemove disables every safety check for the session.
	AlwaysAllowRemove bool
}

// DefaultPolicy protects the system letter only.
func DefaultPolicy() Policy {
	return Policy{Protected: []rune{SystemLetter}}
}

// IsProtected reports whether letter is in the protected set, ignoring case.
func (p Policy) IsProtected(letter rune) bool {
	letter = unicode.ToUpper(letter)
	for _, pl := range p.Protected {
		if unicode.ToUpper(pl) == letter {
			return true
		}
	}
	return false
}

// Classify returns whether a letter may be released.
func Classify(letter rune, mounted bool, policy Policy) bool {
	if policy.AlwaysAllowRemove {
		return true
	}
	return !policy.IsProtected(letter) && !mounted
}

// Reservation is one `\DosDevices\X:` entry.
type Reservation struct {
	Letter rune

	// Protected and Mounted record what was observed at construction.
	Protected bool
	Mounted   bool

	// Target describes the device the letter points at, if known.
	Target string

	// Volume is the volume seen at the letter during the scan, nil if none.
	Volume *volume.Volume

	// MarkedForRemoval is set by the operator. It only matters when CanBeRemoved is true.
	MarkedForRemoval bool

	canBeRemoved bool
	forced       bool
}

// New builds a reservation and fixes its removability.
func New(letter rune, mounted bool, policy Policy) *Reservation {
	letter = unicode.ToUpper(letter)
	protected := policy.IsProtected(letter)
	safe := !protected && !mounted

	return &Reservation{
		Letter:       letter,
		Protected:    protected,
		Mounted:      mounted,
		canBeRemoved: Classify(letter, mounted, policy),
		forced:       policy.AlwaysAllowRemove && !safe,
	}
}

// CanBeRemoved reports whether the reservation may be released.
func (r *Reservation) CanBeRemoved() bool {
	return r.canBeRemoved
}

// ValueName returns the registry value name for the reservation.
func (r *Reservation) ValueName() string {
	return ValueName(r.Letter)
}

// Status summarises the classification for display.
func (r *Reservation) Status() string {
	switch {
	case r.forced:
		return "forced"
	case r.canBeRemoved:
		return "removable"
	case r.Mounted:
		return "in use"
	case r.Protected:
		return "protected"
	default:
		return "locked"
	}
}

// Find returns the reservation for letter, ignoring case, or nil.
func Find(rs []*Reservation, letter rune) *Reservation {
	letter = unicode.ToUpper(letter)
	for _, r := range rs {
		if r.Letter == letter {
			return r
		}
	}
	return nil
}

// Marked returns the letters currently marked for removal as a string, e.g. "DF".
func Marked(rs []*Reservation) string {
	var b strings.Builder
	for _, r := range rs {
		if r.MarkedForRemoval {
			b.WriteRune(r.Letter)
		}
	}
	return b.String()
}
