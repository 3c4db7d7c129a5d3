package reservation

import (
	"fmt"
	"strings"
	"unicode"

	apperrors "github.com/nhdewitt/freeletters/internal/errors"
)

const (
	// valueNamePrefix is the value name prefix of a drive letter reservation.
	valueNamePrefix = `\DosDevices\`
	// reservationMarker is matched case-insensitively anywhere in a value name.
	reservationMarker = `\dosdevices\`
	// letterOffset is where the letter sits in `\DosDevices\X:`. It assumes the
	// marker starts the name, which holds for every name Windows writes.
	letterOffset = 12
)

// ValueName returns the MountedDevices value name for a letter, e.g. `\DosDevices\D:`.
func ValueName(letter rune) string {
	return fmt.Sprintf(`%s%c:`, valueNamePrefix, unicode.ToUpper(letter))
}

// IsReservationName reports whether a MountedDevices value name is a drive letter reservation.
// Volume GUID entries (`\??\Volume{...}`) are not.
func IsReservationName(name string) bool {
	return strings.Contains(strings.ToLower(name), reservationMarker)
}

// ParseValueName extracts the upper-case drive letter from a reservation value name.
func ParseValueName(name string) (rune, error) {
	if name == "" {
		return 0, apperrors.ArgumentError("value name must not be empty")
	}

	if !IsReservationName(name) {
		return 0, apperrors.ArgumentError(fmt.Sprintf("value name %q is not a drive letter reservation", name)).
			WithContext("name", name)
	}

	if len(name) <= letterOffset {
		return 0, apperrors.ArgumentError(fmt.Sprintf("value name %q has no drive letter", name)).
			WithContext("name", name)
	}

	letter := unicode.ToUpper(rune(name[letterOffset]))
	if letter < 'A' || letter > 'Z' {
		return 0, apperrors.ArgumentError(fmt.Sprintf("value name %q has invalid drive letter %q", name, letter)).
			WithContext("name", name)
	}

	return letter, nil
}
