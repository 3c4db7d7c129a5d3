package reservation

import apperrors "github.com/nhdewitt/freeletters/internal/errors"

// CountRemovable counts the reservations that may be released.
// A nil or empty slice is a caller error.
func CountRemovable(rs []*Reservation) (int, error) {
	if len(rs) == 0 {
		return 0, apperrors.ArgumentError("reservations must not be empty")
	}

	count := 0
	for _, r := range rs {
		if r.CanBeRemoved() {
			count++
		}
	}

	return count, nil
}
