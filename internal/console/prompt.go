package console

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/nhdewitt/freeletters/internal/reservation"
)

// SelectLetters asks which letters to release. It returns nil when the
// operator cancels with an empty line, "q", or closed input.
func (c *Console) SelectLetters() ([]rune, []string, error) {
	c.prompt("\nLetters to release (e.g. D F), empty to cancel: ")

	line, err := c.readLine()
	if err == io.EOF {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("read selection: %w", err)
	}

	if line == "" || strings.EqualFold(line, "q") {
		return nil, nil, nil
	}

	letters, invalid := ParseSelection(line)
	return letters, invalid, nil
}

// ParseSelection splits "D, e: F" into upper-case letters. Tokens that are not
// a single letter (with an optional colon) are returned as invalid.
func ParseSelection(line string) ([]rune, []string) {
	var letters []rune
	var invalid []string
	seen := make(map[rune]bool)

	fields := strings.FieldsFunc(line, func(r rune) bool { return r == ',' || r == ';' || unicode.IsSpace(r) })
	for _, f := range fields {
		tok := strings.TrimSuffix(f, ":")
		if len(tok) != 1 {
			invalid = append(invalid, f)
			continue
		}
		l := unicode.ToUpper(rune(tok[0]))
		if l < 'A' || l > 'Z' {
			invalid = append(invalid, f)
			continue
		}
		if !seen[l] {
			seen[l] = true
			letters = append(letters, l)
		}
	}

	return letters, invalid
}

// Mark flags the selected reservations for removal. Letters without a
// reservation or that cannot be removed are returned as rejected and left unmarked.
func Mark(rs []*reservation.Reservation, letters []rune) (marked, rejected []rune) {
	for _, l := range letters {
		r := reservation.Find(rs, l)
		if r == nil || !r.CanBeRemoved() {
			rejected = append(rejected, l)
			continue
		}
		r.MarkedForRemoval = true
		marked = append(marked, r.Letter)
	}
	return marked, rejected
}

// Confirm asks for a y/N answer. Anything other than y or yes declines.
func (c *Console) Confirm(n int) (bool, error) {
	c.prompt(fmt.Sprintf("Release the %d selected drive letters? [y/N]: ", n))

	line, err := c.readLine()
	if err == io.EOF {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read confirmation: %w", err)
	}

	switch strings.ToLower(line) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
