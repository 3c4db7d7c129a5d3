package console

import (
	"fmt"

	"github.com/nhdewitt/freeletters/internal/reservation"
)

// Warning is shown before any data when forced removal is enabled.
const Warning = `WARNING!
Releasing a drive letter that is in use or system critical can leave the system unstable.
Forced removal is enabled for this session.`

// ShowWarning prints the forced-removal warning.
func (c *Console) ShowWarning() {
	fmt.Fprintf(c.out, "%s\n\n", Warning)
}

// Render prints the reservation table. label returns the volume label for a reservation.
// Type, size and usage come from the volume attached at scan time.
func (c *Console) Render(rs []*reservation.Reservation, label func(*reservation.Reservation) string) {
	const fixed = 4 + 11 + 18 + 10 + 11 + 6
	targetWidth := c.width - fixed - 1

	fmt.Fprintf(c.out, "%-4s%-11s%-18s%-10s%-11s%-6s%s\n", "DRV", "STATUS", "LABEL", "TYPE", "SIZE", "USED", "TARGET")
	for _, r := range rs {
		l := label(r)
		if l == "" {
			l = "-"
		}

		kind, size, used := "-", "-", "-"
		if v := r.Volume; v != nil {
			kind = v.DriveType.String()
			if v.Total > 0 {
				size = formatBytes(v.Total)
				used = fmt.Sprintf("%.0f%%", v.UsedPct())
			}
		}

		fmt.Fprintf(c.out, "%-4s%-11s%-18s%-10s%-11s%-6s%s\n",
			string(r.Letter)+":",
			r.Status(),
			truncate(l, 17),
			truncate(kind, 9),
			size,
			used,
			truncate(r.Target, targetWidth),
		)
	}
}

func formatBytes(b uint64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := uint64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// Summary prints how many letters can be released.
func (c *Console) Summary(total, removable int) {
	fmt.Fprintf(c.out, "\n%d reserved drive letters, %d can be released.\n", total, removable)
}

// ReportDeleted prints the outcome of a successful batch.
func (c *Console) ReportDeleted(letters []rune) {
	fmt.Fprintf(c.out, "Released %d drive letters: %s\n", len(letters), joinLetters(letters))
}

// ReportFailure prints the outcome of a batch that stopped at failed.
func (c *Console) ReportFailure(deleted []rune, failed rune, err error) {
	if len(deleted) > 0 {
		fmt.Fprintf(c.out, "Released %d drive letters before the failure: %s\n", len(deleted), joinLetters(deleted))
	}
	fmt.Fprintf(c.out, "Releasing drive letter %c failed.\n\n%v\n", failed, err)
}

func joinLetters(letters []rune) string {
	s := ""
	for i, l := range letters {
		if i > 0 {
			s += ", "
		}
		s += string(l) + ":"
	}
	return s
}
