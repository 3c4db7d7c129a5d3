// Package console renders reservations and reads the operator's choices.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	xterm "github.com/charmbracelet/x/term"
	"golang.org/x/term"
)

const defaultWidth = 100

// Console is a line-oriented terminal session.
type Console struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	width       int
}

// New attaches to the process's stdin and stdout. Prompts are only printed
// when stdin is a terminal; piped input is still read line by line.
func New(in, out *os.File) *Console {
	width := defaultWidth
	if xterm.IsTerminal(out.Fd()) {
		if w, _, err := xterm.GetSize(out.Fd()); err == nil && w > 0 {
			width = w
		}
	}

	return &Console{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: term.IsTerminal(int(in.Fd())),
		width:       width,
	}
}

// NewWithIO builds a console over arbitrary streams.
func NewWithIO(in io.Reader, out io.Writer, interactive bool, width int) *Console {
	if width <= 0 {
		width = defaultWidth
	}
	return &Console{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: interactive,
		width:       width,
	}
}

// Printf writes to the output stream.
func (c *Console) Printf(format string, args ...any) {
	fmt.Fprintf(c.out, format, args...)
}

func (c *Console) prompt(text string) {
	if c.interactive {
		fmt.Fprint(c.out, text)
	}
}

// readLine returns the next trimmed line. io.EOF with no data means the input was closed.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !(err == io.EOF && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// truncate shortens s to n runes, marking the cut with "...".
func truncate(s string, n int) string {
	r := []rune(s)
	switch {
	case len(r) <= n:
		return s
	case n <= 0:
		return ""
	case n <= 3:
		return string(r[:n])
	default:
		return string(r[:n-3]) + "..."
	}
}
