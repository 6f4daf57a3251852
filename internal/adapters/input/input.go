package input

import (
	"context"
	"io"
	"os"

	"github.com/bnema/deepseek-chat-cli/internal/ports"
	"github.com/peterh/liner"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// New returns a line-editing reader when stdin and stdout are terminals and a
// plain scanner otherwise. The line editor owns Ctrl+C, so it reports it
// through interrupt.
func New(stdin *os.File, stdout io.Writer, interrupt context.CancelFunc) (ports.LineReader, error) {
	if out, ok := stdout.(*os.File); ok && IsTerminal(stdin) && IsTerminal(out) && liner.TerminalSupported() {
		return NewLinerReader(interrupt)
	}

	return NewPlainReader(stdin, stdout), nil
}
