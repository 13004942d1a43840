// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

// StdoutIsTerminal reports whether stdout is an interactive terminal.
// Progress output is styled only when a human is watching it.
func StdoutIsTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}
