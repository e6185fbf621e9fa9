package ui

import (
	"os"

	"golang.org/x/term"
)

// Terminal describes what a standard stream is attached to.
type Terminal struct {
	Interactive bool
	Width       int // columns, 0 when unknown
}

// Probe inspects f. A stream that is not a terminal reports zero width.
func Probe(f *os.File) Terminal {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return Terminal{}
	}
	t := Terminal{Interactive: true}
	if w, _, err := term.GetSize(fd); err == nil && w > 0 {
		t.Width = w
	}
	return t
}
