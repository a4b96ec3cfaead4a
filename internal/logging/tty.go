package logging

import (
	"io"
	"os"

	"golang.org/x/term"
)

// IsTTY reports whether w is a terminal. Only writers exposing Fd qualify.
func IsTTY(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	return ok && term.IsTerminal(int(f.Fd()))
}

// ColorEnabled reports whether colored output should go to w.
// NO_COLOR and TERM=dumb turn color off, FORCE_COLOR turns it on even
// for pipes.
func ColorEnabled(w io.Writer) bool {
	return colorEnabled(IsTTY(w))
}

func colorEnabled(tty bool) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	if v := os.Getenv("FORCE_COLOR"); v != "" && v != "0" {
		return true
	}
	return tty
}
