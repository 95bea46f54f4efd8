package app

import (
	"fmt"
	"io"
)

// Version is the application version. Overridable at build time with
// -ldflags "-X github.com/agbru/factcalc/internal/app.Version=...".
var Version = "1.0.0"

// HasVersionFlag reports whether the arguments request the version banner.
// Checked before full flag parsing so --version works even with otherwise
// invalid arguments.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" {
			return true
		}
	}
	return false
}

// PrintVersion writes the version banner.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "factcalc version %s\n", Version)
}
