package app

import (
	"fmt"
	"io"
	"runtime"
)

// Version is set at build time with -ldflags "-X github.com/agbru/fpcore/internal/app.Version=...".
var Version = "dev"

// HasVersionFlag reports whether args request the version string.
func HasVersionFlag(args []string) bool {
	for _, arg := range args {
		if arg == "--version" || arg == "-version" || arg == "-V" {
			return true
		}
	}
	return false
}

// PrintVersion writes the program version and toolchain.
func PrintVersion(out io.Writer) {
	fmt.Fprintf(out, "fpcore %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}
