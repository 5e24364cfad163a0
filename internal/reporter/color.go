package reporter

import (
	"io"
	"os"
)

// ANSI escape codes for status colors.
const (
	colorReset  = "\033[0m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
)

// statusColor maps the changed indicator to a color: yellow for a run that
// changed state, green for a no-op.
func statusColor(changed bool) string {
	if changed {
		return colorYellow
	}
	return colorGreen
}

// isTTY returns true if the writer is a terminal.
func isTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := f.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
