package logging

import (
	"io"
	"log/slog"
	"os"
)

// Init configures the default slog logger for the CLI.
// verbose=true enables LevelDebug; the default is LevelWarn so a normal
// run prints only the report, not log noise.
// output defaults to os.Stderr if nil.
func Init(verbose bool, output io.Writer) {
	if output == nil {
		output = os.Stderr
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(handler))
}
