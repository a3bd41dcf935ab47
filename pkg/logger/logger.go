package logger

import (
	"io"
	"log/slog"
	"os"
)

// Options controls the stdout handler.
type Options struct {
	// Output defaults to os.Stdout.
	Output io.Writer
	// Level is the minimum level written. The zero value is Info.
	Level slog.Level
	// Text switches from JSON lines to logfmt-style text, handy in debug runs.
	Text bool
}

// New creates a logger writing to stdout with the given extractors.
func New(opts Options, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newStdoutHandler(opts), extractors...))
}

// NewNope returns a logger that discards everything.
func NewNope() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStdoutHandler(opts Options) slog.Handler {
	out := opts.Output
	if out == nil {
		out = os.Stdout
	}
	ho := &slog.HandlerOptions{Level: opts.Level}
	if opts.Text {
		return slog.NewTextHandler(out, ho)
	}
	return slog.NewJSONHandler(out, ho)
}
