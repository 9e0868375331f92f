package logging

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
)

// Options configure Setup
type Options struct {
	Level   slog.Level
	NoColor bool
	LogFile string    // Optional; records are also appended here without color
	Stderr  io.Writer // Console destination; defaults to os.Stderr
}

// Setup builds the process logger, installs it as the slog default and
// returns it with a function that closes the log file.
func Setup(opts Options) (*slog.Logger, func() error, error) {
	console := opts.Stderr
	if console == nil {
		console = os.Stderr
	}

	handlers := []slog.Handler{
		NewHandler(console, &HandlerOptions{Level: opts.Level, NoColor: opts.NoColor}),
	}
	closer := func() error { return nil }

	if opts.LogFile != "" {
		path, err := homedir.Expand(opts.LogFile)
		if err != nil {
			return nil, nil, fmt.Errorf("expanding log file path: %w", err)
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		handlers = append(handlers, NewHandler(f, &HandlerOptions{Level: opts.Level, NoColor: true}))
		closer = f.Close
	}

	var handler slog.Handler = handlers[0]
	if len(handlers) > 1 {
		handler = teeHandler(handlers)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger, closer, nil
}

// teeHandler sends each record to every handler that accepts its level
type teeHandler []slog.Handler

func (t teeHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, h := range t {
		if h.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (t teeHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, h := range t {
		if h.Enabled(ctx, r.Level) {
			errs = append(errs, h.Handle(ctx, r.Clone()))
		}
	}
	return errors.Join(errs...)
}

func (t teeHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithAttrs(attrs)
	}
	return out
}

func (t teeHandler) WithGroup(name string) slog.Handler {
	out := make(teeHandler, len(t))
	for i, h := range t {
		out[i] = h.WithGroup(name)
	}
	return out
}
