// Package logging provides the command line slog handler: one line per
// record with a colored level token, and an optional tee to a log file.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
)

const timeFormat = "15:04:05.000"

// HandlerOptions configure a Handler
type HandlerOptions struct {
	Level   slog.Leveler // Minimum level; defaults to Info
	NoColor bool         // Never emit ANSI sequences
}

// Handler writes records as "HH:MM:SS.mmm LEVEL message key=value ..."
type Handler struct {
	mu     *sync.Mutex
	out    *termenv.Output
	level  slog.Leveler
	attrs  string // Preformatted attributes from WithAttrs
	prefix string // Group prefix for subsequent keys
}

// NewHandler creates a handler writing to w. Colors follow the terminal
// profile of w and are dropped when w is not a terminal.
func NewHandler(w io.Writer, opts *HandlerOptions) *Handler {
	if opts == nil {
		opts = &HandlerOptions{}
	}
	var out *termenv.Output
	if opts.NoColor {
		out = termenv.NewOutput(w, termenv.WithProfile(termenv.Ascii))
	} else {
		out = termenv.NewOutput(w)
	}
	level := opts.Level
	if level == nil {
		level = slog.LevelInfo
	}
	return &Handler{mu: &sync.Mutex{}, out: out, level: level}
}

// Enabled reports whether records at level are written
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and writes one record
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	var b strings.Builder
	if !r.Time.IsZero() {
		b.WriteString(r.Time.Format(timeFormat))
		b.WriteByte(' ')
	}
	b.WriteString(h.levelToken(r.Level))
	b.WriteByte(' ')
	b.WriteString(r.Message)
	b.WriteString(h.attrs)
	r.Attrs(func(a slog.Attr) bool {
		appendAttr(&b, h.prefix, a)
		return true
	})
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.out, b.String())
	return err
}

// WithAttrs returns a handler that adds attrs to every record
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	var b strings.Builder
	b.WriteString(h.attrs)
	for _, a := range attrs {
		appendAttr(&b, h.prefix, a)
	}
	h2 := *h
	h2.attrs = b.String()
	return &h2
}

// WithGroup returns a handler that qualifies subsequent keys with name
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.prefix = h.prefix + name + "."
	return &h2
}

func (h *Handler) levelToken(level slog.Level) string {
	token := level.String()
	if len(token) < 5 {
		token += strings.Repeat(" ", 5-len(token))
	}
	style := h.out.String(token)
	switch {
	case level >= slog.LevelError:
		style = style.Foreground(termenv.ANSIRed).Bold()
	case level >= slog.LevelWarn:
		style = style.Foreground(termenv.ANSIYellow)
	case level >= slog.LevelInfo:
		style = style.Foreground(termenv.ANSIGreen)
	default:
		style = style.Foreground(termenv.ANSIBrightBlack)
	}
	return style.String()
}

func appendAttr(b *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}
	if a.Value.Kind() == slog.KindGroup {
		group := prefix
		if a.Key != "" {
			group += a.Key + "."
		}
		for _, ga := range a.Value.Group() {
			appendAttr(b, group, ga)
		}
		return
	}

	b.WriteByte(' ')
	b.WriteString(prefix)
	b.WriteString(a.Key)
	b.WriteByte('=')
	b.WriteString(formatValue(a.Value))
}

func formatValue(v slog.Value) string {
	switch v.Kind() {
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339)
	}
	s := v.String()
	if s == "" || strings.ContainsAny(s, " \t\n\"=") {
		return strconv.Quote(s)
	}
	return s
}
