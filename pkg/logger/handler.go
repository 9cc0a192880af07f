package logger

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
)

// TimeFormat is the timestamp layout of every line.
const TimeFormat = "15:04:05.000"

// LineHandler is a slog.Handler writing one "time LEVEL msg key=value" line
// per record. Attributes added with WithAttrs are rendered once and reused.
type LineHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Level
	prefix string // dotted group path, with trailing dot
	static string // pre-rendered WithAttrs attributes
}

// NewLineHandler creates a handler writing records at or above level to w.
func NewLineHandler(w io.Writer, level Level) *LineHandler {
	return &LineHandler{w: w, mu: &sync.Mutex{}, level: level.ToSlogLevel()}
}

// Enabled implements slog.Handler.
func (h *LineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler.
func (h *LineHandler) Handle(_ context.Context, r slog.Record) error {
	var sb strings.Builder

	if !r.Time.IsZero() {
		sb.WriteString(r.Time.Format(TimeFormat))
		sb.WriteByte(' ')
	}

	sb.WriteString(r.Level.String())
	sb.WriteByte(' ')
	sb.WriteString(r.Message)
	sb.WriteString(h.static)

	r.Attrs(func(a slog.Attr) bool {
		writeAttr(&sb, h.prefix, a)

		return true
	})

	sb.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := io.WriteString(h.w, sb.String())

	return err
}

// WithAttrs implements slog.Handler.
func (h *LineHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}

	var sb strings.Builder

	sb.WriteString(h.static)

	for _, a := range attrs {
		writeAttr(&sb, h.prefix, a)
	}

	clone := *h
	clone.static = sb.String()

	return &clone
}

// WithGroup implements slog.Handler.
func (h *LineHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.prefix = h.prefix + name + "."

	return &clone
}

func writeAttr(sb *strings.Builder, prefix string, a slog.Attr) {
	a.Value = a.Value.Resolve()

	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		if a.Key != "" {
			prefix += a.Key + "."
		}

		for _, ga := range a.Value.Group() {
			writeAttr(sb, prefix, ga)
		}

		return
	}

	sb.WriteByte(' ')
	sb.WriteString(prefix)
	sb.WriteString(a.Key)
	sb.WriteByte('=')

	val := a.Value.String()
	if val == "" || strings.ContainsAny(val, " \t\r\n\"=") {
		val = strconv.Quote(val)
	}

	sb.WriteString(val)
}
