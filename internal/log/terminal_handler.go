package log

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const (
	ansiReset  = "\033[0m"
	ansiDim    = "\033[2m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiCyan   = "\033[36m"
)

// TerminalHandler renders records as single coloured lines for humans
// watching a terminal:
//
//	14:03:21.532 INFO  search completed query="נר חנוכה" results=7
//
// Log shippers get slog's stock JSON handler instead; this one trades
// machine-readability for scannability.
type TerminalHandler struct {
	writer io.Writer
	level  slog.Leveler
	attrs  []slog.Attr
	prefix string // dotted group path, "" at top level
	mu     *sync.Mutex
}

func newTerminalHandler(w io.Writer, opts *slog.HandlerOptions) *TerminalHandler {
	h := &TerminalHandler{
		writer: w,
		level:  slog.LevelInfo,
		mu:     &sync.Mutex{},
	}
	if opts != nil && opts.Level != nil {
		h.level = opts.Level
	}
	return h
}

// Enabled reports whether records at the given level are rendered.
func (h *TerminalHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle renders one record and writes it as a single line.
func (h *TerminalHandler) Handle(_ context.Context, r slog.Record) error {
	var line bytes.Buffer
	line.Grow(256)

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	line.WriteString(ansiDim)
	line.WriteString(ts.Format("15:04:05.000"))
	line.WriteString(ansiReset)
	line.WriteByte(' ')

	line.WriteString(levelColor(r.Level))
	line.WriteString(levelTag(r.Level))
	line.WriteString(ansiReset)
	line.WriteByte(' ')

	line.WriteString(r.Message)

	// Attrs bound via With were key-qualified when added, so they render
	// without a prefix; record attrs pick up the currently open groups.
	for _, a := range h.attrs {
		h.writeAttr(&line, a, "")
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&line, a, h.prefix)
		return true
	})

	line.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.writer.Write(line.Bytes())
	return err
}

// WithAttrs returns a handler that additionally renders attrs on every
// record. Keys are qualified with the open group path at bind time.
func (h *TerminalHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	merged := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	merged = append(merged, h.attrs...)
	for _, a := range attrs {
		if h.prefix != "" {
			a.Key = joinPrefix(h.prefix, a.Key)
		}
		merged = append(merged, a)
	}
	clone.attrs = merged
	return &clone
}

// WithGroup returns a handler that prefixes subsequent attribute keys with
// name.
func (h *TerminalHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.prefix = joinPrefix(h.prefix, name)
	return &clone
}

func (h *TerminalHandler) writeAttr(buf *bytes.Buffer, a slog.Attr, prefix string) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Value.Kind() == slog.KindGroup {
		nested := prefix
		if a.Key != "" {
			nested = joinPrefix(prefix, a.Key)
		}
		for _, ga := range a.Value.Group() {
			h.writeAttr(buf, ga, nested)
		}
		return
	}

	key := a.Key
	if prefix != "" {
		key = joinPrefix(prefix, key)
	}

	keyColor := ansiDim
	if key == "error" || strings.HasSuffix(key, ".error") {
		keyColor = ansiRed
	}

	buf.WriteByte(' ')
	buf.WriteString(keyColor)
	buf.WriteString(key)
	buf.WriteByte('=')
	buf.WriteString(ansiReset)
	buf.WriteString(renderValue(a.Value))
}

func joinPrefix(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}

// levelTag returns a fixed-width level label so messages line up.
func levelTag(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "DEBUG"
	case level < slog.LevelWarn:
		return "INFO "
	case level < slog.LevelError:
		return "WARN "
	default:
		return "ERROR"
	}
}

func levelColor(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return ansiCyan
	case level < slog.LevelWarn:
		return ansiGreen
	case level < slog.LevelError:
		return ansiYellow
	default:
		return ansiRed
	}
}

func renderValue(v slog.Value) string {
	s := v.String()
	if v.Kind() == slog.KindString && strings.ContainsAny(s, " \t\n=\"\\") {
		return strconv.Quote(s)
	}
	return s
}
