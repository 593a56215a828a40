package logplus

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"
)

// timestampLayout is the wall-clock format of every emitted line,
// second resolution.
const timestampLayout = "2006-01-02 15:04:05"

// lineHandler is a slog.Handler that renders each record as a single
// human-readable line:
//
//	2024-01-02 15:04:05 info  [/path/to/caller.go:28][caller] message
//
// The record's PC is resolved to the caller's file, line and script name.
// Note the two spaces after the level token.
type lineHandler struct {
	mu    *sync.Mutex
	w     io.Writer
	level slog.Level
	utc   bool
}

func newLineHandler(w io.Writer, level slog.Level, utc bool) *lineHandler {
	return &lineHandler{
		mu:    &sync.Mutex{},
		w:     w,
		level: level,
		utc:   utc,
	}
}

// Enabled implements the slog.Handler interface.
func (h *lineHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements the slog.Handler interface. It formats the record as one
// line and performs a single write to the sink.
func (h *lineHandler) Handle(_ context.Context, r slog.Record) error {
	file, line, script := resolveCaller(r.PC)

	ts := r.Time
	if ts.IsZero() {
		ts = time.Now()
	}
	if h.utc {
		ts = ts.UTC()
	} else {
		ts = ts.Local()
	}

	var b bytes.Buffer
	b.WriteString(ts.Format(timestampLayout))
	b.WriteByte(' ')
	b.WriteString(levelToken(r.Level))
	b.WriteString("  [")
	b.WriteString(file)
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(line))
	b.WriteString("][")
	b.WriteString(script)
	b.WriteString("] ")
	b.WriteString(r.Message)
	b.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(b.Bytes())
	return err
}

// WithAttrs implements the slog.Handler interface. Bound fields are carried
// by the Logger handle, which owns their ordering, so attrs are ignored here.
func (h *lineHandler) WithAttrs(_ []slog.Attr) slog.Handler {
	h2 := *h
	return &h2
}

// WithGroup implements the slog.Handler interface.
func (h *lineHandler) WithGroup(_ string) slog.Handler {
	h2 := *h
	return &h2
}

// resolveCaller maps a program counter to the originating source location.
// A zero or unresolvable PC degrades to the unknown placeholder rather than
// failing the log call.
func resolveCaller(pc uintptr) (file string, line int, script string) {
	if pc == 0 {
		return "unknown", 0, "unknown"
	}
	frames := runtime.CallersFrames([]uintptr{pc})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "unknown", 0, "unknown"
	}
	return frame.File, frame.Line, scriptName(frame.File)
}

// scriptName is the base name of a source file without its extension,
// e.g. /src/app/worker.go -> worker.
func scriptName(file string) string {
	base := filepath.Base(file)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// levelToken maps a slog level to its lowercase line token. The warning
// level renders as "warning", not slog's "WARN".
func levelToken(level slog.Level) string {
	switch {
	case level < slog.LevelInfo:
		return "debug"
	case level < slog.LevelWarn:
		return "info"
	case level < slog.LevelError:
		return "warning"
	default:
		return "error"
	}
}
