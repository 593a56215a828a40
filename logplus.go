package logplus

import (
	"context"
	"log/slog"
	"runtime"
	"time"
)

// Logger is the handle returned by the factory functions. It exposes one
// method per severity, each accepting a single payload: a plain string, a
// Fields value, or any other value rendered through its default textual form.
//
// A Logger is immutable after construction and safe for concurrent use.
type Logger struct {
	handler slog.Handler
	bound   Fields
}

// New constructs an independent Logger from cfg. Invalid configuration is
// reported here, before any logging traffic flows; log calls themselves
// never return errors.
func New(cfg Config) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Logger{
		handler: newLineHandler(buildWriter(cfg), cfg.slogLevel(), cfg.UTC),
	}, nil
}

// GetLogger returns a fresh Logger with the process defaults: every level
// enabled, local timestamps, lines to stdout. Each call returns an
// independent handle; handles share no state.
func GetLogger() *Logger {
	// DefaultConfig always validates.
	l, _ := New(DefaultConfig())
	return l
}

// GetLoggerWith returns a fresh Logger with the defaults adjusted by opts.
func GetLoggerWith(opts ...Option) (*Logger, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

// With returns a derived Logger whose emitted payloads include fields as
// defaults. The derived handle shares the parent's sink and level; explicit
// payload keys win collisions with bound keys.
func (l *Logger) With(fields Fields) *Logger {
	return &Logger{
		handler: l.handler,
		bound:   bind(l.bound, fields),
	}
}

// Debug logs payload at debug severity, annotated with the caller's location.
func (l *Logger) Debug(payload any) {
	l.log(context.Background(), slog.LevelDebug, payload, callerPC())
}

// Info logs payload at info severity, annotated with the caller's location.
func (l *Logger) Info(payload any) {
	l.log(context.Background(), slog.LevelInfo, payload, callerPC())
}

// Warning logs payload at warning severity, annotated with the caller's
// location.
func (l *Logger) Warning(payload any) {
	l.log(context.Background(), slog.LevelWarn, payload, callerPC())
}

// Error logs payload at error severity, annotated with the caller's location.
func (l *Logger) Error(payload any) {
	l.log(context.Background(), slog.LevelError, payload, callerPC())
}

// DebugContext is Debug with fields bound into ctx merged into the payload.
func (l *Logger) DebugContext(ctx context.Context, payload any) {
	l.log(ctx, slog.LevelDebug, payload, callerPC())
}

// InfoContext is Info with fields bound into ctx merged into the payload.
func (l *Logger) InfoContext(ctx context.Context, payload any) {
	l.log(ctx, slog.LevelInfo, payload, callerPC())
}

// WarningContext is Warning with fields bound into ctx merged into the
// payload.
func (l *Logger) WarningContext(ctx context.Context, payload any) {
	l.log(ctx, slog.LevelWarn, payload, callerPC())
}

// ErrorContext is Error with fields bound into ctx merged into the payload.
func (l *Logger) ErrorContext(ctx context.Context, payload any) {
	l.log(ctx, slog.LevelError, payload, callerPC())
}

// callerPC captures the program counter of the statement that invoked the
// severity method: three frames up from here (Callers, callerPC, the
// severity method). Returns zero when no caller frame is available.
func callerPC() uintptr {
	var pcs [1]uintptr
	if runtime.Callers(3, pcs[:]) < 1 {
		return 0
	}
	return pcs[0]
}

func (l *Logger) log(ctx context.Context, level slog.Level, payload any, pc uintptr) {
	if !l.handler.Enabled(ctx, level) {
		return
	}
	r := slog.NewRecord(time.Now(), level, l.render(ctx, payload), pc)
	// The handler owns failure handling for the sink write; a logging call
	// never surfaces an error to its caller.
	_ = l.handler.Handle(ctx, r)
}

// render produces the payload text. Bound fields (from With and from ctx)
// act as defaults: a Fields payload absorbs them after its own keys, a text
// payload gets them appended as a rendered trailer.
func (l *Logger) render(ctx context.Context, payload any) string {
	defaults := bind(l.bound, ContextFields(ctx))

	switch t := payload.(type) {
	case Fields:
		return withDefaults(t, defaults).String()
	case string:
		if len(defaults) == 0 {
			return t
		}
		return t + " " + defaults.String()
	default:
		s := safeFormat(payload)
		if len(defaults) == 0 {
			return s
		}
		return s + " " + defaults.String()
	}
}
