package logplus_test

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tactlabs/logplus"
)

// linePattern captures the severity token of an emitted line.
var linePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} (\w+)  \[`)

// newBufferLogger returns a logger writing into a private buffer.
func newBufferLogger(t *testing.T, opts ...logplus.Option) (*logplus.Logger, *bytes.Buffer) {
	t.Helper()

	buf := &bytes.Buffer{}
	opts = append(opts, logplus.WithWriter(buf))
	logger, err := logplus.GetLoggerWith(opts...)
	require.NoError(t, err)
	return logger, buf
}

func TestInfoEmitsPayloadVerbatim(t *testing.T) {
	logger, buf := newBufferLogger(t)

	logger.Info("message test")

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1, "exactly one line per call")
	assert.Contains(t, lines[0], "message test")

	m := linePattern.FindStringSubmatch(lines[0])
	require.NotNil(t, m, "line %q does not match the expected shape", lines[0])
	assert.Equal(t, "info", m[1])
}

func TestSeverityTokens(t *testing.T) {
	testCases := []struct {
		token string
		log   func(l *logplus.Logger, payload any)
	}{
		{token: "debug", log: func(l *logplus.Logger, p any) { l.Debug(p) }},
		{token: "info", log: func(l *logplus.Logger, p any) { l.Info(p) }},
		{token: "warning", log: func(l *logplus.Logger, p any) { l.Warning(p) }},
		{token: "error", log: func(l *logplus.Logger, p any) { l.Error(p) }},
	}

	for _, tc := range testCases {
		t.Run(tc.token, func(t *testing.T) {
			logger, buf := newBufferLogger(t)

			tc.log(logger, "token check")

			m := linePattern.FindStringSubmatch(buf.String())
			require.NotNil(t, m, "line %q does not match the expected shape", buf.String())
			assert.Equal(t, tc.token, m[1], "severity token must be exactly %q", tc.token)
		})
	}
}

// TestCallerLocation asserts that the emitted file and line are those of the
// statement invoking the severity method, not of any internal frame.
func TestCallerLocation(t *testing.T) {
	logger, buf := newBufferLogger(t)

	_, file, line, ok := runtime.Caller(0)
	logger.Info("message test") // must report this exact line
	require.True(t, ok)

	got := buf.String()
	assert.Contains(t, got, fmt.Sprintf("[%s:%d][", file, line+1))

	script := strings.TrimSuffix(filepath.Base(file), ".go")
	assert.Contains(t, got, fmt.Sprintf("][%s] ", script))
}

// TestFullLineShape pins the complete line format, timestamp through payload.
func TestFullLineShape(t *testing.T) {
	logger, buf := newBufferLogger(t)

	logger.Info("message test")

	shape := regexp.MustCompile(
		`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2} info  \[.+/logplus_test\.go:\d+\]\[logplus_test\] message test\n$`,
	)
	assert.Regexp(t, shape, buf.String())
}

func TestStructuredPayloadRendering(t *testing.T) {
	logger, buf := newBufferLogger(t)

	logger.Info(logplus.Fields{
		logplus.F("result", 1),
		logplus.F("a", "two"),
		logplus.F("b", logplus.Fields{logplus.F("one", "two")}),
	})

	assert.True(t,
		strings.HasSuffix(buf.String(), "] {'result': 1, 'a': 'two', 'b': {'one': 'two'}}\n"),
		"unexpected payload rendering: %s", buf.String())
}

func TestLevelFiltering(t *testing.T) {
	logger, buf := newBufferLogger(t, logplus.WithLevel("error"))

	logger.Debug("suppressed")
	logger.Info("suppressed")
	logger.Warning("suppressed")
	logger.Error("emitted")

	out := buf.String()
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "emitted")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

// TestIndependentHandles verifies that two factory calls yield handles whose
// output for the same message differs only in timestamp and line number.
func TestIndependentHandles(t *testing.T) {
	first, firstBuf := newBufferLogger(t)
	second, secondBuf := newBufferLogger(t)

	first.Info("same message")
	second.Info("same message")

	normalize := func(s string) string {
		// strip the 19-character timestamp, then the caller line number
		s = s[len("2006-01-02 15:04:05"):]
		return regexp.MustCompile(`:\d+\]`).ReplaceAllString(s, ":N]")
	}
	assert.Equal(t, normalize(firstBuf.String()), normalize(secondBuf.String()))
}

func TestWithBoundFieldsOnTextPayload(t *testing.T) {
	logger, buf := newBufferLogger(t)
	worker := logger.With(logplus.Fields{logplus.F("component", "ingest")})

	worker.Info("tick")

	assert.Contains(t, buf.String(), "] tick {'component': 'ingest'}\n")
}

func TestWithBoundFieldsOnStructuredPayload(t *testing.T) {
	logger, buf := newBufferLogger(t)
	worker := logger.With(logplus.Fields{
		logplus.F("component", "ingest"),
		logplus.F("attempt", 1),
	})

	// explicit payload keys win over bound defaults
	worker.Info(logplus.Fields{logplus.F("attempt", 2), logplus.F("ok", true)})

	assert.Contains(t, buf.String(), "] {'attempt': 2, 'ok': true, 'component': 'ingest'}\n")
}

func TestWithDoesNotMutateParent(t *testing.T) {
	logger, buf := newBufferLogger(t)
	_ = logger.With(logplus.Fields{logplus.F("component", "ingest")})

	logger.Info("plain")

	assert.Contains(t, buf.String(), "] plain\n")
	assert.NotContains(t, buf.String(), "component")
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	testCases := []struct {
		name string
		cfg  logplus.Config
	}{
		{name: "unknown level", cfg: logplus.Config{Level: "verbose", Sink: "stdout"}},
		{name: "unknown sink", cfg: logplus.Config{Level: "info", Sink: "syslog"}},
		{name: "zero value", cfg: logplus.Config{}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			logger, err := logplus.New(tc.cfg)
			require.Error(t, err)
			assert.Nil(t, logger)
		})
	}
}

func TestArbitraryPayloadNeverPanics(t *testing.T) {
	logger, buf := newBufferLogger(t)

	assert.NotPanics(t, func() {
		logger.Info(42)
		logger.Info([]string{"a", "b"})
		logger.Info(struct{ N int }{N: 7})
	})
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "] 42\n")
}

func TestConcurrentLogging(t *testing.T) {
	logger, buf := newBufferLogger(t)

	const goroutines = 16
	const perGoroutine = 25

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				logger.Info("concurrent line")
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, goroutines*perGoroutine, strings.Count(buf.String(), "\n"))
}
