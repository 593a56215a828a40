// Package logplus is a thin convenience layer over log/slog that annotates
// every line with the location of the statement that logged it.
//
// The factory returns a pre-configured handle with one method per severity:
//
//	logger := logplus.GetLogger()
//	logger.Info("service started")
//	logger.Error(logplus.Fields{
//		logplus.F("result", 1),
//		logplus.F("reason", "timeout"),
//	})
//
// Each call emits a single line of the form
//
//	2024-01-02 15:04:05 info  [/src/app/main.go:12][main] service started
//
// with the file, line and script name of the calling statement, a
// second-resolution timestamp and a lowercase severity token. Structured
// payloads use the insertion-ordered Fields type and render with their keys
// in the order they were added.
//
// Handles are independent: repeated factory calls share no state, and a
// handle is safe for concurrent use. Logging calls never panic and never
// return errors; failures such as an unresolvable caller degrade to
// placeholder output instead.
package logplus
