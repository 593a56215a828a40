package logplus

import (
	"io"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"
)

// buildWriter assembles the output sink for a configuration. An explicit
// Writer wins outright; otherwise the console stream is selected, with lines
// fanned out to a size-rotated file when a file path is configured. The file
// handle lifecycle (open, rotate, close) belongs to lumberjack.
func buildWriter(cfg Config) io.Writer {
	if cfg.Writer != nil {
		return cfg.Writer
	}

	var console io.Writer = os.Stdout
	if cfg.Sink == "stderr" {
		console = os.Stderr
	}

	if cfg.File.Path == "" {
		return console
	}

	rotated := &lumberjack.Logger{
		Filename:   cfg.File.Path,
		MaxSize:    cfg.File.MaxSizeMB,
		MaxBackups: cfg.File.MaxBackups,
		MaxAge:     cfg.File.MaxAgeDays,
		Compress:   cfg.File.Compress,
	}
	return io.MultiWriter(console, rotated)
}
