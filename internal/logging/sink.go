package logging

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileSink is an append-only per-section log destination. Each section run
// opens its own sink and closes it when the section finishes, so concurrent
// sections never share a file handle.
type FileSink struct {
	file    *os.File
	handler slog.Handler
}

// NewFileSink opens (creating if necessary) the log file at path and returns a
// sink whose handler renders in the console format.
func NewFileSink(path string) (*FileSink, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("ensure log directory: %w", err)
		}
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file %s: %w", path, err)
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(slog.LevelInfo)
	return &FileSink{file: file, handler: newPrettyHandler(file, levelVar)}, nil
}

// Handler returns the slog handler writing to the sink.
func (s *FileSink) Handler() slog.Handler {
	return s.handler
}

// Close flushes and closes the underlying file.
func (s *FileSink) Close() error {
	return s.file.Close()
}
