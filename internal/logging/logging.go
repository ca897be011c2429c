// Package logging builds the slog logger used by the lead submitter.
package logging

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

const FileName = "pipedrive.log"

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New appends to dir/pipedrive.log when dir is an existing writable
// directory and logs to stdout otherwise. The returned closer releases the
// log file, if one was opened.
func New(dir string) (*slog.Logger, io.Closer) {
	w, closer := openSink(dir)
	return NewWithWriter(w), closer
}

func NewWithWriter(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

func openSink(dir string) (io.Writer, io.Closer) {
	if dir == "" {
		return os.Stdout, nopCloser{}
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return os.Stdout, nopCloser{}
	}
	f, err := os.OpenFile(filepath.Join(dir, FileName), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return os.Stdout, nopCloser{}
	}
	return f, f
}
