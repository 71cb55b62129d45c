// Package logging builds the *log.Logger handed to every component.
package logging

import (
	"io"
	"log"
	"os"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/lowaak/smart-trainer/workout-editor/internal/config"
)

// New returns a logger writing to a rotating file and/or stderr, plus a closer for the file.
// With neither configured the logger discards everything.
func New(cfg config.LogConfig, stderr io.Writer) (*log.Logger, io.Closer) {
	var writers []io.Writer
	var closer io.Closer = nopCloser{}

	if cfg.File != "" {
		file := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		}
		writers = append(writers, file)
		closer = file
	}
	if cfg.Stderr {
		if stderr == nil {
			stderr = os.Stderr
		}
		writers = append(writers, stderr)
	}

	out := io.Discard
	if len(writers) > 0 {
		out = io.MultiWriter(writers...)
	}
	return log.New(out, "", log.LstdFlags|log.Lmicroseconds), closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
