package cli

import (
	"fmt"
	"io"
	"log"
	"os"
)

// logger writes verbosity-gated lines to a file (or stderr when no path
// is given). The teacher repo has no logging dependency of its own —
// errors are plain fmt.Errorf strings surfaced to the GUI — so this
// follows the same minimal style rather than inventing a structured
// logging dependency nothing else in the pack wires in.
type logger struct {
	level int
	out   *log.Logger
	file  io.Closer
}

func newLogger(path string, level int) *logger {
	if path == "" {
		return &logger{level: level, out: log.New(os.Stderr, "", log.LstdFlags)}
	}
	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "guillocut: cannot open log file %s: %v, falling back to stderr\n", path, err)
		return &logger{level: level, out: log.New(os.Stderr, "", log.LstdFlags)}
	}
	return &logger{level: level, out: log.New(f, "", log.LstdFlags), file: f}
}

func (l *logger) Infof(format string, args ...any) {
	if l.level >= 1 {
		l.out.Printf(format, args...)
	}
}

func (l *logger) Debugf(format string, args ...any) {
	if l.level >= 2 {
		l.out.Printf(format, args...)
	}
}

func (l *logger) Close() {
	if l.file != nil {
		l.file.Close()
	}
}
