// Copyright 2024 The cadkit Authors.
// Use of this source code is governed by an Apache v2 license
// license that can be found in the LICENSE file.

// Package log is a small leveled logger (NewStdLogger, NewFilter,
// FilterLevel, a Helper with Debugf/Warnf/Errorf). The decoder logs
// through it where a failure is tolerated rather than returned: a
// LAYER record that fails to decode while the style resolver builds
// its layer index.
package log

import (
	"fmt"
	"io"
	"log"
)

// Level is a logging severity.
type Level int

// Severity levels, lowest to highest.
const (
	LevelDebug Level = iota
	LevelWarn
	LevelError
)

// Logger is the minimal sink every helper writes through.
type Logger interface {
	Log(level Level, msg string)
}

// StdLogger writes to an io.Writer via the standard library logger.
type StdLogger struct {
	std *log.Logger
}

// NewStdLogger builds a Logger backed by w.
func NewStdLogger(w io.Writer) *StdLogger {
	return &StdLogger{std: log.New(w, "", log.LstdFlags)}
}

// Log implements Logger.
func (l *StdLogger) Log(level Level, msg string) {
	l.std.Println(levelPrefix(level) + msg)
}

func levelPrefix(level Level) string {
	switch level {
	case LevelDebug:
		return "DEBUG "
	case LevelWarn:
		return "WARN  "
	default:
		return "ERROR "
	}
}

// filter decorates a Logger, dropping messages below a minimum level.
type filter struct {
	next Logger
	min  Level
}

// FilterOption configures NewFilter.
type FilterOption func(*filter)

// FilterLevel sets the minimum level that passes through the filter.
func FilterLevel(min Level) FilterOption {
	return func(f *filter) { f.min = min }
}

// NewFilter wraps next with a minimum-severity gate.
func NewFilter(next Logger, opts ...FilterOption) Logger {
	f := &filter{next: next, min: LevelError}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Log implements Logger.
func (f *filter) Log(level Level, msg string) {
	if level < f.min {
		return
	}
	f.next.Log(level, msg)
}

// Helper adds printf-style convenience methods over a Logger, one per
// level. The decoder's one call site is in style.go.
type Helper struct {
	l Logger
}

// NewHelper wraps l.
func NewHelper(l Logger) *Helper {
	return &Helper{l: l}
}

// Debugf logs at LevelDebug.
func (h *Helper) Debugf(format string, args ...interface{}) {
	h.l.Log(LevelDebug, fmt.Sprintf(format, args...))
}

// Warnf logs at LevelWarn.
func (h *Helper) Warnf(format string, args ...interface{}) {
	h.l.Log(LevelWarn, fmt.Sprintf(format, args...))
}

// Errorf logs at LevelError.
func (h *Helper) Errorf(format string, args ...interface{}) {
	h.l.Log(LevelError, fmt.Sprintf(format, args...))
}
