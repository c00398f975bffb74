// Package logging wraps a logiface.Logger[*stumpy.Event] with the five
// named levels and name/msg/args call shape of trezor.log, translated onto
// logiface's syslog-style levels and stumpy's JSON event backend.
package logging

import (
	"fmt"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// Level mirrors trezor.log's numeric levels exactly, so callers porting
// threshold constants need no translation.
type Level int

const (
	Debug    Level = 10
	Info     Level = 20
	Warning  Level = 30
	Error    Level = 40
	Critical Level = 50
)

func (l Level) logifaceLevel() logiface.Level {
	switch {
	case l <= Debug:
		return logiface.LevelDebug
	case l <= Info:
		return logiface.LevelInformational
	case l <= Warning:
		return logiface.LevelWarning
	case l <= Error:
		return logiface.LevelError
	default:
		return logiface.LevelCritical
	}
}

// Logger is a thin, name-tagged facade over a logiface.Logger[*stumpy.Event].
type Logger struct {
	base *logiface.Logger[*stumpy.Event]
}

// New constructs a Logger that writes JSON events to stderr via stumpy,
// enabled at threshold and more severe.
func New(threshold Level) *Logger {
	return &Logger{
		base: logiface.New[*stumpy.Event](
			stumpy.L.WithStumpy(),
			logiface.WithLevel[*stumpy.Event](threshold.logifaceLevel()),
		),
	}
}

func (l *Logger) emit(level logiface.Level, name, msg string, args []any) {
	if l == nil || l.base == nil {
		return
	}
	b := l.base.Build(level)
	if b == nil {
		return
	}
	b.Str("name", name)
	if len(args) > 0 {
		b.Logf(msg, args...)
	} else {
		b.Log(msg)
	}
}

func (l *Logger) Debug(name, msg string, args ...any)    { l.emit(logiface.LevelDebug, name, msg, args) }
func (l *Logger) Info(name, msg string, args ...any)     { l.emit(logiface.LevelInformational, name, msg, args) }
func (l *Logger) Warning(name, msg string, args ...any)  { l.emit(logiface.LevelWarning, name, msg, args) }
func (l *Logger) Error(name, msg string, args ...any)    { l.emit(logiface.LevelError, name, msg, args) }
func (l *Logger) Critical(name, msg string, args ...any) { l.emit(logiface.LevelCritical, name, msg, args) }

// Exception logs err at Error level against name, mirroring
// trezor.log.exception's role of reporting an uncaught task failure.
func (l *Logger) Exception(name string, err error) {
	if l == nil || l.base == nil {
		return
	}
	b := l.base.Build(logiface.LevelError)
	if b == nil {
		return
	}
	b.Str("name", name).Err(err).Log(fmt.Sprintf("exception in %s", name))
}
