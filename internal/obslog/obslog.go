// Package obslog adapts evreactor.Logger onto logiface, backed by stumpy's
// JSON encoder - the same structured-logging stack the teacher module
// depends on, wired here as the production logging backend rather than
// left unused. evreactor itself only needs the tiny Logger interface in
// its own logging.go; this package is where a caller opts into the real
// ecosystem logger instead of the dependency-free TextLogger default.
package obslog

import (
	"io"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"

	"github.com/evreactor/evreactor"
)

// Logger adapts a logiface.Logger[*stumpy.Event] to evreactor.Logger.
type Logger struct {
	l *logiface.Logger[*stumpy.Event]
}

// New builds a Logger writing newline-delimited JSON to w, filtering out
// entries below level.
func New(w io.Writer, level evreactor.LogLevel) *Logger {
	l := stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		logiface.WithLevel[*stumpy.Event](toLogifaceLevel(level)),
	)
	return &Logger{l: l}
}

// Log implements evreactor.Logger.
func (lg *Logger) Log(level evreactor.LogLevel, msg string, fields ...evreactor.Field) {
	b := lg.build(level)
	for _, f := range fields {
		b = b.Field(f.Key, f.Value)
	}
	b.Log(msg)
}

func (lg *Logger) build(level evreactor.LogLevel) *logiface.Builder[*stumpy.Event] {
	switch level {
	case evreactor.LevelDebug:
		return lg.l.Debug()
	case evreactor.LevelWarn:
		return lg.l.Warning()
	case evreactor.LevelError:
		return lg.l.Err()
	default:
		return lg.l.Info()
	}
}

func toLogifaceLevel(level evreactor.LogLevel) logiface.Level {
	switch level {
	case evreactor.LevelDebug:
		return logiface.LevelDebug
	case evreactor.LevelWarn:
		return logiface.LevelWarning
	case evreactor.LevelError:
		return logiface.LevelError
	default:
		return logiface.LevelInformational
	}
}
