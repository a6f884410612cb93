package stationprefs

import (
	"io"
	"log/slog"
	"os"
)

// LogLevel mirrors the slog levels.
type LogLevel int

const (
	LogLevelDebug LogLevel = LogLevel(slog.LevelDebug)
	LogLevelInfo  LogLevel = LogLevel(slog.LevelInfo)
	LogLevelWarn  LogLevel = LogLevel(slog.LevelWarn)
	LogLevelError LogLevel = LogLevel(slog.LevelError)
)

// LevelLogger is a Logger whose level can be changed at runtime.
type LevelLogger interface {
	Logger
	SetLevel(level LogLevel)
}

type levelLogger struct {
	*slog.Logger
	level *slog.LevelVar
}

// NewDefaultLogger is the Store's logger when WithLogger is not given: JSON on
// stderr at Info level.
func NewDefaultLogger() LevelLogger {
	return NewLogger(os.Stderr, LogLevelInfo)
}

// NewLogger writes JSON records at or above level to w.
func NewLogger(w io.Writer, level LogLevel) LevelLogger {
	lv := new(slog.LevelVar)
	lv.Set(slog.Level(level))
	return &levelLogger{
		Logger: slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: lv})),
		level:  lv,
	}
}

func (l *levelLogger) SetLevel(level LogLevel) {
	l.level.Set(slog.Level(level))
}
