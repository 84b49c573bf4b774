package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

type Logger struct {
	level Level
	zl    zerolog.Logger
}

// New creates a console logger writing to stderr.
func New(level string) *Logger {
	return NewWithWriter(level, os.Stderr)
}

// NewWithWriter creates a logger writing human readable lines to w.
func NewWithWriter(level string, w io.Writer) *Logger {
	out := zerolog.ConsoleWriter{Out: w, TimeFormat: time.DateTime, NoColor: true}
	lvl := ParseLevel(level)
	l := &Logger{
		level: lvl,
		zl:    zerolog.New(out).Level(lvl.zerolog()).With().Timestamp().Logger(),
	}

	return l
}

func (lv Level) zerolog() zerolog.Level {
	switch lv {
	case DEBUG:
		return zerolog.DebugLevel
	case WARN:
		return zerolog.WarnLevel
	case ERROR:
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

func ParseLevel(level string) Level {
	switch strings.ToLower(level) {
	case "debug":
		return DEBUG
	case "warn", "warning":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// With returns a child logger carrying an extra field on every line.
func (l *Logger) With(key, value string) *Logger {
	return &Logger{
		level: l.level,
		zl:    l.zl.With().Str(key, value).Logger(),
	}
}

func (l *Logger) log(level Level, ev *zerolog.Event, format string, v ...interface{}) {
	if level >= l.level {
		ev.Msg(fmt.Sprintf(format, v...))
	}
}

func (l *Logger) Info(format string, v ...interface{}) {
	l.log(INFO, l.zl.Info(), format, v...)
}

func (l *Logger) Warn(format string, v ...interface{}) {
	l.log(WARN, l.zl.Warn(), format, v...)
}

func (l *Logger) Error(format string, v ...interface{}) {
	l.log(ERROR, l.zl.Error(), format, v...)
}

func (l *Logger) Debug(format string, v ...interface{}) {
	l.log(DEBUG, l.zl.Debug(), format, v...)
}
