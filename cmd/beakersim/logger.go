package main

import (
	"fmt"
	"log"
	"strings"
)

// LogLevel represents the logging level.
type LogLevel int

const (
	LogLevelDebug LogLevel = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func parseLogLevel(level string) LogLevel {
	switch strings.ToLower(level) {
	case "debug":
		return LogLevelDebug
	case "info":
		return LogLevelInfo
	case "warn", "warning":
		return LogLevelWarn
	case "error":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

// Logger provides leveled logging for the long-running server command.
type Logger struct {
	level LogLevel
}

func NewLogger(level string) *Logger {
	return &Logger{level: parseLogLevel(level)}
}

func (l *Logger) logf(level LogLevel, tag, format string, v ...any) {
	if level < l.level {
		return
	}
	log.Printf("[%s] %s", tag, fmt.Sprintf(format, v...))
}

func (l *Logger) Debugf(format string, v ...any) { l.logf(LogLevelDebug, "debug", format, v...) }
func (l *Logger) Infof(format string, v ...any)  { l.logf(LogLevelInfo, "info", format, v...) }
func (l *Logger) Warnf(format string, v ...any)  { l.logf(LogLevelWarn, "warn", format, v...) }
func (l *Logger) Errorf(format string, v ...any) { l.logf(LogLevelError, "error", format, v...) }
