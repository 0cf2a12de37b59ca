// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup()                          // level from LOG_LEVEL env
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level override
//
// Environment variables:
//
//	LOG_LEVEL: debug, info, warn, error (default: info)
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
)

// Setup configures colored logging at the level specified by LOG_LEVEL env var
// (default: INFO).
func Setup() {
	SetupWithLevel(LevelFromEnv())
}

// SetupWithLevel configures colored logging on stderr at the given level.
// Colors are disabled when stderr is not a terminal.
func SetupWithLevel(level slog.Level) {
	slog.SetDefault(New(os.Stderr, level, !isatty.IsTerminal(os.Stderr.Fd())))
}

// New creates a tint logger writing to w.
func New(w io.Writer, level slog.Level, noColor bool) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		NoColor:    noColor,
	}))
}

// LevelFromEnv parses LOG_LEVEL.
func LevelFromEnv() slog.Level {
	return ParseLevel(os.Getenv("LOG_LEVEL"))
}

// ParseLevel maps debug, warn and error to their slog levels; anything else
// is info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// Printf adapts a slog.Logger to printf-style Debugf/Infof/Warnf/Errorf
// methods. A nil L uses slog.Default().
type Printf struct {
	L *slog.Logger
}

func (p Printf) logger() *slog.Logger {
	if p.L == nil {
		return slog.Default()
	}
	return p.L
}

func (p Printf) Debugf(format string, args ...any) {
	p.logger().Debug(fmt.Sprintf(format, args...))
}

func (p Printf) Infof(format string, args ...any) {
	p.logger().Info(fmt.Sprintf(format, args...))
}

func (p Printf) Warnf(format string, args ...any) {
	p.logger().Warn(fmt.Sprintf(format, args...))
}

func (p Printf) Errorf(format string, args ...any) {
	p.logger().Error(fmt.Sprintf(format, args...))
}
