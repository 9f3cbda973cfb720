package log

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	charmlog "github.com/charmbracelet/log"
)

const (
	JSONFormat   = "json"
	TextFormat   = "text"
	LogfmtFormat = "logfmt"
)

var (
	ErrInvalidFormat = errors.New("invalid log format")
	ErrInvalidLevel  = errors.New("invalid log level")
)

// CreateHandler creates a [slog.Handler] writing to w, using the provided
// level and format strings.
//
// The text and logfmt formats are rendered by [charmlog.Logger]; json is
// rendered by [slog.JSONHandler].
func CreateHandler(w io.Writer, logLevel, logFormat string) (slog.Handler, error) {
	level, err := GetLevel(logLevel)
	if err != nil {
		return nil, err
	}

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level}), nil
	case TextFormat, "":
		return newCharmLogger(w, level, charmlog.TextFormatter), nil
	case LogfmtFormat:
		return newCharmLogger(w, level, charmlog.LogfmtFormatter), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrInvalidFormat, logFormat)
}

// GetLevel parses a level string. Levels unknown to [slog] are mapped to the
// closest match.
func GetLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "panic", "fatal", "error":
		return slog.LevelError, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "info":
		return slog.LevelInfo, nil
	case "debug", "trace":
		return slog.LevelDebug, nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, level)
}

func newCharmLogger(w io.Writer, level slog.Level, f charmlog.Formatter) *charmlog.Logger {
	return charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmlog.Level(level),
		Formatter:       f,
		ReportTimestamp: true,
	})
}
