package utils

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// NewLogger builds a logger for the given level and format ("console" or "json").
func NewLogger(level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}

	var zl zerolog.Logger
	if strings.EqualFold(format, "json") {
		zl = zerolog.New(os.Stderr)
	} else {
		zl = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"})
	}
	return zl.Level(lvl).With().Timestamp().Logger()
}
