package utils

import (
	"testing"

	"github.com/rs/zerolog"
)

func TestNewLoggerLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"debug": zerolog.DebugLevel,
		"WARN":  zerolog.WarnLevel,
		"":      zerolog.InfoLevel,
		"bogus": zerolog.InfoLevel,
	}
	for level, want := range tests {
		if got := NewLogger(level, "json").GetLevel(); got != want {
			t.Errorf("NewLogger(%q) level = %s, want %s", level, got, want)
		}
	}
}
