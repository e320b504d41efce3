package utils

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorKindMatching(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("upload: %w", NewNetworkError(cause))

	if !errors.Is(err, ErrNetwork) {
		t.Error("Expected errors.Is to match ErrNetwork")
	}
	if errors.Is(err, ErrServer) {
		t.Error("Did not expect errors.Is to match ErrServer")
	}
	if !errors.Is(err, cause) {
		t.Error("Expected cause to be reachable")
	}
	if KindOf(err) != KindNetwork {
		t.Errorf("Expected KindNetwork, got %s", KindOf(err))
	}
	if KindOf(cause) != KindUnknown {
		t.Errorf("Expected KindUnknown for plain error, got %s", KindOf(cause))
	}
}

func TestErrorMessages(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{NewFileTooLargeError(26, 25), "audio file too large: 26 bytes (max 25)"},
		{NewServerError(429, "rate limited"), "server error (status 429): rate limited"},
		{NewServerError(500, ""), "server error (status 500)"},
		{NewDecodingError(errors.New("bad")), "decoding error: bad"},
		{NewInvalidAPIKeyError(), "invalid API key"},
	}
	for _, tt := range tests {
		if got := tt.err.Error(); got != tt.want {
			t.Errorf("Expected %q, got %q", tt.want, got)
		}
	}
}
