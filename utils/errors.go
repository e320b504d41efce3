package utils

import (
	"errors"
	"fmt"
)

// ErrorKind classifies failures of the transcription pipeline.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindInvalidAPIKey
	KindFileTooLarge
	KindAudioExtractionFailed
	KindInvalidResponse
	KindNetwork
	KindServer
	KindDecoding
)

func (k ErrorKind) String() string {
	switch k {
	case KindInvalidAPIKey:
		return "invalid_api_key"
	case KindFileTooLarge:
		return "file_too_large"
	case KindAudioExtractionFailed:
		return "audio_extraction_failed"
	case KindInvalidResponse:
		return "invalid_response"
	case KindNetwork:
		return "network"
	case KindServer:
		return "server"
	case KindDecoding:
		return "decoding"
	default:
		return "unknown"
	}
}

// Sentinels for errors.Is matching on the kind of an *Error.
var (
	ErrInvalidAPIKey         = &Error{Kind: KindInvalidAPIKey}
	ErrFileTooLarge          = &Error{Kind: KindFileTooLarge}
	ErrAudioExtractionFailed = &Error{Kind: KindAudioExtractionFailed}
	ErrInvalidResponse       = &Error{Kind: KindInvalidResponse}
	ErrNetwork               = &Error{Kind: KindNetwork}
	ErrServer                = &Error{Kind: KindServer}
	ErrDecoding              = &Error{Kind: KindDecoding}
)

// ErrNoAudioStream is wrapped by extraction failures caused by a source
// without any audio track.
var ErrNoAudioStream = errors.New("source has no audio stream")

// Error is the single error type returned by the transcription pipeline.
// Only the fields relevant to Kind are set.
type Error struct {
	Kind ErrorKind

	// FileTooLarge
	Size    int64
	MaxSize int64

	// Server. Message is empty when the response carried no error message.
	StatusCode int
	Message    string

	Err error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindFileTooLarge:
		return fmt.Sprintf("audio file too large: %d bytes (max %d)", e.Size, e.MaxSize)
	case KindServer:
		if e.Message != "" {
			return fmt.Sprintf("server error (status %d): %s", e.StatusCode, e.Message)
		}
		return fmt.Sprintf("server error (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.describe(), e.Err)
	}
	return e.describe()
}

func (e *Error) describe() string {
	switch e.Kind {
	case KindInvalidAPIKey:
		return "invalid API key"
	case KindAudioExtractionFailed:
		return "audio extraction failed"
	case KindInvalidResponse:
		return "invalid response"
	case KindNetwork:
		return "network error"
	case KindDecoding:
		return "decoding error"
	default:
		return "transcription error"
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is an *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

func NewInvalidAPIKeyError() *Error {
	return &Error{Kind: KindInvalidAPIKey}
}

func NewFileTooLargeError(size, maxSize int64) *Error {
	return &Error{Kind: KindFileTooLarge, Size: size, MaxSize: maxSize}
}

func NewAudioExtractionError(err error) *Error {
	return &Error{Kind: KindAudioExtractionFailed, Err: err}
}

func NewInvalidResponseError(err error) *Error {
	return &Error{Kind: KindInvalidResponse, Err: err}
}

func NewNetworkError(err error) *Error {
	return &Error{Kind: KindNetwork, Err: err}
}

func NewServerError(statusCode int, message string) *Error {
	return &Error{Kind: KindServer, StatusCode: statusCode, Message: message}
}

func NewDecodingError(err error) *Error {
	return &Error{Kind: KindDecoding, Err: err}
}
