package utils

import (
	"fmt"
	"sync"

	"github.com/go-playground/validator/v10"
)

// ResponseFormat is the response_format requested from the transcription endpoint.
type ResponseFormat string

const (
	FormatJSON        ResponseFormat = "json"
	FormatText        ResponseFormat = "text"
	FormatSRT         ResponseFormat = "srt"
	FormatVerboseJSON ResponseFormat = "verbose_json"
	FormatVTT         ResponseFormat = "vtt"
)

// TranscriptionOptions are the per-request transcription parameters.
//
// A Temperature of exactly 0 is not sent at all, so the server applies its
// own default. This matches the upstream API's wire contract and cannot be
// used to force a zero temperature.
type TranscriptionOptions struct {
	Language             string         `validate:"omitempty,min=2"`
	Temperature          float32        `validate:"gte=0,lte=1"`
	ResponseFormat       ResponseFormat `validate:"oneof=json text srt verbose_json vtt"`
	TimestampGranularity bool
}

func DefaultTranscriptionOptions() TranscriptionOptions {
	return TranscriptionOptions{ResponseFormat: FormatJSON}
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate checks the temperature range and response format.
func (o TranscriptionOptions) Validate() error {
	if err := getValidator().Struct(o); err != nil {
		return fmt.Errorf("invalid transcription options: %w", err)
	}
	return nil
}
