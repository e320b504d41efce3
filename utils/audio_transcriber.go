package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	DefaultTranscriptionURL = "https://api.openai.com/v1/audio/transcriptions"

	// MaxAudioFileSize is the largest upload the endpoint accepts.
	MaxAudioFileSize int64 = 25_000_000
)

// TranscriptionClient uploads audio to a speech-to-text endpoint.
// It is safe for concurrent use; each call is independent.
type TranscriptionClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
	extractor  AudioExtractor
	logger     zerolog.Logger
}

type TranscriptionClientOption func(*TranscriptionClient)

func WithEndpoint(url string) TranscriptionClientOption {
	return func(c *TranscriptionClient) { c.endpoint = url }
}

func WithHTTPClient(hc *http.Client) TranscriptionClientOption {
	return func(c *TranscriptionClient) { c.httpClient = hc }
}

func WithAudioExtractor(e AudioExtractor) TranscriptionClientOption {
	return func(c *TranscriptionClient) { c.extractor = e }
}

func WithLogger(l zerolog.Logger) TranscriptionClientOption {
	return func(c *TranscriptionClient) { c.logger = l }
}

// NewTranscriptionClient returns a client bound to apiKey for its lifetime.
func NewTranscriptionClient(apiKey string, opts ...TranscriptionClientOption) (*TranscriptionClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, NewInvalidAPIKeyError()
	}
	c := &TranscriptionClient{
		apiKey:     apiKey,
		endpoint:   DefaultTranscriptionURL,
		httpClient: &http.Client{},
		logger:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	if c.extractor == nil {
		c.extractor = FFmpegAudioExtractor{Logger: c.logger}
	}
	return c, nil
}

// TranscribeWithCallback transcribes audioFile in the background and calls
// onComplete exactly once with the transcript or an *Error.
func (c *TranscriptionClient) TranscribeWithCallback(ctx context.Context, audioFile string, opts TranscriptionOptions, onComplete func(string, error)) {
	go func() {
		onComplete(c.transcribe(ctx, audioFile, opts))
	}()
}

// Transcribe is the direct form of TranscribeWithCallback. Once ctx is done
// it stops waiting and returns ctx.Err() (context.Canceled or
// context.DeadlineExceeded), which is not an *Error. If the aborted upload
// reports back first, the *Error it returns wraps the same context error, so
// callers should match cancellation with errors.Is.
func (c *TranscriptionClient) Transcribe(ctx context.Context, audioFile string, opts TranscriptionOptions) (string, error) {
	return awaitCompletion(ctx, func(complete func(string, error)) {
		c.TranscribeWithCallback(ctx, audioFile, opts, complete)
	})
}

// TranscribeVideoWithCallback extracts the audio of videoFile, transcribes
// it and removes the extracted file, then calls onComplete exactly once.
func (c *TranscriptionClient) TranscribeVideoWithCallback(ctx context.Context, videoFile string, opts TranscriptionOptions, onComplete func(string, error)) {
	go func() {
		onComplete(c.transcribeVideo(ctx, videoFile, opts, nil))
	}()
}

// TranscribeVideo is the direct form of TranscribeVideoWithCallback. Like
// Transcribe, it returns ctx.Err() when ctx is done first.
func (c *TranscriptionClient) TranscribeVideo(ctx context.Context, videoFile string, opts TranscriptionOptions) (string, error) {
	return awaitCompletion(ctx, func(complete func(string, error)) {
		c.TranscribeVideoWithCallback(ctx, videoFile, opts, complete)
	})
}

// StartVideoTranscription starts TranscribeVideo and returns a handle whose
// status can be observed while the call is in flight.
func (c *TranscriptionClient) StartVideoTranscription(ctx context.Context, videoFile string, opts TranscriptionOptions) *Job {
	job := newJob()
	go func() {
		job.finish(c.transcribeVideo(ctx, videoFile, opts, job.setStatus))
	}()
	return job
}

func (c *TranscriptionClient) transcribeVideo(ctx context.Context, videoFile string, opts TranscriptionOptions, onStatus func(JobStatus)) (string, error) {
	if onStatus == nil {
		onStatus = func(JobStatus) {}
	}

	onStatus(StatusExtracting)
	audioFile, err := c.extractor.ExtractAudio(ctx, videoFile)
	if err != nil {
		if KindOf(err) != KindAudioExtractionFailed {
			err = NewAudioExtractionError(err)
		}
		return "", err
	}
	defer func() {
		if err := os.Remove(audioFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			c.logger.Warn().Err(err).Str("audio", audioFile).Msg("failed to remove extracted audio")
		}
	}()

	onStatus(StatusTranscribing)
	return c.transcribe(ctx, audioFile, opts)
}

func (c *TranscriptionClient) transcribe(ctx context.Context, audioFile string, opts TranscriptionOptions) (string, error) {
	info, err := os.Stat(audioFile)
	if err != nil {
		return "", NewAudioExtractionError(fmt.Errorf("failed to stat audio file: %w", err))
	}
	if info.Size() > MaxAudioFileSize {
		return "", NewFileTooLargeError(info.Size(), MaxAudioFileSize)
	}

	data, err := os.ReadFile(audioFile)
	if err != nil {
		return "", NewAudioExtractionError(fmt.Errorf("failed to read audio file: %w", err))
	}
	payload := AudioPayload{Data: data, Extension: strings.TrimPrefix(filepath.Ext(audioFile), ".")}

	if opts.ResponseFormat == "" {
		opts.ResponseFormat = FormatJSON
	}
	boundary := newBoundary()
	body, err := BuildMultipartBody(payload, opts, boundary)
	if err != nil {
		return "", NewInvalidResponseError(err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", NewNetworkError(err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "multipart/form-data; boundary="+boundary)

	log := c.logger.With().Str("audio", audioFile).Str("format", string(opts.ResponseFormat)).Logger()
	log.Debug().Int64("bytes", info.Size()).Msg("uploading audio")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", NewNetworkError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// A truncated error body still reports the status; the message is best effort.
		errBody, readErr := io.ReadAll(resp.Body)
		message := ""
		if readErr == nil {
			message = errorMessage(errBody)
		}
		log.Debug().Int("status", resp.StatusCode).Str("message", message).Msg("transcription rejected")
		return "", NewServerError(resp.StatusCode, message)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", NewNetworkError(fmt.Errorf("failed to read response body: %w", err))
	}

	if opts.ResponseFormat == FormatText {
		return string(respBody), nil
	}
	if len(bytes.TrimSpace(respBody)) == 0 {
		return "", NewInvalidResponseError(errors.New("empty response body"))
	}

	var result struct {
		Text *string `json:"text"`
	}
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", NewDecodingError(err)
	}
	if result.Text == nil {
		return "", NewDecodingError(errors.New(`missing "text" field`))
	}
	log.Debug().Int("chars", len(*result.Text)).Msg("transcription received")
	return *result.Text, nil
}

// errorMessage extracts error.message from an API error envelope, or "".
func errorMessage(body []byte) string {
	var envelope openai.ErrorResponse
	if err := json.Unmarshal(body, &envelope); err != nil || envelope.Error == nil {
		return ""
	}
	return envelope.Error.Message
}
