package utils

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type AudioExtractor interface {
	ExtractAudio(ctx context.Context, videoFile string) (string, error)
}

type VideoTranscriber interface {
	TranscribeVideo(ctx context.Context, videoFile string, opts TranscriptionOptions) (string, error)
}

type DescriptionGenerator interface {
	GenerateDescriptions(ctx context.Context, transcription string, filename string, attempts int) ([]string, error)
}

type DescriptionEvaluator interface {
	EvaluateDescriptions(ctx context.Context, descriptions []string, transcription string, filename string) (int, error)
}

type ThumbnailGenerator interface {
	GenerateThumbnail(ctx context.Context, description string) (string, error)
}

// ChatCompleter is the subset of *openai.Client used for text generation.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ImageCreator is the subset of *openai.Client used for image generation.
type ImageCreator interface {
	CreateImage(ctx context.Context, req openai.ImageRequest) (openai.ImageResponse, error)
}
