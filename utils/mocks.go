package utils

import (
	"context"

	openai "github.com/sashabaranov/go-openai"
)

type MockAudioExtractor struct {
	ExtractAudioFunc func(ctx context.Context, videoFile string) (string, error)
}

func (m *MockAudioExtractor) ExtractAudio(ctx context.Context, videoFile string) (string, error) {
	return m.ExtractAudioFunc(ctx, videoFile)
}

type MockVideoTranscriber struct {
	TranscribeVideoFunc func(ctx context.Context, videoFile string, opts TranscriptionOptions) (string, error)
}

func (m *MockVideoTranscriber) TranscribeVideo(ctx context.Context, videoFile string, opts TranscriptionOptions) (string, error) {
	return m.TranscribeVideoFunc(ctx, videoFile, opts)
}

type MockDescriptionGenerator struct {
	GenerateDescriptionsFunc func(ctx context.Context, transcription string, filename string, attempts int) ([]string, error)
}

func (m *MockDescriptionGenerator) GenerateDescriptions(ctx context.Context, transcription string, filename string, attempts int) ([]string, error) {
	return m.GenerateDescriptionsFunc(ctx, transcription, filename, attempts)
}

type MockDescriptionEvaluator struct {
	EvaluateDescriptionsFunc func(ctx context.Context, descriptions []string, transcription string, filename string) (int, error)
}

func (m *MockDescriptionEvaluator) EvaluateDescriptions(ctx context.Context, descriptions []string, transcription string, filename string) (int, error) {
	return m.EvaluateDescriptionsFunc(ctx, descriptions, transcription, filename)
}

type MockThumbnailGenerator struct {
	GenerateThumbnailFunc func(ctx context.Context, description string) (string, error)
}

func (m *MockThumbnailGenerator) GenerateThumbnail(ctx context.Context, description string) (string, error) {
	return m.GenerateThumbnailFunc(ctx, description)
}

type MockChatCompleter struct {
	CreateChatCompletionFunc func(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

func (m *MockChatCompleter) CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error) {
	return m.CreateChatCompletionFunc(ctx, req)
}

type MockImageCreator struct {
	CreateImageFunc func(ctx context.Context, req openai.ImageRequest) (openai.ImageResponse, error)
}

func (m *MockImageCreator) CreateImage(ctx context.Context, req openai.ImageRequest) (openai.ImageResponse, error) {
	return m.CreateImageFunc(ctx, req)
}
