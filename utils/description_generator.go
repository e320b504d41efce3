package utils

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

// maxPromptTranscriptLength is the transcript size above which the
// transcript is summarized before being sent for descriptions.
const maxPromptTranscriptLength = 12000

type RealDescriptionGenerator struct {
	client     ChatCompleter
	summarizer *TextSummarizer
	model      string
	creator    string
	logger     zerolog.Logger
}

// NewRealDescriptionGenerator writes descriptions from the perspective of
// creator. An empty model uses GPT-4o.
func NewRealDescriptionGenerator(client ChatCompleter, model, creator string, logger zerolog.Logger) *RealDescriptionGenerator {
	if model == "" {
		model = openai.GPT4o
	}
	return &RealDescriptionGenerator{
		client:     client,
		summarizer: NewTextSummarizer(client, model, logger),
		model:      model,
		creator:    creator,
		logger:     logger,
	}
}

// GenerateDescriptions asks for attempts independent descriptions of the video.
func (g *RealDescriptionGenerator) GenerateDescriptions(ctx context.Context, transcription string, filename string, attempts int) ([]string, error) {
	if attempts < 1 {
		return nil, fmt.Errorf("attempts must be at least 1, got %d", attempts)
	}
	if len(transcription) > maxPromptTranscriptLength {
		summary, err := g.summarizer.SummarizeText(ctx, transcription, maxPromptTranscriptLength)
		if err != nil {
			return nil, fmt.Errorf("failed to summarize transcription: %w", err)
		}
		transcription = summary
	}

	language := languageOrDefault(transcription)
	systemPrompt := fmt.Sprintf("You are a helpful assistant that generates clear and concise descriptions for videos in %s. Ensure the description is in the same language as the transcription. Use the filename to infer additional context about the video's content or theme, as it may contain relevant keywords or information not present in the transcription.", language)
	if g.creator != "" {
		systemPrompt += fmt.Sprintf(" Write the description from the perspective of the creator (%s) and correct any misrecognitions of '%s'.", g.creator, g.creator)
	}

	descriptions := make([]string, 0, attempts)
	for i := 0; i < attempts; i++ {
		req := openai.ChatCompletionRequest{
			Model: g.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: systemPrompt,
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: fmt.Sprintf("Based on the following transcription and filename, generate a clear and concise description for the video.\n\nFilename: %s\n\nTranscription:\n%s", filename, transcription),
				},
			},
		}

		resp, err := g.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return descriptions, fmt.Errorf("error generating description: %w", err)
		}
		content, err := firstChoice(resp)
		if err != nil {
			return descriptions, fmt.Errorf("error generating description: %w", err)
		}
		descriptions = append(descriptions, content)
	}

	g.logger.Debug().Str("file", filename).Int("count", len(descriptions)).Str("language", language).Msg("descriptions generated")
	return descriptions, nil
}

func firstChoice(resp openai.ChatCompletionResponse) (string, error) {
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
