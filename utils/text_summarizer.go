package utils

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	maxChunkSize  = 8000
	maxIterations = 10
)

type TextSummarizer struct {
	client ChatCompleter
	model  string
	logger zerolog.Logger
}

// NewTextSummarizer summarizes with model, or GPT-4o mini when model is empty.
func NewTextSummarizer(client ChatCompleter, model string, logger zerolog.Logger) *TextSummarizer {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &TextSummarizer{client: client, model: model, logger: logger}
}

// SummarizeText shrinks text chunk by chunk until it fits targetLength or
// maxIterations passes have been made.
func (ts *TextSummarizer) SummarizeText(ctx context.Context, text string, targetLength int) (string, error) {
	return ts.summarizeTextRecursive(ctx, text, targetLength, 0)
}

func (ts *TextSummarizer) summarizeTextRecursive(ctx context.Context, text string, targetLength int, iteration int) (string, error) {
	if len(text) <= targetLength || iteration >= maxIterations {
		return text, nil
	}

	ts.logger.Debug().Int("iteration", iteration).Int("length", len(text)).Msg("summarizing")

	chunks := splitTextIntoChunks(text, maxChunkSize)
	summarizedChunks := make([]string, 0, len(chunks))

	for i, chunk := range chunks {
		summary, err := ts.summarizeChunk(ctx, chunk)
		if err != nil {
			return "", fmt.Errorf("error summarizing chunk %d: %w", i, err)
		}
		summarizedChunks = append(summarizedChunks, summary)
	}

	combinedSummary := strings.Join(summarizedChunks, " ")
	ts.logger.Debug().Int("iteration", iteration).Int("length", len(combinedSummary)).Msg("summarized")

	if len(combinedSummary) > targetLength {
		return ts.summarizeTextRecursive(ctx, combinedSummary, targetLength, iteration+1)
	}

	return combinedSummary, nil
}

func (ts *TextSummarizer) summarizeChunk(ctx context.Context, chunk string) (string, error) {
	language := languageOrDefault(chunk)

	req := openai.ChatCompletionRequest{
		Model: ts.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: fmt.Sprintf("You are a helpful assistant that summarizes text concisely while retaining key information. Always respond in %s.", language),
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: fmt.Sprintf("Summarize the following text in %s, maintaining key information and context:\n\n%s", language, chunk),
			},
		},
		MaxTokens: 500,
	}

	resp, err := ts.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error creating chat completion: %w", err)
	}
	return firstChoice(resp)
}

func splitTextIntoChunks(text string, chunkSize int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}
	wordsPerChunk := int(math.Ceil(float64(len(words)) / math.Ceil(float64(len(text))/float64(chunkSize))))
	if wordsPerChunk < 1 {
		wordsPerChunk = 1
	}

	var chunks []string
	for i := 0; i < len(words); i += wordsPerChunk {
		end := min(i+wordsPerChunk, len(words))
		chunks = append(chunks, strings.Join(words[i:end], " "))
	}
	return chunks
}
