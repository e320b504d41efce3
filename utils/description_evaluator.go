package utils

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

const evaluationAttempts = 3

type RealDescriptionEvaluator struct {
	client ChatCompleter
	model  string
}

func NewRealDescriptionEvaluator(client ChatCompleter, model string) *RealDescriptionEvaluator {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &RealDescriptionEvaluator{client: client, model: model}
}

// EvaluateDescriptions returns the 1-based index of the best description.
// The prompt is repeated with a stricter reminder when the answer is not a
// valid index; API errors are returned immediately.
func (e *RealDescriptionEvaluator) EvaluateDescriptions(ctx context.Context, descriptions []string, transcription string, filename string) (int, error) {
	if len(descriptions) == 0 {
		return 0, fmt.Errorf("no descriptions to evaluate")
	}
	if len(descriptions) == 1 {
		return 1, nil
	}

	prompt := fmt.Sprintf(`You are an expert in evaluating video descriptions in %s. Analyze the following descriptions and return the number (1-based index) of the best description based on:

- How well it matches the transcription and filename.
- Style, language consistency, and clarity.
- Prioritize descriptions that are in the same language as the transcription.
- Only return the number, no other text.

Filename: %s

Transcription:
%s

Descriptions:
%s

Remember, respond with ONLY the number of the best description, nothing else.`, languageOrDefault(transcription), filename, transcription, formatDescriptions(descriptions))

	for attempt := 0; attempt < evaluationAttempts; attempt++ {
		req := openai.ChatCompletionRequest{
			Model: e.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: "You are a helpful assistant that evaluates video descriptions.",
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			MaxTokens: 10,
		}

		resp, err := e.client.CreateChatCompletion(ctx, req)
		if err != nil {
			return 0, fmt.Errorf("error evaluating descriptions: %w", err)
		}
		content, err := firstChoice(resp)
		if err != nil {
			return 0, fmt.Errorf("error evaluating descriptions: %w", err)
		}

		bestIndex, err := strconv.Atoi(strings.Trim(strings.TrimSpace(content), "."))
		if err == nil && bestIndex > 0 && bestIndex <= len(descriptions) {
			return bestIndex, nil
		}

		prompt += "\nRemember, respond with ONLY the number of the best description, nothing else."
	}

	return 0, fmt.Errorf("failed to get a valid response after %d attempts", evaluationAttempts)
}

func formatDescriptions(descriptions []string) string {
	var result strings.Builder
	for i, desc := range descriptions {
		fmt.Fprintf(&result, "%d. %s\n\n", i+1, desc)
	}
	return result.String()
}
