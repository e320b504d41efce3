package utils

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
)

type RealThumbnailGenerator struct {
	client ImageCreator
	model  string
}

func NewRealThumbnailGenerator(client ImageCreator, model string) *RealThumbnailGenerator {
	if model == "" {
		model = openai.CreateImageModelDallE3
	}
	return &RealThumbnailGenerator{client: client, model: model}
}

// GenerateThumbnail requests a single image for the video description and
// returns its URL.
func (g *RealThumbnailGenerator) GenerateThumbnail(ctx context.Context, description string) (string, error) {
	if strings.TrimSpace(description) == "" {
		return "", fmt.Errorf("empty description")
	}

	req := openai.ImageRequest{
		Prompt:         fmt.Sprintf("An eye-catching video thumbnail without any text for a video described as follows:\n\n%s", description),
		Model:          g.model,
		N:              1,
		Size:           openai.CreateImageSize1792x1024,
		ResponseFormat: openai.CreateImageResponseFormatURL,
	}

	resp, err := g.client.CreateImage(ctx, req)
	if err != nil {
		return "", fmt.Errorf("error generating thumbnail: %w", err)
	}
	if len(resp.Data) == 0 || resp.Data[0].URL == "" {
		return "", fmt.Errorf("image generation returned no image")
	}
	return resp.Data[0].URL, nil
}
