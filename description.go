package main

import (
	"context"
	"fmt"
	"path/filepath"
)

// describe generates candidate descriptions for a transcript, picks the best
// one and optionally a thumbnail for it.
func (a *app) describe(ctx context.Context, videoFile, transcription string, thumbnail bool) error {
	filename := filepath.Base(videoFile)

	descriptions, err := a.generator.GenerateDescriptions(ctx, transcription, filename, a.cfg.DescriptionAttempts)
	if err != nil {
		return fmt.Errorf("failed to generate description: %w", err)
	}
	for i, d := range descriptions {
		fmt.Printf("Description %d:\n%s\n\n", i+1, d)
	}

	best, err := a.evaluator.EvaluateDescriptions(ctx, descriptions, transcription, filename)
	if err != nil {
		return fmt.Errorf("failed to evaluate descriptions: %w", err)
	}
	fmt.Printf("Suggested best description: %d\n", best)

	if thumbnail {
		url, err := a.thumbnails.GenerateThumbnail(ctx, descriptions[best-1])
		if err != nil {
			return fmt.Errorf("failed to generate thumbnail: %w", err)
		}
		fmt.Println("Thumbnail:", url)
	}
	return nil
}
