package main

import (
	"context"
	"fmt"
	"time"

	"github.com/HugeFrog24/gpt-video-assistant/utils"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

type app struct {
	cfg         utils.Config
	opts        utils.TranscriptionOptions
	logger      zerolog.Logger
	transcriber *utils.TranscriptionClient
	generator   *utils.RealDescriptionGenerator
	evaluator   *utils.RealDescriptionEvaluator
	thumbnails  *utils.RealThumbnailGenerator
}

func newApp(cfg utils.Config, opts utils.TranscriptionOptions, logger zerolog.Logger) (*app, error) {
	extractor := utils.FFmpegAudioExtractor{
		Binary: cfg.FFmpegPath,
		TmpDir: cfg.TmpDir,
		Logger: logger.With().Str("component", "extractor").Logger(),
	}
	transcriber, err := utils.NewTranscriptionClient(cfg.OpenAIAPIKey,
		utils.WithEndpoint(cfg.TranscriptionURL),
		utils.WithAudioExtractor(extractor),
		utils.WithLogger(logger.With().Str("component", "transcriber").Logger()),
	)
	if err != nil {
		return nil, err
	}

	clientConfig := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientConfig.BaseURL = cfg.OpenAIBaseURL
	}
	client := openai.NewClientWithConfig(clientConfig)

	return &app{
		cfg:         cfg,
		opts:        opts,
		logger:      logger,
		transcriber: transcriber,
		generator:   utils.NewRealDescriptionGenerator(client, cfg.ChatModel, cfg.CreatorName, logger.With().Str("component", "generator").Logger()),
		evaluator:   utils.NewRealDescriptionEvaluator(client, cfg.ChatModel),
		thumbnails:  utils.NewRealThumbnailGenerator(client, cfg.ImageModel),
	}, nil
}

// runVideo transcribes a single video and prints its transcript and description.
func (a *app) runVideo(ctx context.Context, videoFile string, thumbnail bool) error {
	job := a.transcriber.StartVideoTranscription(ctx, videoFile, a.opts)

	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()
	last := utils.StatusPending
	for waiting := true; waiting; {
		select {
		case <-job.Done():
			waiting = false
		case <-ticker.C:
			if s := job.Status(); s != last {
				a.logger.Info().Str("file", videoFile).Str("status", s.String()).Msg("transcription progress")
				last = s
			}
		}
	}

	transcription, err := job.Result()
	if err != nil {
		return fmt.Errorf("failed to transcribe %s: %w", videoFile, err)
	}
	fmt.Println("Transcription:", transcription)

	return a.describe(ctx, videoFile, transcription, thumbnail)
}

func (a *app) runDirectory(ctx context.Context, dir, outputXML string, thumbnail bool) error {
	p := &utils.Processor{
		Transcriber: a.transcriber,
		Generator:   a.generator,
		Evaluator:   a.evaluator,
		Options:     a.opts,
		Attempts:    a.cfg.DescriptionAttempts,
		Logger:      a.logger,
	}
	if thumbnail {
		p.Thumbnails = a.thumbnails
	}

	results, err := p.ProcessDirectory(ctx, dir, outputXML)
	if err != nil {
		return err
	}
	a.logger.Info().Int("videos", len(results.Results)).Str("output", outputXML).Msg("directory processed")
	return nil
}
