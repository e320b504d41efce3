package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/HugeFrog24/gpt-video-assistant/utils"
	"github.com/rs/zerolog"
)

func main() {
	envFile := flag.String("env", ".env", "Path to an optional .env file")
	dir := flag.String("dir", "", "Process every video in this directory instead of a single file")
	outputXML := flag.String("out", "results.xml", "Results file for -dir mode")
	language := flag.String("language", "", "Spoken language of the audio (ISO-639-1), empty to auto-detect")
	temperature := flag.Float64("temperature", 0, "Sampling temperature between 0 and 1 (0 leaves the server default)")
	format := flag.String("format", string(utils.FormatJSON), "Response format: json, text, srt, verbose_json or vtt")
	timestamps := flag.Bool("timestamps", false, "Request timestamp granularity")
	attempts := flag.Int("attempts", 0, "Number of candidate descriptions (overrides DESCRIPTION_ATTEMPTS)")
	thumbnail := flag.Bool("thumbnail", false, "Generate a thumbnail image for the best description")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [flags] <video_file>\n       %s [flags] -dir <directory>\n\n", filepath.Base(os.Args[0]), filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := utils.LoadConfig(*envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}
	if *attempts > 0 {
		cfg.DescriptionAttempts = *attempts
	}
	logger := utils.NewLogger(cfg.LogLevel, cfg.LogFormat)

	opts := utils.TranscriptionOptions{
		Language:             *language,
		Temperature:          float32(*temperature),
		ResponseFormat:       utils.ResponseFormat(*format),
		TimestampGranularity: *timestamps,
	}
	if err := opts.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid flags")
	}

	if *dir == "" && flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := os.MkdirAll(cfg.TmpDir, os.ModePerm); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.TmpDir).Msg("failed to create temp directory")
	}
	// Each run extracts into its own subdirectory so concurrent runs sharing
	// TMP_DIR never remove each other's audio.
	runDir, err := os.MkdirTemp(cfg.TmpDir, "run-")
	if err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.TmpDir).Msg("failed to create run directory")
	}
	cfg.TmpDir = runDir
	defer cleanupRunDir(runDir, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := newApp(cfg, opts, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize")
	}

	if *dir != "" {
		err = app.runDirectory(ctx, *dir, *outputXML, *thumbnail)
	} else {
		err = app.runVideo(ctx, flag.Arg(0), *thumbnail)
	}
	if err != nil {
		logger.Error().Err(err).Msg("failed")
		cleanupRunDir(runDir, logger)
		os.Exit(1)
	}
}

func cleanupRunDir(runDir string, logger zerolog.Logger) {
	utils.CleanupExtractedAudio(runDir, logger)
	if err := os.Remove(runDir); err != nil && !os.IsNotExist(err) {
		logger.Warn().Err(err).Str("dir", runDir).Msg("failed to remove run directory")
	}
}
