package utils

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ExtractedAudioExtension is the container written by FFmpegAudioExtractor.
const ExtractedAudioExtension = "m4a"

// FFmpegAudioExtractor writes the audio track of a media file to a fresh
// mono AAC file in TmpDir. Deleting the result is up to the caller.
type FFmpegAudioExtractor struct {
	Binary string // defaults to "ffmpeg"
	TmpDir string // defaults to os.TempDir()
	Logger zerolog.Logger
}

func (e FFmpegAudioExtractor) ExtractAudio(ctx context.Context, videoFile string) (string, error) {
	binary := e.Binary
	if binary == "" {
		binary = "ffmpeg"
	}
	tmpDir := e.TmpDir
	if tmpDir == "" {
		tmpDir = os.TempDir()
	}
	audioFile := filepath.Join(tmpDir, fmt.Sprintf("audio-%s.%s", uuid.NewString(), ExtractedAudioExtension))

	cmd := exec.CommandContext(ctx, binary, "-y", "-i", videoFile, "-vn", "-sn", "-dn", "-ac", "1", "-c:a", "aac", "-b:a", "64k", audioFile)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	e.Logger.Debug().Str("video", videoFile).Str("audio", audioFile).Msg("extracting audio")
	if err := cmd.Run(); err != nil {
		_ = os.Remove(audioFile)
		stderrStr := stderr.String()
		if strings.Contains(stderrStr, "does not contain any stream") {
			return "", NewAudioExtractionError(fmt.Errorf("%s: %w", videoFile, ErrNoAudioStream))
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", NewAudioExtractionError(ctxErr)
		}
		return "", NewAudioExtractionError(fmt.Errorf("ffmpeg error: %w\nStderr: %s", err, strings.TrimSpace(stderrStr)))
	}

	info, err := os.Stat(audioFile)
	if err != nil || info.Size() == 0 {
		_ = os.Remove(audioFile)
		return "", NewAudioExtractionError(fmt.Errorf("%s: %w", videoFile, ErrNoAudioStream))
	}
	return audioFile, nil
}

// CleanupExtractedAudio removes leftover FFmpegAudioExtractor outputs from
// dir. Only files named like audio-*.m4a are touched; subdirectories and
// other files are left alone.
func CleanupExtractedAudio(dir string, logger zerolog.Logger) {
	matches, err := filepath.Glob(filepath.Join(dir, "audio-*."+ExtractedAudioExtension))
	if err != nil {
		logger.Warn().Err(err).Str("dir", dir).Msg("failed to list extracted audio")
		return
	}
	for _, path := range matches {
		info, err := os.Lstat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			logger.Warn().Err(err).Str("audio", path).Msg("failed to remove extracted audio")
		}
	}
}
