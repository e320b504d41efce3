package utils

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

type Description struct {
	Number  int    `xml:"number,attr"`
	Content string `xml:",chardata"`
}

type TranscriptionResult struct {
	VideoFile            string        `xml:"VideoFile"`
	HasAudio             bool          `xml:"HasAudio"`
	Transcription        string        `xml:"Transcription"`
	Descriptions         []Description `xml:"Descriptions>Description"`
	BestDescriptionIndex int           `xml:"BestDescriptionIndex"`
	ThumbnailURL         string        `xml:"ThumbnailURL,omitempty"`
}

type TranscriptionResults struct {
	XMLName xml.Name              `xml:"TranscriptionResults"`
	Results []TranscriptionResult `xml:"TranscriptionResult"`
}

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".m4v":  true,
	".mkv":  true,
	".webm": true,
}

// Processor runs the full pipeline over a directory of videos.
type Processor struct {
	Transcriber VideoTranscriber
	Generator   DescriptionGenerator
	Evaluator   DescriptionEvaluator
	Thumbnails  ThumbnailGenerator // optional
	Options     TranscriptionOptions
	Attempts    int
	Logger      zerolog.Logger
}

// ProcessDirectory walks dir, processes every video that does not yet have
// Attempts descriptions in outputXML, and rewrites outputXML after each video.
func (p *Processor) ProcessDirectory(ctx context.Context, dir string, outputXML string) (TranscriptionResults, error) {
	var results TranscriptionResults

	if _, err := os.Stat(outputXML); err == nil {
		file, err := os.Open(outputXML)
		if err != nil {
			return TranscriptionResults{}, fmt.Errorf("failed to open existing XML file: %w", err)
		}
		err = xml.NewDecoder(file).Decode(&results)
		file.Close()
		if err != nil {
			return TranscriptionResults{}, fmt.Errorf("failed to decode existing XML: %w", err)
		}
	}

	processed := make(map[string]int)
	for i, result := range results.Results {
		processed[result.VideoFile] = i
	}

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !videoExtensions[strings.ToLower(filepath.Ext(d.Name()))] {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		var existing *TranscriptionResult
		idx, exists := processed[path]
		if exists {
			existing = &results.Results[idx]
			if !existing.HasAudio && existing.Transcription == "" && len(existing.Descriptions) == 0 {
				// A previous run found no audio track.
				p.Logger.Info().Str("file", path).Msg("no audio stream, skipping")
				return nil
			}
			if len(existing.Descriptions) >= p.Attempts {
				p.Logger.Info().Str("file", path).Msg("already processed with sufficient descriptions, skipping")
				return nil
			}
		}

		result, err := p.processVideoFile(ctx, path, existing)
		if err != nil {
			return fmt.Errorf("failed to process video file '%s': %w", path, err)
		}

		if exists {
			results.Results[idx] = result
		} else {
			processed[path] = len(results.Results)
			results.Results = append(results.Results, result)
		}

		if err := writeXMLFile(outputXML, results); err != nil {
			return fmt.Errorf("failed to write XML file: %w", err)
		}
		p.Logger.Debug().Str("output", outputXML).Msg("results written")
		return nil
	})
	if err != nil {
		return TranscriptionResults{}, err
	}

	return results, nil
}

func (p *Processor) processVideoFile(ctx context.Context, videoFile string, existing *TranscriptionResult) (TranscriptionResult, error) {
	result := TranscriptionResult{VideoFile: videoFile}
	if existing != nil {
		result = *existing
	}
	log := p.Logger.With().Str("file", videoFile).Logger()

	if result.Transcription == "" {
		transcription, err := p.Transcriber.TranscribeVideo(ctx, videoFile, p.Options)
		if errors.Is(err, ErrNoAudioStream) {
			log.Info().Msg("no audio stream, skipping")
			return TranscriptionResult{VideoFile: videoFile}, nil
		}
		if err != nil {
			return TranscriptionResult{}, fmt.Errorf("failed to transcribe video: %w", err)
		}
		result.HasAudio = true
		result.Transcription = transcription
	}

	existingCount := len(result.Descriptions)
	toGenerate := p.Attempts - existingCount
	if toGenerate <= 0 {
		log.Info().Msg("already have required number of descriptions")
		return result, nil
	}

	filename := filepath.Base(videoFile)
	newDescriptions, err := p.Generator.GenerateDescriptions(ctx, result.Transcription, filename, toGenerate)
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("failed to generate descriptions: %w", err)
	}
	for i, desc := range newDescriptions {
		result.Descriptions = append(result.Descriptions, Description{
			Number:  existingCount + i + 1,
			Content: desc,
		})
	}

	bestIndex, err := p.Evaluator.EvaluateDescriptions(ctx, descriptionContents(result.Descriptions), result.Transcription, filename)
	if err != nil {
		return TranscriptionResult{}, fmt.Errorf("failed to evaluate descriptions: %w", err)
	}
	if bestIndex < 1 || bestIndex > len(result.Descriptions) {
		return TranscriptionResult{}, fmt.Errorf("evaluator returned out-of-range index %d", bestIndex)
	}
	result.BestDescriptionIndex = bestIndex
	log.Info().Int("best", bestIndex).Msg("suggested best description")

	if p.Thumbnails != nil {
		url, err := p.Thumbnails.GenerateThumbnail(ctx, result.Descriptions[bestIndex-1].Content)
		if err != nil {
			return TranscriptionResult{}, fmt.Errorf("failed to generate thumbnail: %w", err)
		}
		result.ThumbnailURL = url
	}

	return result, nil
}

func writeXMLFile(outputXML string, results TranscriptionResults) error {
	file, err := os.Create(outputXML)
	if err != nil {
		return fmt.Errorf("failed to create XML file '%s': %w", outputXML, err)
	}
	defer file.Close()

	encoder := xml.NewEncoder(file)
	encoder.Indent("", "  ")
	if err := encoder.Encode(results); err != nil {
		return fmt.Errorf("failed to encode XML to '%s': %w", outputXML, err)
	}
	if err := encoder.Flush(); err != nil {
		return fmt.Errorf("failed to flush XML encoder: %w", err)
	}
	return nil
}

func descriptionContents(descriptions []Description) []string {
	contents := make([]string, len(descriptions))
	for i, desc := range descriptions {
		contents[i] = desc.Content
	}
	return contents
}
