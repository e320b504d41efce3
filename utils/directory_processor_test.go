package utils

import (
	"context"
	"encoding/xml"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func newMockProcessor(transcriber VideoTranscriber) *Processor {
	return &Processor{
		Transcriber: transcriber,
		Generator: &MockDescriptionGenerator{
			GenerateDescriptionsFunc: func(ctx context.Context, transcription string, filename string, attempts int) ([]string, error) {
				out := make([]string, attempts)
				for i := range out {
					out[i] = "Mock description"
				}
				return out, nil
			},
		},
		Evaluator: &MockDescriptionEvaluator{
			EvaluateDescriptionsFunc: func(ctx context.Context, descriptions []string, transcription string, filename string) (int, error) {
				return 1, nil
			},
		},
		Options:  DefaultTranscriptionOptions(),
		Attempts: 2,
		Logger:   zerolog.Nop(),
	}
}

func TestProcessDirectory(t *testing.T) {
	ctx := context.Background()
	testDir := t.TempDir()
	outputXML := filepath.Join(t.TempDir(), "test_output.xml")

	videoFiles := []string{"test_video1.mp4", "test_video2.MOV", "silent.mp4", "non_video_file.txt"}
	for _, file := range videoFiles {
		if err := os.WriteFile(filepath.Join(testDir, file), []byte("mock content"), 0644); err != nil {
			t.Fatalf("Failed to create mock file %s: %v", file, err)
		}
	}

	var transcribed []string
	transcriber := &MockVideoTranscriber{
		TranscribeVideoFunc: func(ctx context.Context, videoFile string, opts TranscriptionOptions) (string, error) {
			transcribed = append(transcribed, filepath.Base(videoFile))
			if strings.HasPrefix(filepath.Base(videoFile), "silent") {
				return "", NewAudioExtractionError(ErrNoAudioStream)
			}
			return "Mock transcription", nil
		},
	}
	p := newMockProcessor(transcriber)
	p.Thumbnails = &MockThumbnailGenerator{
		GenerateThumbnailFunc: func(ctx context.Context, description string) (string, error) {
			return "https://example.com/" + description, nil
		},
	}

	results, err := p.ProcessDirectory(ctx, testDir, outputXML)
	if err != nil {
		t.Fatalf("ProcessDirectory failed: %v", err)
	}

	if len(results.Results) != 3 {
		t.Fatalf("Expected 3 processed files, got %d", len(results.Results))
	}
	for _, result := range results.Results {
		if strings.HasPrefix(filepath.Base(result.VideoFile), "silent") {
			if result.HasAudio || result.Transcription != "" {
				t.Errorf("Expected silent video to have no transcription, got %+v", result)
			}
			continue
		}
		if result.Transcription != "Mock transcription" {
			t.Errorf("Expected transcription 'Mock transcription', got '%s'", result.Transcription)
		}
		if len(result.Descriptions) != 2 {
			t.Errorf("Expected 2 descriptions, got %d", len(result.Descriptions))
		}
		if result.BestDescriptionIndex != 1 {
			t.Errorf("Expected best description index 1, got %d", result.BestDescriptionIndex)
		}
		if result.ThumbnailURL != "https://example.com/Mock description" {
			t.Errorf("Unexpected thumbnail URL %q", result.ThumbnailURL)
		}
	}

	xmlContent, err := os.ReadFile(outputXML)
	if err != nil {
		t.Fatalf("Failed to read output XML: %v", err)
	}
	var parsedResults TranscriptionResults
	if err := xml.Unmarshal(xmlContent, &parsedResults); err != nil {
		t.Fatalf("Failed to parse output XML: %v", err)
	}
	if len(parsedResults.Results) != 3 {
		t.Errorf("XML: Expected 3 processed files, got %d", len(parsedResults.Results))
	}

	// A second run resumes from the XML and transcribes nothing again.
	transcribed = nil
	if _, err := p.ProcessDirectory(ctx, testDir, outputXML); err != nil {
		t.Fatalf("Second ProcessDirectory failed: %v", err)
	}
	if len(transcribed) != 0 {
		t.Errorf("Expected no videos to be transcribed again, got %v", transcribed)
	}
}

func TestProcessDirectoryTopsUpDescriptions(t *testing.T) {
	testDir := t.TempDir()
	outputXML := filepath.Join(t.TempDir(), "out.xml")
	if err := os.WriteFile(filepath.Join(testDir, "a.mp4"), []byte("mock"), 0644); err != nil {
		t.Fatal(err)
	}

	transcriptions := 0
	p := newMockProcessor(&MockVideoTranscriber{
		TranscribeVideoFunc: func(ctx context.Context, videoFile string, opts TranscriptionOptions) (string, error) {
			transcriptions++
			return "Mock transcription", nil
		},
	})
	p.Attempts = 1
	if _, err := p.ProcessDirectory(context.Background(), testDir, outputXML); err != nil {
		t.Fatalf("ProcessDirectory failed: %v", err)
	}

	p.Attempts = 3
	results, err := p.ProcessDirectory(context.Background(), testDir, outputXML)
	if err != nil {
		t.Fatalf("ProcessDirectory failed: %v", err)
	}
	if transcriptions != 1 {
		t.Errorf("Expected the stored transcription to be reused, transcribed %d times", transcriptions)
	}
	if got := len(results.Results[0].Descriptions); got != 3 {
		t.Fatalf("Expected 3 descriptions, got %d", got)
	}
	if results.Results[0].Descriptions[2].Number != 3 {
		t.Errorf("Expected descriptions to be numbered sequentially, got %+v", results.Results[0].Descriptions)
	}
}

func TestProcessDirectoryTranscriptionError(t *testing.T) {
	testDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(testDir, "a.mp4"), []byte("mock"), 0644); err != nil {
		t.Fatal(err)
	}

	p := newMockProcessor(&MockVideoTranscriber{
		TranscribeVideoFunc: func(ctx context.Context, videoFile string, opts TranscriptionOptions) (string, error) {
			return "", NewServerError(500, "")
		},
	})
	_, err := p.ProcessDirectory(context.Background(), testDir, filepath.Join(t.TempDir(), "out.xml"))
	if !errors.Is(err, ErrServer) {
		t.Errorf("Expected a server error, got %v", err)
	}
}
