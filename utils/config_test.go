package utils

import (
	"os"
	"path/filepath"
	"testing"
)

var configEnvKeys = []string{
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "TRANSCRIPTION_URL", "CHAT_MODEL", "IMAGE_MODEL",
	"CREATOR_NAME", "FFMPEG_PATH", "TMP_DIR", "DESCRIPTION_ATTEMPTS", "LOG_LEVEL", "LOG_FORMAT",
}

// clearConfigEnv unsets every config variable for the duration of the test.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		prev, had := os.LookupEnv(key)
		os.Unsetenv(key)
		t.Cleanup(func() {
			if had {
				os.Setenv(key, prev)
			} else {
				os.Unsetenv(key)
			}
		})
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.OpenAIAPIKey != "sk-test" {
		t.Errorf("Expected API key from env, got %q", cfg.OpenAIAPIKey)
	}
	if cfg.TranscriptionURL != DefaultTranscriptionURL {
		t.Errorf("Expected default transcription URL, got %q", cfg.TranscriptionURL)
	}
	if cfg.FFmpegPath != "ffmpeg" || cfg.TmpDir != ".tmp" {
		t.Errorf("Unexpected defaults: ffmpeg=%q tmp=%q", cfg.FFmpegPath, cfg.TmpDir)
	}
	if cfg.DescriptionAttempts != 3 || cfg.LogLevel != "info" || cfg.LogFormat != "console" {
		t.Errorf("Unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DESCRIPTION_ATTEMPTS", "5")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TRANSCRIPTION_URL", "http://localhost:9000/v1/audio/transcriptions")

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.DescriptionAttempts != 5 {
		t.Errorf("Expected 5 attempts, got %d", cfg.DescriptionAttempts)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected debug level, got %q", cfg.LogLevel)
	}
	if cfg.TranscriptionURL != "http://localhost:9000/v1/audio/transcriptions" {
		t.Errorf("Unexpected transcription URL %q", cfg.TranscriptionURL)
	}
}

func TestLoadConfigFromEnvFile(t *testing.T) {
	clearConfigEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(envFile, []byte("OPENAI_API_KEY=sk-from-file\nCREATOR_NAME=HugeFrog24\n"), 0644); err != nil {
		t.Fatalf("Failed to write env file: %v", err)
	}

	cfg, err := LoadConfig(envFile)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.OpenAIAPIKey != "sk-from-file" || cfg.CreatorName != "HugeFrog24" {
		t.Errorf("Expected values from env file, got %+v", cfg)
	}
}

func TestLoadConfigValidation(t *testing.T) {
	clearConfigEnv(t)
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Error("Expected an error without OPENAI_API_KEY")
	}

	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("LOG_FORMAT", "xml")
	if _, err := LoadConfig(""); err == nil {
		t.Error("Expected an error for an unknown log format")
	}
}
