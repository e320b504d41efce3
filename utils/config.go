package utils

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the settings read from the environment and an optional .env file.
type Config struct {
	OpenAIAPIKey        string `mapstructure:"openai_api_key" validate:"required"`
	OpenAIBaseURL       string `mapstructure:"openai_base_url" validate:"omitempty,url"`
	TranscriptionURL    string `mapstructure:"transcription_url" validate:"required,url"`
	ChatModel           string `mapstructure:"chat_model"`
	ImageModel          string `mapstructure:"image_model"`
	CreatorName         string `mapstructure:"creator_name"`
	FFmpegPath          string `mapstructure:"ffmpeg_path" validate:"required"`
	TmpDir              string `mapstructure:"tmp_dir" validate:"required"`
	DescriptionAttempts int    `mapstructure:"description_attempts" validate:"gte=1,lte=10"`
	LogLevel            string `mapstructure:"log_level" validate:"oneof=trace debug info warn error"`
	LogFormat           string `mapstructure:"log_format" validate:"oneof=console json"`
}

var configDefaults = map[string]any{
	"openai_api_key":       "",
	"openai_base_url":      "",
	"transcription_url":    DefaultTranscriptionURL,
	"chat_model":           "",
	"image_model":          "",
	"creator_name":         "",
	"ffmpeg_path":          "ffmpeg",
	"tmp_dir":              ".tmp",
	"description_attempts": 3,
	"log_level":            "info",
	"log_format":           "console",
}

// LoadConfig loads envFile (if it exists) into the process environment and
// resolves Config from environment variables such as OPENAI_API_KEY.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error loading %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	for key, value := range configDefaults {
		v.SetDefault(key, value)
		if err := v.BindEnv(key, strings.ToUpper(key)); err != nil {
			return Config{}, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	cfg.LogFormat = strings.ToLower(cfg.LogFormat)

	if err := getValidator().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
