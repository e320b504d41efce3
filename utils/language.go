package utils

import (
	"sync"

	"github.com/pemistahl/lingua-go"
)

var (
	detector     lingua.LanguageDetector
	detectorOnce sync.Once
)

// DetectLanguage names the language of text, or returns "" if it cannot
// be determined reliably.
func DetectLanguage(text string) string {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().FromAllLanguages().Build()
	})
	language, ok := detector.DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return language.String()
}

func languageOrDefault(text string) string {
	if lang := DetectLanguage(text); lang != "" {
		return lang
	}
	return "the same language as the transcription"
}
