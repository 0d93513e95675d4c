package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"

	"horse.fit/translate/internal/language"
)

// minLetters is the shortest sample worth running detection on.
const minLetters = 6

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Detect returns the catalog language of text. It reports false for short,
// ambiguous or uncatalogued text.
func Detect(text string) (language.Language, bool) {
	code := detectISO6391(text)
	if code == "" {
		return language.Language{}, false
	}
	return language.Lookup(code)
}

func detectISO6391(text string) string {
	sample := strings.TrimSpace(text)
	if sample == "" {
		return ""
	}

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < minLetters {
		return ""
	}

	detected, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return ""
	}

	code := strings.ToLower(detected.IsoCode639_1().String())
	if len(code) != 2 {
		return ""
	}
	return code
}

// getDetector limits lingua to the catalog languages so models load lazily
// for only what the translators can handle.
func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		languages := make([]lingua.Language, 0, len(language.Codes()))
		for _, code := range language.Codes() {
			isoCode := lingua.GetIsoCode639_1FromValue(strings.ToUpper(code))
			if candidate := lingua.GetLanguageFromIsoCode639_1(isoCode); candidate != lingua.Unknown {
				languages = append(languages, candidate)
			}
		}

		builder := lingua.NewLanguageDetectorBuilder().FromAllLanguages()
		if len(languages) >= 2 {
			builder = lingua.NewLanguageDetectorBuilder().FromLanguages(languages...)
		}
		detector = builder.Build()
	})
	return detector
}
