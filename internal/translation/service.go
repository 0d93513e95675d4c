package translation

import (
	"context"

	"horse.fit/translate/internal/language"
)

// Backend performs the service-specific step of a translation.
type Backend interface {
	ID() string
	Name() string
	// ContentLengthLimit is the maximum text length in runes; <= 0 means unlimited.
	ContentLengthLimit() int
	SupportedSourceLanguages() []language.Language
	SupportedTargetLanguages() []language.Language
	DoTranslate(ctx context.Context, text string, source, target language.Language) (*Translation, error)
}

// TranslateRequest describes one translation request. A zero Source means
// autodetect; a zero Target means the translator's default for the locale.
type TranslateRequest struct {
	Text   string
	Source language.Language
	Target language.Language
}

// Translation contains translated text and backend metadata.
type Translation struct {
	Original     string            `json:"original"`
	Translated   string            `json:"translated"`
	Source       language.Language `json:"source"`
	Target       language.Language `json:"target"`
	TranslatorID string            `json:"translator_id"`
	Model        string            `json:"model,omitempty"`
	LatencyMs    int64             `json:"latency_ms"`
}
