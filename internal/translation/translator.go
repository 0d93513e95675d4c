package translation

import (
	"context"
	"errors"
	"sync"

	"horse.fit/translate/internal/language"
)

// Translator runs a Backend behind a fixed pipeline: length check, one backend
// call, then classification of any fault into a *TranslateError.
// Safe for concurrent use.
type Translator struct {
	backend    Backend
	classifier *Classifier
	catalog    *language.Catalog

	defaultOnce sync.Once
	defaultLang language.Language
}

func NewTranslator(backend Backend, classifier *Classifier, catalog *language.Catalog) *Translator {
	return &Translator{
		backend:    backend,
		classifier: classifier,
		catalog:    catalog,
	}
}

func (t *Translator) ID() string {
	return t.backend.ID()
}

func (t *Translator) Name() string {
	return t.backend.Name()
}

func (t *Translator) ContentLengthLimit() int {
	return t.backend.ContentLengthLimit()
}

func (t *Translator) SupportedSourceLanguages() []language.Language {
	return t.backend.SupportedSourceLanguages()
}

func (t *Translator) SupportedTargetLanguages() []language.Language {
	return t.backend.SupportedTargetLanguages()
}

// SupportsTarget reports whether lang is one of the backend's target languages.
func (t *Translator) SupportsTarget(lang language.Language) bool {
	return containsLanguage(t.backend.SupportedTargetLanguages(), lang)
}

// DefaultLanguageForLocale is the process default language when the backend
// supports it as a target, English otherwise. Computed once.
func (t *Translator) DefaultLanguageForLocale() language.Language {
	t.defaultOnce.Do(func() {
		fallback := t.catalog.Fallback()
		if preferred := t.catalog.Default(); t.SupportsTarget(preferred) {
			t.defaultLang = preferred
			return
		}
		t.defaultLang = fallback
	})
	return t.defaultLang
}

// Translate returns a *TranslateError for every fault the classifier can describe.
// Other faults are returned unchanged.
func (t *Translator) Translate(ctx context.Context, req TranslateRequest) (*Translation, error) {
	if req.Source.Code == "" {
		req.Source = language.Auto
	}
	if req.Target.Code == "" {
		req.Target = t.DefaultLanguageForLocale()
	}

	result, err := t.translate(ctx, req)
	if err != nil {
		return nil, t.onError(err)
	}
	return result, nil
}

func (t *Translator) translate(ctx context.Context, req TranslateRequest) (*Translation, error) {
	if err := CheckContentLength(req.Text, t.backend.ContentLengthLimit()); err != nil {
		return nil, err
	}
	return t.backend.DoTranslate(ctx, req.Text, req.Source, req.Target)
}

func (t *Translator) onError(err error) error {
	// Already classified by a nested translator.
	var translateErr *TranslateError
	if errors.As(err, &translateErr) {
		return err
	}

	info := t.classifier.Classify(err)
	if info == nil {
		return err
	}
	return &TranslateError{
		TranslatorID:   t.backend.ID(),
		TranslatorName: t.backend.Name(),
		Info:           *info,
		Cause:          err,
	}
}

func containsLanguage(langs []language.Language, lang language.Language) bool {
	for _, candidate := range langs {
		if candidate.Code == lang.Code {
			return true
		}
	}
	return false
}
