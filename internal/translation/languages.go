package translation

import (
	"fmt"
	"strings"

	"horse.fit/translate/internal/language"
)

type LanguageOption struct {
	Code    string `json:"code"`
	Label   string `json:"label"`
	Chinese string `json:"chinese,omitempty"`
	Default bool   `json:"default,omitempty"`
}

// ResolveLanguage parses a user-supplied language code. Blank input returns
// the zero Language so Translate applies its own defaults.
func ResolveLanguage(raw string) (language.Language, error) {
	if strings.TrimSpace(raw) == "" {
		return language.Language{}, nil
	}
	lang, ok := language.Lookup(raw)
	if !ok {
		return language.Language{}, fmt.Errorf("%w: %q", ErrUnknownLanguage, strings.TrimSpace(raw))
	}
	return lang, nil
}

func SourceLanguageOptions(translator *Translator) []LanguageOption {
	if translator == nil {
		return nil
	}
	return languageOptions(translator.SupportedSourceLanguages(), language.Auto)
}

// TargetLanguageOptions marks the translator's default target for the locale.
func TargetLanguageOptions(translator *Translator) []LanguageOption {
	if translator == nil {
		return nil
	}
	return languageOptions(translator.SupportedTargetLanguages(), translator.DefaultLanguageForLocale())
}

func languageOptions(langs []language.Language, defaultLang language.Language) []LanguageOption {
	options := make([]LanguageOption, 0, len(langs))
	for _, lang := range langs {
		options = append(options, LanguageOption{
			Code:    lang.Code,
			Label:   lang.Name,
			Chinese: lang.Chinese,
			Default: lang.Code == defaultLang.Code,
		})
	}
	return options
}
