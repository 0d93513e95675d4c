package translation

import (
	"fmt"
	"sort"
	"strings"

	"horse.fit/translate/internal/config"
	"horse.fit/translate/internal/language"
)

// DefaultTranslatorID is used when no default translator is configured.
const DefaultTranslatorID = "local"

// Registry stores translators and resolves a default translator.
type Registry struct {
	translators       map[string]*Translator
	defaultTranslator string
}

func NewRegistry(defaultTranslator string) *Registry {
	normalizedDefault := normalizeTranslatorID(defaultTranslator)
	if normalizedDefault == "" {
		normalizedDefault = DefaultTranslatorID
	}

	return &Registry{
		translators:       make(map[string]*Translator),
		defaultTranslator: normalizedDefault,
	}
}

// NewRegistryFromConfig registers every built-in backend behind the shared
// classifier and language catalog.
func NewRegistryFromConfig(cfg *config.Config, resolver MessageResolver, catalog *language.Catalog) *Registry {
	registry := NewRegistry(cfg.TranslationProvider)
	classifier := NewClassifier(resolver)

	_ = registry.Register(NewTranslator(
		NewLocalBackend(cfg.LocalEndpoint, cfg.LocalModel, cfg.LocalContentLimit, cfg.RequestTimeout),
		classifier,
		catalog,
	))
	_ = registry.Register(NewTranslator(
		NewGoogleBackend(cfg.GoogleEndpoint, cfg.GoogleAPIKey, cfg.GoogleContentLimit, cfg.RequestTimeout),
		classifier,
		catalog,
	))

	if _, exists := registry.translators[registry.defaultTranslator]; !exists {
		registry.defaultTranslator = DefaultTranslatorID
	}
	return registry
}

// Register adds one translator, replacing any translator with the same id.
func (r *Registry) Register(translator *Translator) error {
	if r == nil {
		return fmt.Errorf("registry is nil")
	}
	if translator == nil {
		return fmt.Errorf("translator is nil")
	}
	id := normalizeTranslatorID(translator.ID())
	if id == "" {
		return fmt.Errorf("translator id is required")
	}
	r.translators[id] = translator
	return nil
}

// Translator resolves a translator by id. Empty ids use the default translator.
func (r *Registry) Translator(id string) (*Translator, error) {
	if r == nil {
		return nil, fmt.Errorf("registry is nil")
	}

	resolvedID := normalizeTranslatorID(id)
	if resolvedID == "" {
		resolvedID = r.defaultTranslator
	}
	translator, ok := r.translators[resolvedID]
	if ok {
		return translator, nil
	}

	return nil, fmt.Errorf("%w: %q (available: %s)", ErrTranslatorNotFound, resolvedID, strings.Join(r.TranslatorIDs(), ", "))
}

func (r *Registry) DefaultTranslator() string {
	if r == nil {
		return ""
	}
	return r.defaultTranslator
}

func (r *Registry) TranslatorIDs() []string {
	if r == nil {
		return nil
	}
	ids := make([]string, 0, len(r.translators))
	for id := range r.translators {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func normalizeTranslatorID(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
