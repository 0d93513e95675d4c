package translation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"horse.fit/translate/internal/language"
)

const (
	// DefaultGoogleEndpoint is the Google Cloud Translation v2 REST endpoint.
	DefaultGoogleEndpoint = "https://translation.googleapis.com/language/translate/v2"
	// DefaultGoogleContentLimit matches the v2 per-request recommendation.
	DefaultGoogleContentLimit = 5000
)

// GoogleBackend calls the Google Cloud Translation v2 REST API with an API key.
type GoogleBackend struct {
	endpoint     string
	apiKey       string
	contentLimit int
	client       *http.Client
}

func NewGoogleBackend(endpoint, apiKey string, contentLimit int, timeout time.Duration) *GoogleBackend {
	endpoint = strings.TrimRight(strings.TrimSpace(endpoint), "/")
	if endpoint == "" {
		endpoint = DefaultGoogleEndpoint
	}
	if contentLimit <= 0 {
		contentLimit = DefaultGoogleContentLimit
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &GoogleBackend{
		endpoint:     endpoint,
		apiKey:       strings.TrimSpace(apiKey),
		contentLimit: contentLimit,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (b *GoogleBackend) ID() string {
	return "google"
}

func (b *GoogleBackend) Name() string {
	return "Google Translate"
}

func (b *GoogleBackend) ContentLengthLimit() int {
	return b.contentLimit
}

// googleLanguages are the catalog languages offered by Translation v2.
var googleLanguages = []string{
	"ar", "bg", "bn", "ca", "cs", "da", "de", "el", "en", "es", "fa", "fi", "fr",
	"gu", "he", "hi", "hu", "id", "it", "ja", "kk", "km", "ko", "mn", "mr", "ms",
	"my", "nl", "pl", "pt", "ro", "ru", "sk", "sv", "sw", "ta", "te", "th", "tl",
	"tr", "ug", "uk", "ur", "vi", "zh",
}

func (b *GoogleBackend) SupportedSourceLanguages() []language.Language {
	return append([]language.Language{language.Auto}, language.Subset(googleLanguages...)...)
}

func (b *GoogleBackend) SupportedTargetLanguages() []language.Language {
	return language.Subset(googleLanguages...)
}

func (b *GoogleBackend) DoTranslate(ctx context.Context, text string, source, target language.Language) (*Translation, error) {
	if !containsLanguage(b.SupportedTargetLanguages(), target) {
		return nil, &UnsupportedLanguageError{Lang: target}
	}
	if !source.IsAuto() && !containsLanguage(b.SupportedSourceLanguages(), source) {
		return nil, &UnsupportedLanguageError{Lang: source}
	}

	payload := googleTranslateRequest{
		Q:      text,
		Target: target.Code,
		Format: "text",
	}
	if !source.IsAuto() {
		payload.Source = source.Code
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal google request: %w", err)
	}

	requestURL := b.endpoint
	if b.apiKey != "" {
		requestURL += "?key=" + url.QueryEscape(b.apiKey)
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, requestURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build google request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send google request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &IOError{Op: "read google response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload googleErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: msg}
			}
		}
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var parsed googleTranslateResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode google response: %w", err)
	}
	if len(parsed.Data.Translations) == 0 {
		return nil, fmt.Errorf("google response missing translations")
	}

	first := parsed.Data.Translations[0]
	resolvedSource := source
	if source.IsAuto() {
		if detected, ok := language.Lookup(first.DetectedSourceLanguage); ok {
			resolvedSource = detected
		}
	}

	return &Translation{
		Original:     text,
		Translated:   first.TranslatedText,
		Source:       resolvedSource,
		Target:       target,
		TranslatorID: b.ID(),
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

type googleTranslateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source,omitempty"`
	Target string `json:"target"`
	Format string `json:"format,omitempty"`
}

type googleTranslateResponse struct {
	Data struct {
		Translations []struct {
			TranslatedText         string `json:"translatedText"`
			DetectedSourceLanguage string `json:"detectedSourceLanguage"`
		} `json:"translations"`
	} `json:"data"`
}

type googleErrorResponse struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
