package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"horse.fit/translate/internal/language"
	"horse.fit/translate/internal/messages"
)

func TestGoogleBackend_Success(t *testing.T) {
	t.Parallel()

	var got googleTranslateRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if key := r.URL.Query().Get("key"); key != "secret" {
			t.Errorf("unexpected api key: %q", key)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"data":{"translations":[{"translatedText":"Bonjour","detectedSourceLanguage":"en"}]}}`))
	}))
	defer server.Close()

	backend := NewGoogleBackend(server.URL, "secret", 0, time.Second)
	translator := NewTranslator(backend, NewClassifier(messages.New("en")), language.NewCatalog("en"))

	result, err := translator.Translate(context.Background(), TranslateRequest{Text: "Hello", Target: mustLanguage(t, "fr")})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Translated != "Bonjour" {
		t.Fatalf("unexpected translation: %q", result.Translated)
	}
	if result.Source != language.English {
		t.Fatalf("expected detected source to resolve to English, got %+v", result.Source)
	}
	if got.Source != "" || got.Target != "fr" || got.Q != "Hello" {
		t.Fatalf("unexpected request payload: %+v", got)
	}
}

func TestGoogleBackend_Forbidden(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"API key not valid"}}`))
	}))
	defer server.Close()

	backend := NewGoogleBackend(server.URL, "bad", 0, time.Second)
	translator := NewTranslator(backend, NewClassifier(messages.New("en")), language.NewCatalog("en"))

	_, err := translator.Translate(context.Background(), TranslateRequest{Text: "Hello", Target: mustLanguage(t, "fr")})
	var translateErr *TranslateError
	if !errors.As(err, &translateErr) {
		t.Fatalf("expected TranslateError, got %v", err)
	}
	if translateErr.Info.Message != "Invalid account" || translateErr.TranslatorID != "google" {
		t.Fatalf("unexpected error: %+v", translateErr)
	}
}

func TestGoogleBackend_DefaultLimit(t *testing.T) {
	t.Parallel()

	if got := NewGoogleBackend("", "", 0, 0).ContentLengthLimit(); got != DefaultGoogleContentLimit {
		t.Fatalf("unexpected default limit: %d", got)
	}
	if got := NewGoogleBackend("", "", 100, 0).ContentLengthLimit(); got != 100 {
		t.Fatalf("unexpected configured limit: %d", got)
	}
}
