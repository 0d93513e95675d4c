package translation

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"horse.fit/translate/internal/language"
	"horse.fit/translate/internal/messages"
)

func newLocalTranslator(endpoint string, timeout time.Duration) *Translator {
	backend := NewLocalBackend(endpoint, "test-model", 0, timeout)
	return NewTranslator(backend, NewClassifier(messages.New("en")), language.NewCatalog("en"))
}

func TestLocalBackend_Success(t *testing.T) {
	t.Parallel()

	var gotPrompt string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		var req localChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(req.Messages) == 1 {
			gotPrompt = req.Messages[0].Content
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" Hallo Welt "}}]}`))
	}))
	defer server.Close()

	translator := newLocalTranslator(server.URL, time.Second)
	result, err := translator.Translate(context.Background(), TranslateRequest{
		Text:   "Hello world",
		Source: language.English,
		Target: mustLanguage(t, "de"),
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Translated != "Hallo Welt" {
		t.Fatalf("unexpected translation: %q", result.Translated)
	}
	if result.TranslatorID != "local" || result.Model != "test-model" {
		t.Fatalf("unexpected metadata: %+v", result)
	}
	if !strings.Contains(gotPrompt, "into German") {
		t.Fatalf("unexpected prompt: %q", gotPrompt)
	}
}

func TestLocalBackend_StatusErrors(t *testing.T) {
	t.Parallel()

	cases := map[int]string{
		http.StatusTooManyRequests:    "Too many requests",
		http.StatusServiceUnavailable: "Service unavailable",
		http.StatusNotFound:           "Not Found",
	}
	for status, want := range cases {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream says no"}}`))
		}))

		translator := newLocalTranslator(server.URL, time.Second)
		_, err := translator.Translate(context.Background(), TranslateRequest{Text: "hi", Source: language.English, Target: mustLanguage(t, "de")})
		server.Close()

		var translateErr *TranslateError
		if !errors.As(err, &translateErr) {
			t.Fatalf("status %d: expected TranslateError, got %v", status, err)
		}
		if translateErr.Info.Message != want {
			t.Fatalf("status %d: got %q want %q", status, translateErr.Info.Message, want)
		}
		var statusErr *HTTPStatusError
		if !errors.As(err, &statusErr) || statusErr.Body != "upstream says no" {
			t.Fatalf("status %d: unexpected cause %v", status, translateErr.Cause)
		}
	}
}

func TestLocalBackend_ConnectionRefused(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.NotFoundHandler())
	endpoint := server.URL
	server.Close()

	translator := newLocalTranslator(endpoint, time.Second)
	_, err := translator.Translate(context.Background(), TranslateRequest{Text: "hi", Source: language.English, Target: mustLanguage(t, "de")})

	var translateErr *TranslateError
	if !errors.As(err, &translateErr) {
		t.Fatalf("expected TranslateError, got %v", err)
	}
	if translateErr.Info.Message != "Network connection failed" {
		t.Fatalf("unexpected message: %q", translateErr.Info.Message)
	}
}

func TestLocalBackend_Timeout(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	translator := newLocalTranslator(server.URL, 50*time.Millisecond)
	_, err := translator.Translate(context.Background(), TranslateRequest{Text: "hi", Source: language.English, Target: mustLanguage(t, "de")})

	var translateErr *TranslateError
	if !errors.As(err, &translateErr) {
		t.Fatalf("expected TranslateError, got %v", err)
	}
	if translateErr.Info.Message != "Network timeout, please check your network connection" {
		t.Fatalf("unexpected message: %q", translateErr.Info.Message)
	}
}

func TestLocalBackend_MalformedResponseIsUnclassified(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	translator := newLocalTranslator(server.URL, time.Second)
	_, err := translator.Translate(context.Background(), TranslateRequest{Text: "hi", Source: language.English, Target: mustLanguage(t, "de")})
	if err == nil {
		t.Fatalf("expected error")
	}
	var translateErr *TranslateError
	if errors.As(err, &translateErr) {
		t.Fatalf("malformed payload must surface unclassified, got %v", err)
	}
}

func TestLocalBackend_HTTPSAgainstPlainServerIsNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("handler must not run for a TLS handshake")
	}))
	defer server.Close()

	endpoint := "https://" + strings.TrimPrefix(server.URL, "http://")
	_, err := newLocalTranslator(endpoint, 2*time.Second).Translate(context.Background(), TranslateRequest{
		Text:   "Hello world",
		Source: language.English,
		Target: mustLanguage(t, "de"),
	})

	var translateErr *TranslateError
	if !errors.As(err, &translateErr) {
		t.Fatalf("expected TranslateError, got %T: %v", err, err)
	}
	if translateErr.Info.Message != "Network error" {
		t.Fatalf("unexpected message: %q (cause %v)", translateErr.Info.Message, translateErr.Cause)
	}
}

func TestLocalBackend_ServerHangUpIsNetworkError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hijacker, ok := w.(http.Hijacker)
		if !ok {
			t.Errorf("response writer does not support hijacking")
			return
		}
		conn, _, err := hijacker.Hijack()
		if err != nil {
			t.Errorf("hijack: %v", err)
			return
		}
		_ = conn.Close()
	}))
	defer server.Close()

	_, err := newLocalTranslator(server.URL, 2*time.Second).Translate(context.Background(), TranslateRequest{
		Text:   "Hello world",
		Source: language.English,
		Target: mustLanguage(t, "de"),
	})

	var translateErr *TranslateError
	if !errors.As(err, &translateErr) {
		t.Fatalf("expected TranslateError, got %T: %v", err, err)
	}
	if translateErr.Info.Message != "Network error" {
		t.Fatalf("unexpected message: %q (cause %v)", translateErr.Info.Message, translateErr.Cause)
	}
}

func TestLocalBackend_AutoSourceIsDetected(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"Der schnelle braune Fuchs"}}]}`))
	}))
	defer server.Close()

	result, err := newLocalTranslator(server.URL, 2*time.Second).Translate(context.Background(), TranslateRequest{
		Text:   "The quick brown fox jumps over the lazy dog near the river bank.",
		Target: mustLanguage(t, "de"),
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if result.Source != language.English {
		t.Fatalf("expected detected English source, got %+v", result.Source)
	}
}

func TestBuildHYMTPrompt(t *testing.T) {
	t.Parallel()

	zh := mustLanguage(t, "zh")
	if got := buildHYMTPrompt("hello", language.English, zh); !strings.HasPrefix(got, "将以下文本翻译为中文") {
		t.Fatalf("unexpected zh prompt: %q", got)
	}
	if got := buildHYMTPrompt("hello", language.English, mustLanguage(t, "fr")); !strings.Contains(got, "into French") {
		t.Fatalf("unexpected xx prompt: %q", got)
	}
}

func TestChatCompletionsURL(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"":                                     "http://127.0.0.1:8845/v1/chat/completions",
		"localhost:9000":                       "http://localhost:9000/v1/chat/completions",
		"http://host/v1/":                      "http://host/v1/chat/completions",
		"https://host/api/v1/chat/completions": "https://host/api/v1/chat/completions",
	}
	for in, want := range cases {
		if got := chatCompletionsURL(normalizeEndpoint(in)); got != want {
			t.Fatalf("endpoint %q: got %q want %q", in, got, want)
		}
	}
}
