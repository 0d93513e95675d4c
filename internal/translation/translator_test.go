package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"horse.fit/translate/internal/language"
	"horse.fit/translate/internal/messages"
)

type stubBackend struct {
	id      string
	limit   int
	targets []language.Language
	err     error
	resp    *Translation

	mu         sync.Mutex
	calls      int
	lastTarget language.Language
	lastSource language.Language
}

func (b *stubBackend) ID() string { return b.id }

func (b *stubBackend) Name() string { return "Stub " + b.id }

func (b *stubBackend) ContentLengthLimit() int { return b.limit }

func (b *stubBackend) SupportedSourceLanguages() []language.Language {
	return append([]language.Language{language.Auto}, b.SupportedTargetLanguages()...)
}

func (b *stubBackend) SupportedTargetLanguages() []language.Language {
	if b.targets != nil {
		return b.targets
	}
	zh, _ := language.Lookup("zh")
	return []language.Language{language.English, zh}
}

func (b *stubBackend) DoTranslate(_ context.Context, text string, source, target language.Language) (*Translation, error) {
	b.mu.Lock()
	b.calls++
	b.lastSource = source
	b.lastTarget = target
	b.mu.Unlock()

	if b.err != nil {
		return nil, b.err
	}
	if !containsLanguage(b.SupportedTargetLanguages(), target) {
		return nil, &UnsupportedLanguageError{Lang: target}
	}
	if b.resp != nil {
		return b.resp, nil
	}
	return &Translation{Original: text, Translated: strings.ToUpper(text), Source: source, Target: target, TranslatorID: b.id}, nil
}

func newStubTranslator(backend *stubBackend, defaultLang string) *Translator {
	return NewTranslator(backend, NewClassifier(messages.New("en")), language.NewCatalog(defaultLang))
}

func mustLanguage(t *testing.T, code string) language.Language {
	t.Helper()
	lang, ok := language.Lookup(code)
	if !ok {
		t.Fatalf("unknown language %q", code)
	}
	return lang
}

func TestTranslate_TextTooLong(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{id: "stub", limit: 4500}
	translator := newStubTranslator(backend, "en")

	_, err := translator.Translate(context.Background(), TranslateRequest{
		Text:   strings.Repeat("a", 5000),
		Target: language.English,
	})

	var translateErr *TranslateError
	if !errors.As(err, &translateErr) {
		t.Fatalf("expected TranslateError, got %T: %v", err, err)
	}
	if translateErr.Info.Message != "Text too long" {
		t.Fatalf("unexpected message: %q", translateErr.Info.Message)
	}
	if translateErr.TranslatorID != "stub" || translateErr.TranslatorName != "Stub stub" {
		t.Fatalf("unexpected translator identity: %+v", translateErr)
	}
	var limitErr *ContentLengthLimitError
	if !errors.As(translateErr.Cause, &limitErr) || limitErr.Length != 5000 || limitErr.Limit != 4500 {
		t.Fatalf("unexpected cause: %v", translateErr.Cause)
	}
	if backend.calls != 0 {
		t.Fatalf("backend must not be called for rejected text, got %d calls", backend.calls)
	}
}

func TestTranslate_LimitCountsRunes(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{id: "stub", limit: 4}
	translator := newStubTranslator(backend, "en")

	if _, err := translator.Translate(context.Background(), TranslateRequest{Text: "你好世界", Target: language.English}); err != nil {
		t.Fatalf("expected four runes to pass a limit of four: %v", err)
	}
}

func TestTranslate_UnsupportedTarget(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{id: "stub"}
	translator := newStubTranslator(backend, "en")

	_, err := translator.Translate(context.Background(), TranslateRequest{
		Text:   "hello",
		Target: mustLanguage(t, "ko"),
	})

	var translateErr *TranslateError
	if !errors.As(err, &translateErr) {
		t.Fatalf("expected TranslateError, got %T", err)
	}
	if translateErr.Info.Message != "Unsupported language: Korean" {
		t.Fatalf("unexpected message: %q", translateErr.Info.Message)
	}
}

func TestTranslate_BackendTimeout(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{id: "stub", err: fmt.Errorf("send translation request: %w", context.DeadlineExceeded)}
	translator := newStubTranslator(backend, "en")

	_, err := translator.Translate(context.Background(), TranslateRequest{Text: "hello", Target: language.English})

	var translateErr *TranslateError
	if !errors.As(err, &translateErr) {
		t.Fatalf("expected TranslateError, got %T", err)
	}
	if translateErr.Info.Message != "Network timeout, please check your network connection" {
		t.Fatalf("unexpected message: %q", translateErr.Info.Message)
	}
	if translateErr.Cause != backend.err {
		t.Fatalf("cause must be the original fault")
	}
}

type quotaExhaustedError struct{}

func (*quotaExhaustedError) Error() string { return "quota exhausted" }

func TestTranslate_UnclassifiedFaultPropagatesUnchanged(t *testing.T) {
	t.Parallel()

	fault := &quotaExhaustedError{}
	backend := &stubBackend{id: "stub", err: fault}
	translator := newStubTranslator(backend, "en")

	_, err := translator.Translate(context.Background(), TranslateRequest{Text: "hello", Target: language.English})
	if err != error(fault) {
		t.Fatalf("expected the original fault, got %T: %v", err, err)
	}
	var translateErr *TranslateError
	if errors.As(err, &translateErr) {
		t.Fatalf("unclassified fault must not be wrapped")
	}
}

func TestTranslate_AlreadyClassifiedFaultIsNotWrappedAgain(t *testing.T) {
	t.Parallel()

	inner := &TranslateError{
		TranslatorID:   "inner",
		TranslatorName: "Inner",
		Info:           ErrorInfo{Message: "Text too long"},
		Cause:          &ContentLengthLimitError{Length: 2, Limit: 1},
	}
	backend := &stubBackend{id: "outer", err: inner}
	translator := newStubTranslator(backend, "en")

	_, err := translator.Translate(context.Background(), TranslateRequest{Text: "hello", Target: language.English})
	if err != error(inner) {
		t.Fatalf("expected nested TranslateError to pass through, got %v", err)
	}
}

func TestTranslate_SuccessReturnsBackendResult(t *testing.T) {
	t.Parallel()

	want := &Translation{Translated: "你好"}
	backend := &stubBackend{id: "stub", resp: want}
	translator := newStubTranslator(backend, "en")

	got, err := translator.Translate(context.Background(), TranslateRequest{Text: "hello", Target: mustLanguage(t, "zh")})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if got != want {
		t.Fatalf("expected backend result unchanged")
	}
	if backend.calls != 1 {
		t.Fatalf("expected exactly one backend call, got %d", backend.calls)
	}
}

func TestTranslate_ZeroLanguagesUseDefaults(t *testing.T) {
	t.Parallel()

	backend := &stubBackend{id: "stub"}
	translator := newStubTranslator(backend, "zh")

	if _, err := translator.Translate(context.Background(), TranslateRequest{Text: "hello"}); err != nil {
		t.Fatalf("translate: %v", err)
	}
	if backend.lastTarget.Code != "zh" {
		t.Fatalf("expected default target zh, got %q", backend.lastTarget.Code)
	}
	if !backend.lastSource.IsAuto() {
		t.Fatalf("expected auto source, got %q", backend.lastSource.Code)
	}
}

func TestDefaultLanguageForLocale(t *testing.T) {
	t.Parallel()

	supported := newStubTranslator(&stubBackend{id: "stub"}, "zh")
	if got := supported.DefaultLanguageForLocale(); got.Code != "zh" {
		t.Fatalf("expected supported process default, got %q", got.Code)
	}

	unsupported := newStubTranslator(&stubBackend{id: "stub"}, "ja")
	if got := unsupported.DefaultLanguageForLocale(); got != language.English {
		t.Fatalf("expected English fallback, got %q", got.Code)
	}
}

func TestDefaultLanguageForLocale_ConcurrentFirstAccess(t *testing.T) {
	t.Parallel()

	translator := newStubTranslator(&stubBackend{id: "stub"}, "zh")

	var wg sync.WaitGroup
	results := make([]language.Language, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = translator.DefaultLanguageForLocale()
		}(i)
	}
	wg.Wait()

	for i, got := range results {
		if got != results[0] {
			t.Fatalf("result %d differs: %q vs %q", i, got.Code, results[0].Code)
		}
	}
	if translator.DefaultLanguageForLocale() != results[0] {
		t.Fatalf("repeated calls must return the same language")
	}
}
