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

	"horse.fit/translate/internal/langdetect"
	"horse.fit/translate/internal/language"
)

const (
	// DefaultLocalEndpoint points to a local OpenAI-compatible translation endpoint.
	DefaultLocalEndpoint = "http://127.0.0.1:8845/v1"
	// DefaultLocalModel is the default HY-MT model name.
	DefaultLocalModel = "tencent/HY-MT1.5-7B"
	// DefaultLocalContentLimit bounds one request to the local model.
	DefaultLocalContentLimit = 4500
)

// LocalBackend translates text by calling an OpenAI-compatible chat completions endpoint.
type LocalBackend struct {
	endpointURL  string
	model        string
	contentLimit int
	client       *http.Client
}

// NewLocalBackend builds a local backend for the given endpoint/model.
func NewLocalBackend(endpoint, model string, contentLimit int, timeout time.Duration) *LocalBackend {
	normalizedEndpoint := normalizeEndpoint(endpoint)
	trimmedModel := strings.TrimSpace(model)
	if trimmedModel == "" {
		trimmedModel = DefaultLocalModel
	}
	if contentLimit <= 0 {
		contentLimit = DefaultLocalContentLimit
	}
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	return &LocalBackend{
		endpointURL:  chatCompletionsURL(normalizedEndpoint),
		model:        trimmedModel,
		contentLimit: contentLimit,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

func (b *LocalBackend) ID() string {
	return "local"
}

func (b *LocalBackend) Name() string {
	return "Local HY-MT"
}

func (b *LocalBackend) ContentLengthLimit() int {
	return b.contentLimit
}

// hymtLanguages are the languages HY-MT 1.5 translates between.
var hymtLanguages = []string{
	"zh", "en", "fr", "pt", "es", "ja", "tr", "ru", "ar", "ko", "th", "it", "de",
	"vi", "ms", "id", "tl", "hi", "pl", "cs", "nl", "km", "my", "fa", "gu", "ur",
	"te", "mr", "he", "bn", "ta", "uk", "bo", "kk", "mn", "ug",
}

func (b *LocalBackend) SupportedSourceLanguages() []language.Language {
	return append([]language.Language{language.Auto}, language.Subset(hymtLanguages...)...)
}

func (b *LocalBackend) SupportedTargetLanguages() []language.Language {
	return language.Subset(hymtLanguages...)
}

func (b *LocalBackend) DoTranslate(ctx context.Context, text string, source, target language.Language) (*Translation, error) {
	if !containsLanguage(b.SupportedTargetLanguages(), target) {
		return nil, &UnsupportedLanguageError{Lang: target}
	}
	if !source.IsAuto() && !containsLanguage(b.SupportedSourceLanguages(), source) {
		return nil, &UnsupportedLanguageError{Lang: source}
	}
	if source.IsAuto() {
		if detected, ok := langdetect.Detect(text); ok && containsLanguage(b.SupportedSourceLanguages(), detected) {
			source = detected
		}
	}

	prompt := buildHYMTPrompt(text, source, target)
	body, err := json.Marshal(localChatRequest{
		Model: b.model,
		Messages: []localChatMessage{
			{
				Role:    "user",
				Content: prompt,
			},
		},
		Temperature: 0.7,
		TopP:        0.6,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal translation request: %w", err)
	}

	started := time.Now()
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpointURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build translation request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send translation request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &IOError{Op: "read translation response", Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errPayload localChatErrorResponse
		if unmarshalErr := json.Unmarshal(respBody, &errPayload); unmarshalErr == nil {
			if msg := strings.TrimSpace(errPayload.Error.Message); msg != "" {
				return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: msg}
			}
		}
		return nil, &HTTPStatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(respBody))}
	}

	var parsed localChatResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("decode translation response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return nil, fmt.Errorf("translation response missing choices")
	}

	translated := strings.TrimSpace(parsed.Choices[0].Message.Content)
	if translated == "" {
		return nil, fmt.Errorf("translation response was empty")
	}

	return &Translation{
		Original:     text,
		Translated:   translated,
		Source:       source,
		Target:       target,
		TranslatorID: b.ID(),
		Model:        b.model,
		LatencyMs:    time.Since(started).Milliseconds(),
	}, nil
}

type localChatRequest struct {
	Model       string             `json:"model"`
	Messages    []localChatMessage `json:"messages"`
	Temperature float64            `json:"temperature,omitempty"`
	TopP        float64            `json:"top_p,omitempty"`
}

type localChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type localChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type localChatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

func buildHYMTPrompt(text string, source, target language.Language) string {
	if source.Code == "zh" || target.Code == "zh" {
		// HY-MT zh<=>xx template.
		return fmt.Sprintf("将以下文本翻译为%s，注意只需要输出翻译后的结果，不要额外解释：\n\n%s", target.Chinese, text)
	}
	// HY-MT xx<=>xx template.
	return fmt.Sprintf("Translate the following segment into %s, without additional explanation.\n\n%s", target.Name, text)
}

func normalizeEndpoint(raw string) string {
	endpoint := strings.TrimSpace(raw)
	if endpoint == "" {
		return DefaultLocalEndpoint
	}
	if !strings.Contains(endpoint, "://") {
		endpoint = "http://" + endpoint
	}

	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultLocalEndpoint
	}
	parsed.Path = strings.TrimRight(parsed.Path, "/")
	if parsed.Path == "" {
		parsed.Path = "/v1"
	}
	return parsed.String()
}

func chatCompletionsURL(endpoint string) string {
	parsed, err := url.Parse(endpoint)
	if err != nil || strings.TrimSpace(parsed.Host) == "" {
		return DefaultLocalEndpoint + "/chat/completions"
	}

	path := strings.TrimRight(parsed.Path, "/")
	switch {
	case strings.HasSuffix(path, "/chat/completions"):
		parsed.Path = path
	case strings.HasSuffix(path, "/v1"):
		parsed.Path = path + "/chat/completions"
	case path == "":
		parsed.Path = "/v1/chat/completions"
	default:
		parsed.Path = path + "/v1/chat/completions"
	}

	return parsed.String()
}
