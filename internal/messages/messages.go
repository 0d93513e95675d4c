// Package messages resolves localized user-facing strings by message key.
package messages

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys for translation errors.
const (
	KeyUnsupportedLanguage = "error.unsupportedLanguage"
	KeyNetworkConnection   = "error.network.connection"
	KeyNetwork             = "error.network"
	KeyNetworkTimeout      = "error.network.timeout"
	KeyTextTooLong         = "error.text.too.long"
	KeyTooManyRequests     = "error.too.many.requests"
	KeyInvalidAccount      = "error.invalidAccount"
	KeyBadRequest          = "error.bad.request"
	KeyServiceUnavailable  = "error.service.unavailable"
	KeySystemError         = "error.systemError"
	KeyIOException         = "error.io.exception"
)

var bundles = map[language.Tag]map[string]string{
	language.English: {
		KeyUnsupportedLanguage: "Unsupported language: %s",
		KeyNetworkConnection:   "Network connection failed",
		KeyNetwork:             "Network error",
		KeyNetworkTimeout:      "Network timeout, please check your network connection",
		KeyTextTooLong:         "Text too long",
		KeyTooManyRequests:     "Too many requests",
		KeyInvalidAccount:      "Invalid account",
		KeyBadRequest:          "Bad request",
		KeyServiceUnavailable:  "Service unavailable",
		KeySystemError:         "System error",
		KeyIOException:         "I/O error: %s",
	},
	language.Chinese: {
		KeyUnsupportedLanguage: "不支持的语言：%s",
		KeyNetworkConnection:   "网络连接失败",
		KeyNetwork:             "网络错误",
		KeyNetworkTimeout:      "网络连接超时，请检查网络连接",
		KeyTextTooLong:         "文本过长",
		KeyTooManyRequests:     "请求过于频繁",
		KeyInvalidAccount:      "无效的账号",
		KeyBadRequest:          "错误的请求",
		KeyServiceUnavailable:  "服务不可用",
		KeySystemError:         "系统错误",
		KeyIOException:         "I/O 错误：%s",
	},
}

var supportedTags = []language.Tag{language.English, language.Chinese}

// Bundle resolves message keys for one locale. Safe for concurrent use.
type Bundle struct {
	tag     language.Tag
	catalog catalog.Catalog
}

// New builds a bundle for the given locale ("zh-CN", "zh_CN.UTF-8", "en").
// Unsupported or empty locales resolve to English.
func New(locale string) *Bundle {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for tag, entries := range bundles {
		for key, msg := range entries {
			_ = builder.SetString(tag, key, msg)
		}
	}
	return &Bundle{
		tag:     matchLocale(locale),
		catalog: builder,
	}
}

// Locale returns the matched locale tag.
func (b *Bundle) Locale() string {
	return b.tag.String()
}

// Resolve returns the localized string for key, formatted with args.
func (b *Bundle) Resolve(key string, args ...any) string {
	// Printers are not safe for concurrent use; one per call.
	printer := message.NewPrinter(b.tag, message.Catalog(b.catalog))
	return printer.Sprintf(key, args...)
}

// Keys returns every message key the bundles define.
func Keys() []string {
	keys := make([]string, 0, len(bundles[language.English]))
	for key := range bundles[language.English] {
		keys = append(keys, key)
	}
	return keys
}

func matchLocale(raw string) language.Tag {
	locale := strings.TrimSpace(raw)
	if idx := strings.IndexAny(locale, ".@"); idx >= 0 {
		locale = locale[:idx]
	}
	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		return language.English
	}
	matcher := language.NewMatcher(supportedTags)
	_, idx, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.English
	}
	return supportedTags[idx]
}
