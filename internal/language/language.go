package language

import (
	"os"
	"sort"
	"strings"

	xlanguage "golang.org/x/text/language"
)

// Language identifies a natural language by its ISO 639-1 code.
type Language struct {
	Code    string `json:"code"`
	Name    string `json:"name"`
	Chinese string `json:"chinese,omitempty"`
}

func (l Language) String() string {
	return l.Code
}

// IsAuto reports whether the language asks the backend to detect the source language.
func (l Language) IsAuto() bool {
	return l.Code == Auto.Code
}

var (
	// English is the fixed fallback for locale defaults.
	English = Language{Code: "en", Name: "English", Chinese: "英语"}
	// Auto marks a source language that should be detected from the text.
	Auto = Language{Code: "auto", Name: "Auto Detect", Chinese: "自动检测"}
)

var knownLanguages = map[string]Language{
	"ar": {Code: "ar", Name: "Arabic", Chinese: "阿拉伯语"},
	"bg": {Code: "bg", Name: "Bulgarian", Chinese: "保加利亚语"},
	"bn": {Code: "bn", Name: "Bengali", Chinese: "孟加拉语"},
	"bo": {Code: "bo", Name: "Tibetan", Chinese: "藏语"},
	"ca": {Code: "ca", Name: "Catalan", Chinese: "加泰罗尼亚语"},
	"cs": {Code: "cs", Name: "Czech", Chinese: "捷克语"},
	"da": {Code: "da", Name: "Danish", Chinese: "丹麦语"},
	"de": {Code: "de", Name: "German", Chinese: "德语"},
	"el": {Code: "el", Name: "Greek", Chinese: "希腊语"},
	"en": English,
	"es": {Code: "es", Name: "Spanish", Chinese: "西班牙语"},
	"fa": {Code: "fa", Name: "Persian", Chinese: "波斯语"},
	"fi": {Code: "fi", Name: "Finnish", Chinese: "芬兰语"},
	"fr": {Code: "fr", Name: "French", Chinese: "法语"},
	"gu": {Code: "gu", Name: "Gujarati", Chinese: "古吉拉特语"},
	"he": {Code: "he", Name: "Hebrew", Chinese: "希伯来语"},
	"hi": {Code: "hi", Name: "Hindi", Chinese: "印地语"},
	"hu": {Code: "hu", Name: "Hungarian", Chinese: "匈牙利语"},
	"id": {Code: "id", Name: "Indonesian", Chinese: "印度尼西亚语"},
	"it": {Code: "it", Name: "Italian", Chinese: "意大利语"},
	"ja": {Code: "ja", Name: "Japanese", Chinese: "日语"},
	"kk": {Code: "kk", Name: "Kazakh", Chinese: "哈萨克语"},
	"km": {Code: "km", Name: "Khmer", Chinese: "高棉语"},
	"ko": {Code: "ko", Name: "Korean", Chinese: "韩语"},
	"mn": {Code: "mn", Name: "Mongolian", Chinese: "蒙古语"},
	"mr": {Code: "mr", Name: "Marathi", Chinese: "马拉地语"},
	"ms": {Code: "ms", Name: "Malay", Chinese: "马来语"},
	"my": {Code: "my", Name: "Burmese", Chinese: "缅甸语"},
	"nl": {Code: "nl", Name: "Dutch", Chinese: "荷兰语"},
	"pl": {Code: "pl", Name: "Polish", Chinese: "波兰语"},
	"pt": {Code: "pt", Name: "Portuguese", Chinese: "葡萄牙语"},
	"ro": {Code: "ro", Name: "Romanian", Chinese: "罗马尼亚语"},
	"ru": {Code: "ru", Name: "Russian", Chinese: "俄语"},
	"sk": {Code: "sk", Name: "Slovak", Chinese: "斯洛伐克语"},
	"sv": {Code: "sv", Name: "Swedish", Chinese: "瑞典语"},
	"sw": {Code: "sw", Name: "Swahili", Chinese: "斯瓦希里语"},
	"ta": {Code: "ta", Name: "Tamil", Chinese: "泰米尔语"},
	"te": {Code: "te", Name: "Telugu", Chinese: "泰卢固语"},
	"th": {Code: "th", Name: "Thai", Chinese: "泰语"},
	"tl": {Code: "tl", Name: "Filipino", Chinese: "菲律宾语"},
	"tr": {Code: "tr", Name: "Turkish", Chinese: "土耳其语"},
	"ug": {Code: "ug", Name: "Uyghur", Chinese: "维吾尔语"},
	"uk": {Code: "uk", Name: "Ukrainian", Chinese: "乌克兰语"},
	"ur": {Code: "ur", Name: "Urdu", Chinese: "乌尔都语"},
	"vi": {Code: "vi", Name: "Vietnamese", Chinese: "越南语"},
	"zh": {Code: "zh", Name: "Chinese", Chinese: "中文"},
}

// Lookup resolves a language by code, BCP 47 tag or POSIX locale name
// ("en-US" and "zh_CN.UTF-8" resolve by their base language).
// "auto" resolves to Auto.
func Lookup(raw string) (Language, bool) {
	if strings.EqualFold(strings.TrimSpace(raw), Auto.Code) {
		return Auto, true
	}
	code, ok := baseCode(raw)
	if !ok {
		return Language{}, false
	}
	lang, ok := knownLanguages[code]
	return lang, ok
}

// Subset returns the catalog languages for codes, in the given order.
// Unknown codes are skipped.
func Subset(codes ...string) []Language {
	langs := make([]Language, 0, len(codes))
	for _, code := range codes {
		if lang, ok := knownLanguages[code]; ok {
			langs = append(langs, lang)
		}
	}
	return langs
}

// All returns every known language sorted by code. Auto is not included.
func All() []Language {
	langs := make([]Language, 0, len(knownLanguages))
	for _, lang := range knownLanguages {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool { return langs[i].Code < langs[j].Code })
	return langs
}

// Codes returns every known language code sorted.
func Codes() []string {
	all := All()
	codes := make([]string, 0, len(all))
	for _, lang := range all {
		codes = append(codes, lang.Code)
	}
	return codes
}

// Catalog supplies the process default language and the fixed fallback.
type Catalog struct {
	defaultLang Language
}

// NewCatalog resolves the process default language. A non-empty override
// (DEFAULT_LANGUAGE) wins over the process locale.
func NewCatalog(override string) *Catalog {
	return newCatalog(override, os.Getenv)
}

func newCatalog(override string, getenv func(string) string) *Catalog {
	if lang, ok := Lookup(override); ok && !lang.IsAuto() {
		return &Catalog{defaultLang: lang}
	}
	if lang, ok := parseLocale(localeFromEnv(getenv)); ok {
		return &Catalog{defaultLang: lang}
	}
	return &Catalog{defaultLang: English}
}

// Default returns the process default language.
func (c *Catalog) Default() Language {
	if c == nil {
		return English
	}
	return c.defaultLang
}

// Fallback returns the language used when the default is not supported.
func (c *Catalog) Fallback() Language {
	return English
}

func localeFromEnv(getenv func(string) string) string {
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
	}
	return ""
}

// parseLocale maps POSIX locale strings such as "zh_CN.UTF-8" to a known language.
func parseLocale(raw string) (Language, bool) {
	code, ok := baseCode(raw)
	if !ok {
		return Language{}, false
	}
	lang, ok := knownLanguages[code]
	return lang, ok
}

// baseCode returns the base language subtag of a tag or locale name.
func baseCode(raw string) (string, bool) {
	value := strings.TrimSpace(raw)
	if idx := strings.IndexAny(value, ".@"); idx >= 0 {
		value = value[:idx]
	}
	if value == "" || value == "C" || value == "POSIX" {
		return "", false
	}

	tag, err := xlanguage.Parse(strings.ReplaceAll(value, "_", "-"))
	if err != nil {
		return "", false
	}
	base, confidence := tag.Base()
	if confidence == xlanguage.No {
		return "", false
	}
	return base.String(), true
}
