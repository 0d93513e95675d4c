package translation

import (
	"errors"
	"fmt"

	"horse.fit/translate/internal/language"
)

var (
	ErrTranslatorNotFound = errors.New("translator not found")
	ErrUnknownLanguage    = errors.New("unknown language")
)

// ErrorInfo is a localized, user-presentable summary of a translation fault.
type ErrorInfo struct {
	Message string `json:"message"`
}

// TranslateError is the only error type Translate returns for faults it can describe.
// Cause is the original fault.
type TranslateError struct {
	TranslatorID   string
	TranslatorName string
	Info           ErrorInfo
	Cause          error
}

func (e *TranslateError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", e.TranslatorName, e.Info.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.TranslatorName, e.Info.Message, e.Cause)
}

func (e *TranslateError) Unwrap() error {
	return e.Cause
}

// ContentLengthLimitError reports text longer than a translator accepts.
type ContentLengthLimitError struct {
	Length int
	Limit  int
}

func (e *ContentLengthLimitError) Error() string {
	return fmt.Sprintf("text length %d exceeds limit %d", e.Length, e.Limit)
}

// UnsupportedLanguageError reports a language the translator cannot handle.
type UnsupportedLanguageError struct {
	Lang language.Language
}

func (e *UnsupportedLanguageError) Error() string {
	return fmt.Sprintf("unsupported language: %s (%s)", e.Lang.Name, e.Lang.Code)
}

// HTTPStatusError reports a non-2xx response from a translation service.
type HTTPStatusError struct {
	StatusCode int
	Body       string
}

func (e *HTTPStatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("translation endpoint status %d", e.StatusCode)
	}
	return fmt.Sprintf("translation endpoint status %d: %s", e.StatusCode, e.Body)
}

// IOError reports a failed read or write that is neither a network nor a protocol fault.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	if e.Err == nil {
		return e.Op
	}
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
