package translation

import "unicode/utf8"

// CheckContentLength rejects text longer than limit runes. A limit <= 0 disables the check.
func CheckContentLength(text string, limit int) error {
	if limit <= 0 {
		return nil
	}
	if length := utf8.RuneCountInString(text); length > limit {
		return &ContentLengthLimitError{Length: length, Limit: limit}
	}
	return nil
}
