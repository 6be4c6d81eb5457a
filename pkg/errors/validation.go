package errors

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Request bounds enforced before any search runs.
const (
	MaxWords      = 5
	MaxWordLength = 20
)

// ValidateWordList checks a generation request against the request bounds.
// It is cheap and synchronous so callers can reject oversized input before
// committing any search budget. Messages are phrased for end users and are
// returned verbatim by the HTTP boundary.
func ValidateWordList(words []string) error {
	if len(words) == 0 {
		return New(ErrCodeBadRequest, "No words provided!")
	}
	if len(words) > MaxWords {
		return New(ErrCodeBadRequest, "Too many words! (maximum of %d)", MaxWords)
	}
	for _, w := range words {
		if utf8.RuneCountInString(w) > MaxWordLength {
			return New(ErrCodeBadRequest, "Words too long! (max length %d)", MaxWordLength)
		}
	}
	for _, w := range words {
		if err := ValidateWordText(w); err != nil {
			return New(ErrCodeBadRequest, "%s", UserMessage(err))
		}
	}
	return nil
}

// ValidateWordText validates the text of a single word.
// Empty words and words containing whitespace or control characters are rejected.
func ValidateWordText(text string) error {
	if strings.TrimSpace(text) == "" {
		return New(ErrCodeInvalidWord, "word cannot be empty")
	}
	for _, r := range text {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidWord, "word %q contains whitespace or control characters", text)
		}
	}
	return nil
}
