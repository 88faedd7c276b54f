package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	MinQuestionLen = 5
	MaxQuestionLen = 1000
)

// ValidateQuestion trims the raw input and enforces the accepted length range.
// Bounds are character counts, not bytes, so multibyte questions measure the
// way a user counts them. The returned string is the canonical form used by
// the rest of the pipeline.
func ValidateQuestion(raw string) (string, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", WrapError(ErrInvalidInput, "validate question", fmt.Errorf("question is empty"))
	}
	length := utf8.RuneCountInString(q)
	if length < MinQuestionLen {
		return "", WrapError(ErrInvalidInput, "validate question", fmt.Errorf("question too short: %d chars, minimum %d", length, MinQuestionLen))
	}
	if length > MaxQuestionLen {
		return "", WrapError(ErrInvalidInput, "validate question", fmt.Errorf("question too long: %d chars, maximum %d", length, MaxQuestionLen))
	}
	return q, nil
}
