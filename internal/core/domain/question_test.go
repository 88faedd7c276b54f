package domain

import (
	"strings"
	"testing"
)

func TestValidateQuestionTrimsInput(t *testing.T) {
	q, err := ValidateQuestion("  how do I rotate Jenkins credentials  ")
	if err != nil {
		t.Fatalf("ValidateQuestion() error = %v", err)
	}
	if q != "how do I rotate Jenkins credentials" {
		t.Fatalf("expected trimmed question, got %q", q)
	}
}

func TestValidateQuestionEmpty(t *testing.T) {
	for _, raw := range []string{"", "   ", "\n\t"} {
		_, err := ValidateQuestion(raw)
		if err == nil {
			t.Fatalf("expected error for %q", raw)
		}
		if !IsKind(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	}
}

func TestValidateQuestionTooShort(t *testing.T) {
	_, err := ValidateQuestion("hey")
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestValidateQuestionTooLong(t *testing.T) {
	_, err := ValidateQuestion(strings.Repeat("a", MaxQuestionLen+1))
	if err == nil {
		t.Fatalf("expected error")
	}
	if !IsKind(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestValidateQuestionBoundaries(t *testing.T) {
	if _, err := ValidateQuestion(strings.Repeat("a", MinQuestionLen)); err != nil {
		t.Fatalf("minimum length question rejected: %v", err)
	}
	if _, err := ValidateQuestion(strings.Repeat("a", MaxQuestionLen)); err != nil {
		t.Fatalf("maximum length question rejected: %v", err)
	}
}

func TestValidateQuestionCountsCharactersNotBytes(t *testing.T) {
	// 3 characters, 9 bytes: under the minimum whatever the encoding.
	if _, err := ValidateQuestion("日本語"); err == nil {
		t.Fatalf("expected 3-character question to be rejected as too short")
	}

	// 400 characters, 1200 bytes: well inside the character bounds.
	if _, err := ValidateQuestion(strings.Repeat("語", 400)); err != nil {
		t.Fatalf("400-character multibyte question rejected: %v", err)
	}

	if _, err := ValidateQuestion(strings.Repeat("語", MaxQuestionLen+1)); err == nil {
		t.Fatalf("expected question over the character maximum to be rejected")
	}
}
