package usecase

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
)

func TestTruncateKeepsRuneBoundaries(t *testing.T) {
	got := truncate(strings.Repeat("語", 20), 10)
	if utf8.RuneCountInString(got) != 10 {
		t.Fatalf("expected 10 characters, got %d", utf8.RuneCountInString(got))
	}
	if !utf8.ValidString(got) {
		t.Fatalf("truncated string is not valid UTF-8: %q", got)
	}

	if got := truncate("short", 10); got != "short" {
		t.Fatalf("string under the limit must be unchanged, got %q", got)
	}
	if got := truncate("abcdef", 3); got != "abc" {
		t.Fatalf("expected %q, got %q", "abc", got)
	}
}

func TestBatchRelevancePromptStaysValidUTF8(t *testing.T) {
	docs := []domain.Document{
		{ID: "d1", Title: "runbook", Content: strings.Repeat("サービス再起動", 50)},
		{ID: "d2", Title: "guide", Content: strings.Repeat("x", 50)},
	}

	prompt := buildBatchRelevancePrompt("how do I restart the service", docs, 25)
	if !utf8.ValidString(prompt) {
		t.Fatalf("prompt carries invalid UTF-8")
	}
}
