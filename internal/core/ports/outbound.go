package ports

import (
	"context"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
)

// TextGenerator wraps the opaque text generation capability.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string, opts domain.GenerationOptions) (string, error)
}

// DocumentSearcher queries domain-specific documentation endpoints.
type DocumentSearcher interface {
	Search(ctx context.Context, d domain.Domain, query string, maxResults int) ([]domain.DocumentRef, error)
	FetchContent(ctx context.Context, d domain.Domain, id string) (string, error)
}

// Chunker splits oversized document content into overlapping windows.
type Chunker interface {
	Split(text string) []string
}

// AnswerLog persists finished answer results for later retrieval.
type AnswerLog interface {
	Save(ctx context.Context, result *domain.AnswerResult) error
	GetByID(ctx context.Context, id string) (*domain.AnswerResult, error)
}

// MessageQueue publishes/consumes asynchronously submitted questions.
type MessageQueue interface {
	PublishQuestionSubmitted(ctx context.Context, answerID, question string) error
	SubscribeQuestionSubmitted(ctx context.Context, handler func(ctx context.Context, answerID, question string) error) error
}
