package ports

import (
	"context"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
)

// QuestionAnswerer is the inbound contract for the full QA pipeline.
type QuestionAnswerer interface {
	Process(ctx context.Context, question string) (*domain.AnswerResult, error)
}
