package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
	"github.com/okondratev/devdocs-qa/internal/core/ports"
)

// Synthesizer produces the final answer text: cited answers from relevant
// documents, general-knowledge answers, or clarification requests. Document
// sets whose aggregate content exceeds the context budget go through two-pass
// chunked synthesis to stay inside the generation capability's input window.
type Synthesizer struct {
	generator     ports.TextGenerator
	chunker       ports.Chunker
	contextBudget int
}

func NewSynthesizer(generator ports.TextGenerator, chunker ports.Chunker, contextBudget int) *Synthesizer {
	if contextBudget <= 0 {
		contextBudget = 6000
	}
	return &Synthesizer{
		generator:     generator,
		chunker:       chunker,
		contextBudget: contextBudget,
	}
}

func (s *Synthesizer) FromDocuments(ctx context.Context, question string, docs []domain.Document) (string, error) {
	if len(docs) == 0 {
		return "", fmt.Errorf("no documents to synthesize from")
	}

	total := 0
	for _, doc := range docs {
		total += len(doc.Content)
	}
	if total <= s.contextBudget {
		return s.generate(ctx, "answer", buildDocumentAnswerPrompt(question, docs))
	}
	return s.fromChunkedDocuments(ctx, question, docs)
}

// fromChunkedDocuments summarises each content chunk into an insight carrying
// the source document's [n] tag, then merges the insights in a second pass.
func (s *Synthesizer) fromChunkedDocuments(ctx context.Context, question string, docs []domain.Document) (string, error) {
	insights := make([]string, 0, len(docs))
	for i, doc := range docs {
		for _, chunk := range s.chunker.Split(doc.Content) {
			insight, err := s.generate(ctx, "insight", buildInsightPrompt(question, chunk, i+1))
			if err != nil {
				return "", err
			}
			if strings.EqualFold(strings.TrimSpace(insight), "none") {
				continue
			}
			insights = append(insights, insight)
		}
	}
	if len(insights) == 0 {
		insights = append(insights, "(no usable facts were extracted from the documents)")
	}
	return s.generate(ctx, "merge insights", buildInsightMergePrompt(question, insights))
}

func (s *Synthesizer) Generic(ctx context.Context, question string) (string, error) {
	return s.generate(ctx, "generic answer", buildGenericAnswerPrompt(question))
}

func (s *Synthesizer) Clarification(ctx context.Context, question string, searched []domain.Domain) (string, error) {
	return s.generate(ctx, "clarification", buildClarificationPrompt(question, searched))
}

func (s *Synthesizer) generate(ctx context.Context, operation, prompt string) (string, error) {
	text, err := s.generator.Generate(ctx, prompt, domain.GenerationOptions{})
	if err != nil {
		return "", domain.WrapError(domain.ErrGeneration, operation, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.WrapError(domain.ErrGeneration, operation, fmt.Errorf("empty generation result"))
	}
	return text, nil
}
