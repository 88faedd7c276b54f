package usecase

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
)

const serviceUnavailableMessage = "The assistant is temporarily unable to answer questions. Please try again in a few minutes."

// QAService runs the full pipeline for one question:
// Classify -> Route -> Retrieve -> {DocumentAnswer | GenericCheck ->
// {GenericAnswer | Clarify}}. Every accepted question produces a structured
// AnswerResult; generation failures past retrieval fall onto a single
// degraded chain (re-classify, then a generic answer, then a fixed apology).
type QAService struct {
	classifier  *Classifier
	router      *Router
	retriever   *Retriever
	synthesizer *Synthesizer
}

func NewQAService(classifier *Classifier, router *Router, retriever *Retriever, synthesizer *Synthesizer) *QAService {
	return &QAService{
		classifier:  classifier,
		router:      router,
		retriever:   retriever,
		synthesizer: synthesizer,
	}
}

func (s *QAService) Process(ctx context.Context, question string) (*domain.AnswerResult, error) {
	q, err := domain.ValidateQuestion(question)
	if err != nil {
		return nil, err
	}

	result := &domain.AnswerResult{
		ID:        uuid.NewString(),
		Question:  q,
		CreatedAt: time.Now().UTC(),
	}

	cls := s.classifier.ClassifyPrimary(ctx, q)
	result.PrimaryDomain = cls.Primary
	result.Confidence = cls.Confidence

	queue := s.router.BuildQueue(ctx, q, cls)
	outcome := s.retriever.Retrieve(ctx, q, queue)
	result.SearchedDomains = outcome.Searched

	if outcome.Found() {
		answer, err := s.synthesizer.FromDocuments(ctx, q, outcome.Documents)
		if err != nil {
			return s.degrade(ctx, result, err), nil
		}
		result.Answer = answer
		result.Status = domain.StatusAnsweredWithDocuments
		result.Sources = sourceRefs(outcome.Documents)
		return result, nil
	}

	if s.classifier.IsGeneric(ctx, q) {
		answer, err := s.synthesizer.Generic(ctx, q)
		if err != nil {
			return s.degrade(ctx, result, err), nil
		}
		result.Answer = answer
		result.Status = domain.StatusAnsweredWithGeneralKnowledge
		return result, nil
	}

	answer, err := s.synthesizer.Clarification(ctx, q, outcome.Searched)
	if err != nil {
		return s.degrade(ctx, result, err), nil
	}
	result.Answer = answer
	result.Status = domain.StatusClarificationNeeded
	return result, nil
}

// degrade is the terminal failure chain: retry classification alone, attempt
// a generic answer, and fall back to a fixed apology when that also fails.
func (s *QAService) degrade(ctx context.Context, result *domain.AnswerResult, cause error) *domain.AnswerResult {
	slog.Warn("qa_degraded_path", "answer_id", result.ID, "cause", cause)

	if ctx.Err() != nil {
		result.Answer = serviceUnavailableMessage
		result.Status = domain.StatusError
		return result
	}

	cls := s.classifier.ClassifyPrimary(ctx, result.Question)
	result.PrimaryDomain = cls.Primary
	result.Confidence = cls.Confidence

	answer, err := s.synthesizer.Generic(ctx, result.Question)
	if err != nil {
		slog.Error("qa_degraded_generic_failed", "answer_id", result.ID, "error", err)
		result.Answer = serviceUnavailableMessage
		result.Status = domain.StatusServiceUnavailable
		return result
	}

	result.Answer = answer
	result.Status = domain.StatusDegradedGenericAnswer
	return result
}

func sourceRefs(docs []domain.Document) []domain.SourceRef {
	out := make([]domain.SourceRef, 0, len(docs))
	for _, doc := range docs {
		out = append(out, domain.SourceRef{
			ID:             doc.ID,
			Title:          doc.Title,
			Domain:         doc.Domain,
			RelevanceScore: doc.RelevanceScore,
		})
	}
	return out
}
