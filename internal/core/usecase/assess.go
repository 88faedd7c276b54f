package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
	"github.com/okondratev/devdocs-qa/internal/core/ports"
)

const (
	assessMaxTokens   = 200
	assessTemperature = 0.0
)

// Assessment is one scored candidate.
type Assessment struct {
	Document domain.Document
	Score    float64
	Relevant bool
}

// Assessor scores candidate documents against the question with one
// generation call per batch. Any parse failure, including a score count that
// does not match the input count, marks the whole batch not relevant.
type Assessor struct {
	generator ports.TextGenerator
	threshold float64

	batchDocChars  int
	singleDocChars int
}

func NewAssessor(generator ports.TextGenerator, threshold float64, batchDocChars, singleDocChars int) *Assessor {
	if threshold <= 0 || threshold > 1 {
		threshold = 0.7
	}
	if batchDocChars <= 0 {
		batchDocChars = 1000
	}
	if singleDocChars <= 0 {
		singleDocChars = 4000
	}
	return &Assessor{
		generator:      generator,
		threshold:      threshold,
		batchDocChars:  batchDocChars,
		singleDocChars: singleDocChars,
	}
}

func (a *Assessor) Threshold() float64 {
	return a.threshold
}

// AssessBatch returns one assessment per input document, sorted descending by
// score. It never fails: unusable generator output yields all-zero scores.
func (a *Assessor) AssessBatch(ctx context.Context, question string, docs []domain.Document) []Assessment {
	if len(docs) == 0 {
		return nil
	}

	scores := a.scoreDocuments(ctx, question, docs)

	out := make([]Assessment, 0, len(docs))
	for i, doc := range docs {
		doc.RelevanceScore = scores[i]
		out = append(out, Assessment{
			Document: doc,
			Score:    scores[i],
			Relevant: scores[i] >= a.threshold,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Score > out[j].Score
	})
	return out
}

func (a *Assessor) scoreDocuments(ctx context.Context, question string, docs []domain.Document) []float64 {
	if len(docs) == 1 {
		return []float64{a.scoreSingle(ctx, question, docs[0])}
	}

	raw, err := a.generator.Generate(ctx, buildBatchRelevancePrompt(question, docs, a.batchDocChars), domain.GenerationOptions{
		MaxTokens:   assessMaxTokens,
		Temperature: domain.Temperature(assessTemperature),
	})
	if err != nil {
		slog.Warn("relevance_generation_failed", "doc_count", len(docs), "error", err)
		return make([]float64, len(docs))
	}

	scores, err := parseScoreArray(raw, len(docs))
	if err != nil {
		slog.Warn("relevance_parse_failed", "doc_count", len(docs), "error", err)
		return make([]float64, len(docs))
	}
	return scores
}

func (a *Assessor) scoreSingle(ctx context.Context, question string, doc domain.Document) float64 {
	raw, err := a.generator.Generate(ctx, buildSingleRelevancePrompt(question, doc, a.singleDocChars), domain.GenerationOptions{
		MaxTokens:   assessMaxTokens,
		Temperature: domain.Temperature(assessTemperature),
	})
	if err != nil {
		slog.Warn("relevance_generation_failed", "doc_count", 1, "error", err)
		return 0
	}
	score, err := strconv.ParseFloat(firstNonEmptyLine(raw), 64)
	if err != nil {
		slog.Warn("relevance_parse_failed", "doc_count", 1, "error", err)
		return 0
	}
	return clamp01(score)
}

// parseScoreArray extracts a JSON numeric array from the raw response and
// requires exactly expected entries.
func parseScoreArray(raw string, expected int) ([]float64, error) {
	var scores []float64
	if err := json.Unmarshal([]byte(extractJSONArray(raw)), &scores); err != nil {
		return nil, fmt.Errorf("unmarshal score array: %w", err)
	}
	if len(scores) != expected {
		return nil, fmt.Errorf("score count mismatch: got %d, expected %d", len(scores), expected)
	}
	for i := range scores {
		scores[i] = clamp01(scores[i])
	}
	return scores, nil
}

func extractJSONArray(raw string) string {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start >= 0 && end > start {
		return raw[start : end+1]
	}
	return raw
}
