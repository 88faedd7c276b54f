package usecase

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
	"github.com/okondratev/devdocs-qa/internal/core/ports"
)

const (
	fallbackConfidence = 0.1

	classifyMaxTokens   = 50
	classifyTemperature = 0.0
)

// Classifier maps questions onto the closed domain catalogue. It never fails:
// malformed or missing generator output degrades to the first catalogue domain
// at low confidence.
type Classifier struct {
	generator ports.TextGenerator
	catalog   *domain.Catalog
	cutoff    float64
}

func NewClassifier(generator ports.TextGenerator, catalog *domain.Catalog, matchCutoff float64) *Classifier {
	if matchCutoff <= 0 || matchCutoff > 1 {
		matchCutoff = 0.6
	}
	return &Classifier{
		generator: generator,
		catalog:   catalog,
		cutoff:    matchCutoff,
	}
}

func (c *Classifier) fallback() domain.ClassificationResult {
	return domain.ClassificationResult{
		Primary:    c.catalog.Default(),
		Confidence: fallbackConfidence,
	}
}

// ClassifyPrimary returns the single best domain with a confidence score.
func (c *Classifier) ClassifyPrimary(ctx context.Context, question string) domain.ClassificationResult {
	raw, err := c.generator.Generate(ctx, buildPrimaryClassificationPrompt(c.catalog, question), domain.GenerationOptions{
		MaxTokens:   classifyMaxTokens,
		Temperature: domain.Temperature(classifyTemperature),
	})
	if err != nil {
		slog.Warn("classification_generation_failed", "error", err)
		return c.fallback()
	}
	return c.parsePrimary(raw)
}

func (c *Classifier) parsePrimary(raw string) domain.ClassificationResult {
	line := firstNonEmptyLine(raw)
	name, confRaw, hasConf := strings.Cut(line, ":")

	d, ok := c.resolveDomain(name)
	if !ok {
		slog.Warn("classification_unresolved_domain", "raw", line)
		return c.fallback()
	}

	confidence := fallbackConfidence
	if hasConf {
		parsed, err := strconv.ParseFloat(strings.TrimSpace(confRaw), 64)
		if err == nil {
			confidence = clamp01(parsed)
		}
	}
	return domain.ClassificationResult{Primary: d, Confidence: confidence}
}

// ClassifyMultiLabel returns up to maxDomains ranked alternates. Unresolvable
// names are skipped; a failed generation yields an empty list.
func (c *Classifier) ClassifyMultiLabel(ctx context.Context, question string, maxDomains int) []domain.Domain {
	if maxDomains <= 0 {
		return nil
	}
	raw, err := c.generator.Generate(ctx, buildMultiLabelClassificationPrompt(c.catalog, question, maxDomains), domain.GenerationOptions{
		MaxTokens:   classifyMaxTokens,
		Temperature: domain.Temperature(classifyTemperature),
	})
	if err != nil {
		slog.Warn("multilabel_generation_failed", "error", err)
		return nil
	}

	out := make([]domain.Domain, 0, maxDomains)
	seen := make(map[domain.Domain]struct{}, maxDomains)
	for _, part := range strings.Split(firstNonEmptyLine(raw), ",") {
		d, ok := c.resolveDomain(part)
		if !ok {
			continue
		}
		if _, dup := seen[d]; dup {
			continue
		}
		seen[d] = struct{}{}
		out = append(out, d)
		if len(out) == maxDomains {
			break
		}
	}
	return out
}

// IsGeneric reports whether the question is answerable from general knowledge.
// Generation failure counts as non-generic so the pipeline proceeds to the
// clarification branch.
func (c *Classifier) IsGeneric(ctx context.Context, question string) bool {
	raw, err := c.generator.Generate(ctx, buildGenericCheckPrompt(question), domain.GenerationOptions{
		MaxTokens:   classifyMaxTokens,
		Temperature: domain.Temperature(classifyTemperature),
	})
	if err != nil {
		slog.Warn("generic_check_generation_failed", "error", err)
		return false
	}
	answer := strings.ToLower(firstNonEmptyLine(raw))
	return answer == "yes" || strings.HasPrefix(answer, "yes")
}

// resolveDomain matches a raw name against the catalogue: exact first, then
// the closest fuzzy match at or above the cutoff.
func (c *Classifier) resolveDomain(name string) (domain.Domain, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if d, ok := c.catalog.Resolve(name); ok {
		return d, true
	}

	best := domain.Domain("")
	bestScore := 0.0
	for _, e := range c.catalog.Entries() {
		score := nameSimilarity(name, string(e.Name))
		if score > bestScore {
			best = e.Name
			bestScore = score
		}
	}
	if bestScore >= c.cutoff {
		return best, true
	}
	return "", false
}

func firstNonEmptyLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			return line
		}
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
