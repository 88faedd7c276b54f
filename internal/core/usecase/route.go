package usecase

import (
	"context"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
)

// Router builds the ordered, bounded queue of domains to search for one
// question: the primary pick, multi-label alternates when the classification
// is ambiguous, then the static expansion table. The cap is a hard stop.
type Router struct {
	classifier          *Classifier
	catalog             *domain.Catalog
	confidenceThreshold float64
	maxDomains          int
}

func NewRouter(classifier *Classifier, catalog *domain.Catalog, confidenceThreshold float64, maxDomains int) *Router {
	if confidenceThreshold <= 0 || confidenceThreshold > 1 {
		confidenceThreshold = 0.7
	}
	if maxDomains <= 0 {
		maxDomains = 3
	}
	return &Router{
		classifier:          classifier,
		catalog:             catalog,
		confidenceThreshold: confidenceThreshold,
		maxDomains:          maxDomains,
	}
}

func (r *Router) BuildQueue(ctx context.Context, question string, cls domain.ClassificationResult) []domain.Domain {
	queue := make([]domain.Domain, 0, r.maxDomains)
	seen := make(map[domain.Domain]struct{}, r.maxDomains)

	add := func(d domain.Domain) bool {
		if len(queue) == r.maxDomains {
			return false
		}
		if _, dup := seen[d]; dup {
			return true
		}
		seen[d] = struct{}{}
		queue = append(queue, d)
		return len(queue) < r.maxDomains
	}

	add(cls.Primary)

	if cls.Ambiguous(r.confidenceThreshold) && len(queue) < r.maxDomains {
		for _, d := range r.classifier.ClassifyMultiLabel(ctx, question, r.maxDomains) {
			if !add(d) {
				break
			}
		}
	}

	for _, d := range r.catalog.ExpansionFor(cls.Primary) {
		if !add(d) {
			break
		}
	}

	return queue
}
