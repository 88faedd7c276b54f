package usecase

import (
	"context"
	"log/slog"
	"strings"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
	"github.com/okondratev/devdocs-qa/internal/core/ports"
)

// Retriever drives the per-domain search loop: search, fetch content, assess,
// stop at the first domain that yields at least one relevant document. Search
// transport failures count as empty results for that domain; the queue is
// never aborted early by an error.
type Retriever struct {
	searcher   ports.DocumentSearcher
	assessor   *Assessor
	maxResults int
}

func NewRetriever(searcher ports.DocumentSearcher, assessor *Assessor, maxResults int) *Retriever {
	if maxResults <= 0 {
		maxResults = 5
	}
	return &Retriever{
		searcher:   searcher,
		assessor:   assessor,
		maxResults: maxResults,
	}
}

func (r *Retriever) Retrieve(ctx context.Context, question string, queue []domain.Domain) domain.RetrievalOutcome {
	outcome := domain.RetrievalOutcome{
		Searched: make([]domain.Domain, 0, len(queue)),
	}

	for _, d := range queue {
		// Recorded before the call so clarification messaging covers
		// domains that failed or returned nothing.
		outcome.Searched = append(outcome.Searched, d)

		refs, err := r.searcher.Search(ctx, d, question, r.maxResults)
		if err != nil {
			slog.Warn("domain_search_failed", "domain", d, "error", err)
			continue
		}
		if len(refs) == 0 {
			continue
		}

		docs := r.fetchCandidates(ctx, d, refs)
		if len(docs) == 0 {
			continue
		}

		relevant := make([]domain.Document, 0, len(docs))
		for _, assessment := range r.assessor.AssessBatch(ctx, question, docs) {
			if assessment.Relevant {
				relevant = append(relevant, assessment.Document)
			}
		}
		if len(relevant) > 0 {
			outcome.Documents = relevant
			return outcome
		}
	}

	return outcome
}

func (r *Retriever) fetchCandidates(ctx context.Context, d domain.Domain, refs []domain.DocumentRef) []domain.Document {
	docs := make([]domain.Document, 0, len(refs))
	for _, ref := range refs {
		content, err := r.searcher.FetchContent(ctx, d, ref.ID)
		if err != nil {
			slog.Warn("document_fetch_failed", "domain", d, "document_id", ref.ID, "error", err)
			continue
		}
		if strings.TrimSpace(content) == "" {
			continue
		}
		docs = append(docs, domain.Document{
			ID:      ref.ID,
			Title:   ref.Title,
			Domain:  d,
			Content: content,
		})
	}
	return docs
}
