package usecase

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/okondratev/devdocs-qa/internal/core/domain"
)

func buildPrimaryClassificationPrompt(catalog *domain.Catalog, question string) string {
	return fmt.Sprintf(`You are a router for an internal documentation assistant.
Classify the question into exactly one of these domains:

%s

Respond with a single line in the form <Domain>:<confidence> where confidence
is a number from 0 to 1. No explanation, no extra lines.

Question:
%s`, catalogLines(catalog), question)
}

func buildMultiLabelClassificationPrompt(catalog *domain.Catalog, question string, maxDomains int) string {
	return fmt.Sprintf(`You are a router for an internal documentation assistant.
List up to %d domains from this set that could answer the question, most likely
first, as a single comma-separated line. Use only the domain names below.

%s

Question:
%s`, maxDomains, catalogLines(catalog), question)
}

func buildGenericCheckPrompt(question string) string {
	return fmt.Sprintf(`Decide whether the following question can be answered from general
software-engineering knowledge, without access to organisation-internal
documentation. Respond with a single word: yes or no.

Question:
%s`, question)
}

func buildBatchRelevancePrompt(question string, docs []domain.Document, perDocBudget int) string {
	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "Document %d (title: %s):\n%s\n\n", i+1, doc.Title, truncate(doc.Content, perDocBudget))
	}

	return fmt.Sprintf(`Score how well each document answers the question, from 0 to 1.
Respond with a JSON array of %d numbers, one per document in input order.
No markdown, no keys, no explanation.

Question:
%s

%s`, len(docs), question, b.String())
}

func buildSingleRelevancePrompt(question string, doc domain.Document, budget int) string {
	return fmt.Sprintf(`Score how well the document answers the question, from 0 to 1.
Respond with a single number. No explanation.

Question:
%s

Document (title: %s):
%s`, question, doc.Title, truncate(doc.Content, budget))
}

func buildDocumentAnswerPrompt(question string, docs []domain.Document) string {
	var b strings.Builder
	for i, doc := range docs {
		fmt.Fprintf(&b, "[%d] title=%s domain=%s score=%.2f\n%s\n\n", i+1, doc.Title, doc.Domain, doc.RelevanceScore, doc.Content)
	}

	return fmt.Sprintf(`Answer the question using only the documents below.
Cite documents inline with their [n] tag. If the documents do not contain some
needed information, say so explicitly instead of guessing.

Question:
%s

Documents:
%s`, question, b.String())
}

func buildInsightPrompt(question, chunk string, citation int) string {
	return fmt.Sprintf(`Extract from the excerpt only the facts that help answer the question,
as a short plain-text insight. Keep the [%d] tag with every fact you extract.
If nothing in the excerpt is useful, respond with the single word: none.

Question:
%s

Excerpt [%d]:
%s`, citation, question, citation, chunk)
}

func buildInsightMergePrompt(question string, insights []string) string {
	return fmt.Sprintf(`Combine the insights below into one coherent answer to the question.
Keep the [n] citation tags inline. If the insights leave part of the question
unanswered, say so explicitly.

Question:
%s

Insights:
%s`, question, strings.Join(insights, "\n"))
}

func buildGenericAnswerPrompt(question string) string {
	return fmt.Sprintf(`Answer the question from general software-engineering knowledge.
Where behaviour typically varies between organisations or installations, flag
it explicitly so the reader knows to check their internal setup.

Question:
%s`, question)
}

func buildClarificationPrompt(question string, searched []domain.Domain) string {
	names := make([]string, 0, len(searched))
	for _, d := range searched {
		names = append(names, string(d))
	}
	area := strings.Join(names, ", ")
	if area == "" {
		area = "(none)"
	}

	return fmt.Sprintf(`No relevant internal documentation was found for the question in these
documentation areas: %s.
Tell the user plainly that no answer was found, ask one or two clarifying
questions that would narrow the search, and suggest which other documentation
areas might apply.

Question:
%s`, area, question)
}

func catalogLines(catalog *domain.Catalog) string {
	var b strings.Builder
	for _, e := range catalog.Entries() {
		fmt.Fprintf(&b, "- %s: %s\n", e.Name, e.Description)
	}
	return b.String()
}

// truncate caps s at limit characters, never splitting a multibyte rune.
func truncate(s string, limit int) string {
	if limit <= 0 || len(s) <= limit {
		return s
	}
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
