package domain

import "time"

type AnswerStatus string

const (
	StatusAnsweredWithDocuments        AnswerStatus = "answered_with_documents"
	StatusAnsweredWithGeneralKnowledge AnswerStatus = "answered_with_general_knowledge"
	StatusClarificationNeeded          AnswerStatus = "clarification_needed"
	StatusDegradedGenericAnswer        AnswerStatus = "degraded_service_generic_answer"
	StatusServiceUnavailable           AnswerStatus = "service_unavailable"
	StatusError                        AnswerStatus = "error"
)

// SourceRef is one cited document in an answer.
type SourceRef struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Domain         Domain  `json:"domain"`
	RelevanceScore float64 `json:"relevance_score"`
}

// AnswerResult is the structured response every accepted question produces,
// whatever terminal state the pipeline reached.
type AnswerResult struct {
	ID              string       `json:"id"`
	Question        string       `json:"question"`
	Answer          string       `json:"answer"`
	Sources         []SourceRef  `json:"sources,omitempty"`
	PrimaryDomain   Domain       `json:"primary_domain"`
	Confidence      float64      `json:"confidence"`
	SearchedDomains []Domain     `json:"searched_domains,omitempty"`
	Status          AnswerStatus `json:"status"`
	CreatedAt       time.Time    `json:"created_at"`
}

// GenerationOptions are passed through to the text generation capability.
// A nil Temperature means the client default applies; an explicit zero is
// sent as zero.
type GenerationOptions struct {
	MaxTokens   int
	Temperature *float64
}

// Temperature wraps a literal for GenerationOptions so callers can pin an
// exact sampling temperature, including zero.
func Temperature(v float64) *float64 {
	return &v
}
