package domain

// ClassificationResult is the primary routing decision for one question.
type ClassificationResult struct {
	Primary    Domain  `json:"primary_domain"`
	Confidence float64 `json:"confidence"`
}

// Ambiguous reports whether the confidence is below the given threshold, in
// which case the router widens the queue with multi-label alternates.
func (c ClassificationResult) Ambiguous(threshold float64) bool {
	return c.Confidence < threshold
}
