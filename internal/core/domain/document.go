package domain

// DocumentRef is a search hit before its content has been fetched.
type DocumentRef struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
}

// Document is a fully fetched candidate. RelevanceScore is zero until the
// assessor has scored it.
type Document struct {
	ID             string  `json:"id"`
	Title          string  `json:"title"`
	Domain         Domain  `json:"domain"`
	Content        string  `json:"content"`
	RelevanceScore float64 `json:"relevance_score"`
}

// RetrievalOutcome is the terminal state of the per-domain search loop:
// either Documents holds the relevant set from the first domain that produced
// one, or it is empty and only Searched carries information.
type RetrievalOutcome struct {
	Documents []Document `json:"documents"`
	Searched  []Domain   `json:"searched_domains"`
}

func (o RetrievalOutcome) Found() bool {
	return len(o.Documents) > 0
}
