package domain

// LinkCandidate is the ephemeral view of a page being saved. It is
// assembled per save from tab metadata plus the page inspector payload,
// consumed by the classifier and clusterer, and never persisted itself.
type LinkCandidate struct {
	URL           string
	Title         string
	Description   string
	SelectionText string

	// Keywords are the page's own meta-tag keywords, when the inspector
	// could read them. Descriptive only; keyword extraction for
	// clustering runs over the text fields, not this list.
	Keywords []string
}
