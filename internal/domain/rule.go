package domain

// Rule is a declarative matcher mapped to a category and tags.
// Built-in rules are compiled into the binary; user rules are stored in the
// rule store and edited through the API. A Rule is scored against a link
// candidate by the classifier; any subset of matchers may be present.
type Rule struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is the stable unique identifier.
	// Built-in rule IDs are fixed strings ("dev-github"); user rule IDs
	// are generated on creation.
	ID string `json:"id"`

	// Label is the human-readable name shown in the rule editor.
	Label string `json:"label,omitempty"`

	// ─────────────────────────────
	// Outcome
	// ─────────────────────────────

	// Category assigned when this rule wins.
	Category Category `json:"category"`

	// Tags attached when this rule wins.
	Tags []string `json:"tags,omitempty"`

	// ─────────────────────────────
	// Matchers (each optional)
	// ─────────────────────────────

	// HostIncludes matches when any fragment is a case-insensitive
	// substring of the URL hostname.
	HostIncludes []string `json:"hostIncludes,omitempty"`

	// PathIncludes matches when any fragment is a case-sensitive
	// substring of the URL path.
	PathIncludes []string `json:"pathIncludes,omitempty"`

	// Keywords matches when any entry is a case-insensitive substring
	// of the combined title/description/selection text.
	Keywords []string `json:"keywords,omitempty"`

	// Regex is a pattern tested against the full URL, always
	// case-insensitive. An invalid pattern scores zero; it never aborts
	// classification.
	Regex string `json:"regex,omitempty"`
}

// HasMatchers reports whether the rule carries at least one matcher.
// The rule store rejects matcher-less rules; the classifier tolerates
// them anyway (they score zero and stay inert).
func (r *Rule) HasMatchers() bool {
	return len(r.HostIncludes) > 0 ||
		len(r.PathIncludes) > 0 ||
		len(r.Keywords) > 0 ||
		r.Regex != ""
}
