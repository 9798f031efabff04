package domain

import "time"

// Cluster is the denormalized topic-cluster snapshot embedded in every
// member record. There is no separate cluster collection: each record
// carries its own copy, and snapshots are never retroactively updated
// when the cluster grows (deliberate trade-off, see assignment logic).
type Cluster struct {
	// ID is derived deterministically from category + keyword set at
	// creation time and stable thereafter.
	ID string `json:"id"`

	// Label is the human-readable cluster name (top one or two keywords,
	// or the category name).
	Label string `json:"label"`

	// Keywords is the bounded representative keyword set (at most 4,
	// deduplicated; may grow as members join).
	Keywords []string `json:"keywords"`

	// Size counts member links at the time this snapshot was taken.
	Size int `json:"size"`
}

// Meta holds descriptive, non-authoritative page context captured at save
// time. Nothing in here participates in identity or classification replay.
type Meta struct {
	Description   string   `json:"description"`
	SelectionText string   `json:"selectionText"`
	Keywords      []string `json:"keywords"`
	Domain        string   `json:"domain"`
	Favicon       string   `json:"favicon"`
	Title         string   `json:"title"`
}

// Source records save provenance: why and where the save happened.
type Source struct {
	Trigger  string    `json:"trigger"`
	TabID    int       `json:"tabId,omitempty"`
	WindowID int       `json:"windowId,omitempty"`
	SavedAt  time.Time `json:"savedAt"`
}

// LinkRecord is the persisted bookmark entity.
type LinkRecord struct {
	// ─────────────────────────────
	// Identity (immutable)
	// ─────────────────────────────

	// ID is generated once at first save and survives re-saves.
	ID string `json:"id"`

	// URL is the normalized URL (fragment stripped, default port
	// stripped). It is the dedup key: saving the same normalized URL
	// twice is an upsert, never a duplicate insert.
	URL string `json:"url"`

	// ─────────────────────────────
	// Classification
	// ─────────────────────────────

	Title      string   `json:"title"`
	Category   Category `json:"category"`
	Tags       []string `json:"tags"`
	Confidence float64  `json:"confidence"`

	// RuleID names the rule that won classification; nil means a
	// fallback heuristic produced the result.
	RuleID *string `json:"ruleId"`

	// Evidence lists human-readable matcher descriptions for the winning
	// classification. Debugging aid only; never parsed back.
	Evidence []string `json:"evidence"`

	// ClassifierVersion is the scoring-schema version the record was
	// classified under. Records below the current version are stale and
	// eligible for re-classification.
	ClassifierVersion int `json:"classifierVersion"`

	// Cluster is the embedded topic-cluster snapshot.
	Cluster *Cluster `json:"cluster"`

	// ─────────────────────────────
	// User state (sticky across re-saves)
	// ─────────────────────────────

	Archived bool   `json:"archived"`
	Private  bool   `json:"private"`
	Note     string `json:"note"`

	// ─────────────────────────────
	// Timestamps & context
	// ─────────────────────────────

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
	Meta      Meta      `json:"meta"`
	Source    Source    `json:"source"`
}
