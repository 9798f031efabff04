package collection

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/linkminder/linkminder/internal/classify"
	"github.com/linkminder/linkminder/internal/domain"
	"github.com/linkminder/linkminder/internal/logger"
)

// PageContext is the best-effort content snapshot shipped alongside a
// save request. Clients that could not inspect the page send nothing;
// every field degrades to empty and the save proceeds on URL and title
// alone.
type PageContext struct {
	Description   string   `json:"description"`
	SelectionText string   `json:"selectionText"`
	Keywords      []string `json:"keywords"`
}

// SaveRequest describes one tab to capture.
type SaveRequest struct {
	URL      string       `json:"url"`
	Title    string       `json:"title"`
	Favicon  string       `json:"favicon"`
	TabID    int          `json:"tabId"`
	WindowID int          `json:"windowId"`
	Trigger  string       `json:"trigger"`
	Private  bool         `json:"makePrivate"`
	Page     *PageContext `json:"page"`
}

// Save runs the full capture pipeline for one tab: validate, classify,
// assign a cluster against the current snapshot, then upsert by
// normalized URL. Re-saving a known URL keeps its identity and its
// user-owned state (id, createdAt, archived, private, note) and
// refreshes everything derived.
func (c *Collection) Save(ctx context.Context, req SaveRequest) (*domain.LinkRecord, error) {
	rawURL := strings.TrimSpace(req.URL)
	if rawURL == "" || domain.IsInternalURL(rawURL) {
		return nil, ErrUnsavableTab
	}

	page := req.Page
	if page == nil {
		page = &PageContext{}
	}

	trigger := req.Trigger
	if trigger == "" {
		trigger = "manual"
	}

	normalized := domain.NormalizeURL(rawURL)
	candidate := domain.LinkCandidate{
		URL:           normalized,
		Title:         req.Title,
		Description:   page.Description,
		SelectionText: page.SelectionText,
		Keywords:      page.Keywords,
	}

	result := c.classifier.Classify(candidate, c.idx.Rules())
	cluster := classify.AssignCluster(candidate, result.Category, c.idx.Links())

	title := strings.TrimSpace(req.Title)
	if title == "" {
		if host := domain.HostOf(normalized); host != "" {
			title = host
		} else {
			title = normalized
		}
	}

	pageKeywords := page.Keywords
	if pageKeywords == nil {
		pageKeywords = []string{}
	}

	now := c.now()
	record := &domain.LinkRecord{
		ID:                uuid.NewString(),
		URL:               normalized,
		Title:             title,
		Category:          result.Category,
		Tags:              result.Tags,
		Confidence:        result.Confidence,
		RuleID:            result.RuleID,
		Evidence:          result.Evidence,
		ClassifierVersion: classify.Version,
		Cluster:           &cluster,
		Private:           req.Private,
		CreatedAt:         now,
		UpdatedAt:         now,
		Meta: domain.Meta{
			Description:   page.Description,
			SelectionText: page.SelectionText,
			Keywords:      pageKeywords,
			Domain:        domain.HostOf(normalized),
			Favicon:       req.Favicon,
			Title:         req.Title,
		},
		Source: domain.Source{
			Trigger:  trigger,
			TabID:    req.TabID,
			WindowID: req.WindowID,
			SavedAt:  now,
		},
	}

	existing, err := c.links.FindLinkByURL(ctx, normalized)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
		record.Archived = existing.Archived
		record.Private = existing.Private || req.Private
		record.Note = existing.Note
		if err := c.links.UpdateLink(ctx, record); err != nil {
			return nil, err
		}
	} else {
		if err := c.links.InsertLink(ctx, record); err != nil {
			return nil, err
		}
	}
	c.idx.UpsertLink(record)

	c.log.Info("link saved",
		logger.String("id", record.ID),
		logger.String("category", string(record.Category)),
		logger.String("cluster", record.Cluster.ID),
		logger.Bool("updated", existing != nil))
	return record, nil
}
