package collection

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/linkminder/linkminder/internal/classify"
	"github.com/linkminder/linkminder/internal/domain"
	"github.com/linkminder/linkminder/internal/logger"
)

// ExportDocument is the interchange envelope. Version guards future
// format changes; readers should refuse versions they do not know.
type ExportDocument struct {
	Version    int                  `json:"version"`
	ExportedAt time.Time            `json:"exportedAt"`
	Scope      Scope                `json:"scope"`
	Links      []*domain.LinkRecord `json:"links"`
}

// ExportVersion is the current interchange envelope version.
const ExportVersion = 1

// ImportSummary reports what an import actually did.
type ImportSummary struct {
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Skipped int `json:"skipped"`
}

// Export snapshots the records visible in the given scope. Archived
// records are included; archiving hides, it does not exclude.
func (c *Collection) Export(scope Scope) *ExportDocument {
	return &ExportDocument{
		Version:    ExportVersion,
		ExportedAt: c.now(),
		Scope:      scope,
		Links:      c.List(scope),
	}
}

// Import merges records from an exported document into the collection.
// Three payload shapes are accepted: the export envelope, an object
// with an "items" array, or a bare array of records. Records are
// matched by normalized URL; an incoming record overwrites an existing
// match except for its identity. Records without a URL are skipped,
// not fatal. The private argument is the target scope: every imported
// record gets that flag, regardless of what the file or an existing
// match says.
func (c *Collection) Import(ctx context.Context, payload []byte, private bool) (*ImportSummary, error) {
	incoming, err := parseImport(payload)
	if err != nil {
		return nil, err
	}

	byURL := make(map[string]*domain.LinkRecord, c.idx.Count())
	for _, record := range c.idx.Links() {
		byURL[record.URL] = record
	}

	summary := &ImportSummary{}
	now := c.now()
	for _, item := range incoming {
		rawURL := strings.TrimSpace(item.URL)
		if rawURL == "" {
			summary.Skipped++
			continue
		}
		item.URL = domain.NormalizeURL(rawURL)
		record := normalizeImported(item, now)
		record.Private = private

		if existing, ok := byURL[record.URL]; ok {
			record.ID = existing.ID
			record.UpdatedAt = now
			if err := c.links.UpdateLink(ctx, record); err != nil {
				return summary, err
			}
			summary.Updated++
		} else {
			if err := c.links.InsertLink(ctx, record); err != nil {
				return summary, err
			}
			summary.Added++
		}
		c.idx.UpsertLink(record)
		byURL[record.URL] = record
	}

	c.log.Info("import finished",
		logger.Int("added", summary.Added),
		logger.Int("updated", summary.Updated),
		logger.Int("skipped", summary.Skipped))
	return summary, nil
}

func parseImport(payload []byte) ([]*domain.LinkRecord, error) {
	var envelope struct {
		Links []*domain.LinkRecord `json:"links"`
		Items []*domain.LinkRecord `json:"items"`
	}
	if err := json.Unmarshal(payload, &envelope); err == nil {
		if envelope.Links != nil {
			return envelope.Links, nil
		}
		if envelope.Items != nil {
			return envelope.Items, nil
		}
	}

	var bare []*domain.LinkRecord
	if err := json.Unmarshal(payload, &bare); err == nil {
		return bare, nil
	}

	return nil, ErrBadImport
}

// normalizeImported fills the fields an exported record may lack so
// that everything downstream can rely on the full shape.
func normalizeImported(item *domain.LinkRecord, now time.Time) *domain.LinkRecord {
	record := *item
	if strings.TrimSpace(record.ID) == "" {
		record.ID = uuid.NewString()
	}
	if strings.TrimSpace(record.Title) == "" {
		record.Title = record.URL
	}
	record.Category = record.Category.OrDefault()
	if record.Tags == nil {
		record.Tags = []string{}
	}
	if record.Evidence == nil {
		record.Evidence = []string{}
	}
	if record.ClassifierVersion == 0 {
		record.ClassifierVersion = classify.Version
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}
	if record.UpdatedAt.IsZero() {
		record.UpdatedAt = now
	}
	if record.Source.Trigger == "" {
		record.Source.Trigger = "import"
	}
	if record.Source.SavedAt.IsZero() {
		record.Source.SavedAt = now
	}
	if record.Meta.Keywords == nil {
		record.Meta.Keywords = []string{}
	}
	if record.Meta.Domain == "" {
		record.Meta.Domain = domain.HostOf(record.URL)
	}
	return &record
}
