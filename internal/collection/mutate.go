package collection

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/linkminder/linkminder/internal/classify"
	"github.com/linkminder/linkminder/internal/domain"
	"github.com/linkminder/linkminder/internal/logger"
)

// Delete removes a record permanently.
func (c *Collection) Delete(ctx context.Context, id string) error {
	if _, ok := c.idx.GetLink(id); !ok {
		return ErrNotFound
	}
	if err := c.links.DeleteLink(ctx, id); err != nil {
		return err
	}
	c.idx.DeleteLink(id)
	c.log.Info("link deleted", logger.String("id", id))
	return nil
}

// ToggleArchive flips the archived flag and returns the updated record.
func (c *Collection) ToggleArchive(ctx context.Context, id string) (*domain.LinkRecord, error) {
	return c.mutate(ctx, id, func(record *domain.LinkRecord) {
		record.Archived = !record.Archived
	})
}

// TogglePrivate flips the private flag and returns the updated record.
func (c *Collection) TogglePrivate(ctx context.Context, id string) (*domain.LinkRecord, error) {
	return c.mutate(ctx, id, func(record *domain.LinkRecord) {
		record.Private = !record.Private
	})
}

// UpdateNote replaces the free-form note on a record.
func (c *Collection) UpdateNote(ctx context.Context, id, note string) (*domain.LinkRecord, error) {
	return c.mutate(ctx, id, func(record *domain.LinkRecord) {
		record.Note = note
	})
}

func (c *Collection) mutate(ctx context.Context, id string, apply func(*domain.LinkRecord)) (*domain.LinkRecord, error) {
	current, ok := c.idx.GetLink(id)
	if !ok {
		return nil, ErrNotFound
	}
	updated := *current
	apply(&updated)
	updated.UpdatedAt = c.now()
	if err := c.links.UpdateLink(ctx, &updated); err != nil {
		return nil, err
	}
	c.idx.UpsertLink(&updated)
	return &updated, nil
}

// Reclassify re-runs the current classifier over every record written
// by an older classifier version. Clusters are left as assigned;
// membership never re-forms retroactively. Returns how many records
// were rewritten.
func (c *Collection) Reclassify(ctx context.Context) (int, error) {
	rules := c.idx.Rules()
	updated := 0
	for _, record := range c.idx.Links() {
		if record.ClassifierVersion >= classify.Version {
			continue
		}
		candidate := domain.LinkCandidate{
			URL:           record.URL,
			Title:         record.Title,
			Description:   record.Meta.Description,
			SelectionText: record.Meta.SelectionText,
			Keywords:      record.Meta.Keywords,
		}
		result := c.classifier.Classify(candidate, rules)

		next := *record
		next.Category = result.Category
		next.Tags = result.Tags
		next.Confidence = result.Confidence
		next.RuleID = result.RuleID
		next.Evidence = result.Evidence
		next.ClassifierVersion = classify.Version
		next.UpdatedAt = c.now()
		if err := c.links.UpdateLink(ctx, &next); err != nil {
			return updated, err
		}
		c.idx.UpsertLink(&next)
		updated++
	}
	if updated > 0 {
		c.log.Info("stale records reclassified", logger.Int("count", updated))
	}
	return updated, nil
}

// UpsertRule validates and persists a user-defined rule. Rules with no
// matcher at all are rejected; they could never score.
func (c *Collection) UpsertRule(ctx context.Context, rule *domain.Rule) (*domain.Rule, error) {
	rule.Category = rule.Category.OrDefault()
	if !rule.HasMatchers() {
		return nil, ErrInvalidRule
	}
	if strings.TrimSpace(rule.ID) == "" {
		rule.ID = "rule-" + uuid.NewString()
	}
	if err := c.rules.UpsertRule(ctx, rule); err != nil {
		return nil, err
	}
	if err := c.refreshRules(ctx); err != nil {
		return nil, err
	}
	c.log.Info("rule upserted", logger.String("id", rule.ID))
	return rule, nil
}

// DeleteRule removes a user-defined rule. Built-in rules cannot be
// deleted; they never pass through the rule store.
func (c *Collection) DeleteRule(ctx context.Context, id string) error {
	if err := c.rules.DeleteRule(ctx, id); err != nil {
		return err
	}
	if err := c.refreshRules(ctx); err != nil {
		return err
	}
	c.log.Info("rule deleted", logger.String("id", id))
	return nil
}

// CustomRules returns the user-defined rules in declaration order.
func (c *Collection) CustomRules() []domain.Rule {
	return c.idx.Rules()
}

func (c *Collection) refreshRules(ctx context.Context) error {
	rules, err := c.rules.ListRules(ctx)
	if err != nil {
		return err
	}
	c.idx.ReplaceRules(rules)
	return nil
}
