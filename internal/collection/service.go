package collection

import (
	"context"
	"errors"
	"time"

	"github.com/linkminder/linkminder/internal/classify"
	"github.com/linkminder/linkminder/internal/domain"
	"github.com/linkminder/linkminder/internal/index"
	"github.com/linkminder/linkminder/internal/logger"
)

// User-facing rejections. Operations failing with one of these abort
// cleanly with no partial writes; the caller decides whether to retry.
var (
	ErrUnsavableTab = errors.New("tab has no savable URL")
	ErrNotFound     = errors.New("link not found")
	ErrPinMismatch  = errors.New("pin mismatch")
	ErrInvalidRule  = errors.New("rule must declare a category and at least one matcher")
	ErrBadImport    = errors.New("import payload is not a recognized format")
)

// LinkStore is the persistence collaborator for link records.
// ListLinks must return records newest-first; that ordering is part of
// the clusterer's tie-break contract.
type LinkStore interface {
	ListLinks(ctx context.Context) ([]*domain.LinkRecord, error)
	FindLinkByURL(ctx context.Context, normalizedURL string) (*domain.LinkRecord, error)
	InsertLink(ctx context.Context, record *domain.LinkRecord) error
	UpdateLink(ctx context.Context, record *domain.LinkRecord) error
	DeleteLink(ctx context.Context, id string) error
}

// RuleStore is the persistence collaborator for user-defined rules.
// The classifier consumes the list read-only, in declaration order.
type RuleStore interface {
	ListRules(ctx context.Context) ([]domain.Rule, error)
	UpsertRule(ctx context.Context, rule *domain.Rule) error
	DeleteRule(ctx context.Context, id string) error
}

// PinStore persists the private-view PIN.
type PinStore interface {
	GetPin(ctx context.Context) (string, error)
	SetPin(ctx context.Context, pin string) error
}

// Collection orchestrates the save pipeline and every mutation of the
// link collection: classification, cluster assignment, upsert-by-URL,
// note/archive/private edits, rule CRUD, PIN handling and
// export/import. Reads go through the in-memory index; writes hit the
// store first and are mirrored into the index.
//
// Storage reads and the clustering scan are not transactional: two
// concurrent saves may compute clusters against the same snapshot and
// the second write wins. Accepted; the clusterer is eventually
// consistent, not linearizable.
type Collection struct {
	links      LinkStore
	rules      RuleStore
	pins       PinStore
	idx        *index.MemoryIndex
	classifier *classify.Classifier
	log        logger.Logger
	now        func() time.Time
}

func New(links LinkStore, rules RuleStore, pins PinStore, idx *index.MemoryIndex, classifier *classify.Classifier, log logger.Logger) *Collection {
	return &Collection{
		links:      links,
		rules:      rules,
		pins:       pins,
		idx:        idx,
		classifier: classifier,
		log:        log,
		now:        time.Now,
	}
}

// WithClock overrides the clock, for tests.
func (c *Collection) WithClock(now func() time.Time) *Collection {
	c.now = now
	return c
}

// Sync reloads the index snapshot from the stores.
func (c *Collection) Sync(ctx context.Context) error {
	links, err := c.links.ListLinks(ctx)
	if err != nil {
		return err
	}
	rules, err := c.rules.ListRules(ctx)
	if err != nil {
		return err
	}
	c.idx.ReplaceLinks(links)
	c.idx.ReplaceRules(rules)
	c.log.Debug("index synced from store",
		logger.Int("links", len(links)),
		logger.Int("rules", len(rules)))
	return nil
}

// Scope selects which records an operation covers.
type Scope string

const (
	ScopePublic  Scope = "public"
	ScopePrivate Scope = "private"
	ScopeAll     Scope = "all"
)

// List returns the newest-first records visible in the given scope.
func (c *Collection) List(scope Scope) []*domain.LinkRecord {
	links := c.idx.Links()
	out := make([]*domain.LinkRecord, 0, len(links))
	for _, link := range links {
		switch scope {
		case ScopePrivate:
			if !link.Private {
				continue
			}
		case ScopeAll:
		default:
			if link.Private {
				continue
			}
		}
		out = append(out, link)
	}
	return out
}

// Get returns one record by ID.
func (c *Collection) Get(id string) (*domain.LinkRecord, error) {
	record, ok := c.idx.GetLink(id)
	if !ok {
		return nil, ErrNotFound
	}
	return record, nil
}
