package integration

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/linkminder/linkminder/internal/classify"
	"github.com/linkminder/linkminder/internal/collection"
	"github.com/linkminder/linkminder/internal/domain"
	"github.com/linkminder/linkminder/internal/index"
	"github.com/linkminder/linkminder/internal/logger"
)

// memStore is an in-memory stand-in for the Redis store, newest-first
// like the real one.
type memStore struct {
	links []*domain.LinkRecord
	byURL map[string]string
	rules []domain.Rule
	pin   string
}

func newMemStore() *memStore {
	return &memStore{byURL: make(map[string]string)}
}

func (s *memStore) ListLinks(ctx context.Context) ([]*domain.LinkRecord, error) {
	out := make([]*domain.LinkRecord, len(s.links))
	copy(out, s.links)
	return out, nil
}

func (s *memStore) FindLinkByURL(ctx context.Context, url string) (*domain.LinkRecord, error) {
	id, ok := s.byURL[url]
	if !ok {
		return nil, nil
	}
	for _, link := range s.links {
		if link.ID == id {
			return link, nil
		}
	}
	return nil, nil
}

func (s *memStore) InsertLink(ctx context.Context, record *domain.LinkRecord) error {
	s.links = append([]*domain.LinkRecord{record}, s.links...)
	s.byURL[record.URL] = record.ID
	return nil
}

func (s *memStore) UpdateLink(ctx context.Context, record *domain.LinkRecord) error {
	for i, link := range s.links {
		if link.ID == record.ID {
			s.links[i] = record
			s.byURL[record.URL] = record.ID
			return nil
		}
	}
	return nil
}

func (s *memStore) DeleteLink(ctx context.Context, id string) error {
	for i, link := range s.links {
		if link.ID == id {
			delete(s.byURL, link.URL)
			s.links = append(s.links[:i], s.links[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memStore) ListRules(ctx context.Context) ([]domain.Rule, error) {
	out := make([]domain.Rule, len(s.rules))
	copy(out, s.rules)
	return out, nil
}

func (s *memStore) UpsertRule(ctx context.Context, rule *domain.Rule) error {
	for i := range s.rules {
		if s.rules[i].ID == rule.ID {
			s.rules[i] = *rule
			return nil
		}
	}
	s.rules = append(s.rules, *rule)
	return nil
}

func (s *memStore) DeleteRule(ctx context.Context, id string) error {
	for i := range s.rules {
		if s.rules[i].ID == id {
			s.rules = append(s.rules[:i], s.rules[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *memStore) GetPin(ctx context.Context) (string, error) { return s.pin, nil }

func (s *memStore) SetPin(ctx context.Context, pin string) error {
	s.pin = pin
	return nil
}

func newCollection(t *testing.T) *collection.Collection {
	t.Helper()
	store := newMemStore()
	log := logger.New("error", false)
	return collection.New(store, store, store, index.NewMemoryIndex(), classify.NewClassifier(log), log)
}

// TestSaveFlowScenarios walks realistic browsing sessions through the
// whole pipeline: classification, clustering, and upsert behavior.
func TestSaveFlowScenarios(t *testing.T) {
	tests := []struct {
		name         string
		saves        []collection.SaveRequest
		wantRecords  int
		wantCategory domain.Category // category of the last save
		description  string
	}{
		{
			name: "github repo lands in dev",
			saves: []collection.SaveRequest{
				{URL: "https://github.com/golang/go", Title: "golang/go"},
			},
			wantRecords:  1,
			wantCategory: domain.CategoryDev,
			description:  "Host match on the dev rule",
		},
		{
			name: "same page saved twice stays one record",
			saves: []collection.SaveRequest{
				{URL: "https://example.com/article#intro", Title: "Article"},
				{URL: "https://example.com:443/article", Title: "Article"},
			},
			wantRecords:  1,
			wantCategory: domain.CategoryOther,
			description:  "Fragment and default port normalize to the same URL",
		},
		{
			name: "youtube lands in video",
			saves: []collection.SaveRequest{
				{URL: "https://youtube.com/watch?v=abc", Title: "Some talk"},
			},
			wantRecords:  1,
			wantCategory: domain.CategoryVideo,
			description:  "Host match on the video rule",
		},
		{
			name: "distinct pages pile up",
			saves: []collection.SaveRequest{
				{URL: "https://a.example/one"},
				{URL: "https://b.example/two"},
				{URL: "https://c.example/three"},
			},
			wantRecords:  3,
			wantCategory: domain.CategoryOther,
			description:  "Different normalized URLs never collapse",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCollection(t)
			ctx := context.Background()

			var last *domain.LinkRecord
			for _, save := range tt.saves {
				record, err := c.Save(ctx, save)
				if err != nil {
					t.Fatalf("Save(%s): %v", save.URL, err)
				}
				last = record
			}

			if got := len(c.List(collection.ScopeAll)); got != tt.wantRecords {
				t.Errorf("%s: got %d records, want %d", tt.description, got, tt.wantRecords)
			}
			if last.Category != tt.wantCategory {
				t.Errorf("%s: last category = %q, want %q", tt.description, last.Category, tt.wantCategory)
			}
		})
	}
}

// TestClusterGrowthAcrossSession saves a run of related pages and
// checks that they gather into one growing cluster.
func TestClusterGrowthAcrossSession(t *testing.T) {
	c := newCollection(t)
	ctx := context.Background()

	saves := []collection.SaveRequest{
		{URL: "https://blog.example/rust-ownership", Title: "Rust ownership explained"},
		{URL: "https://blog.example/rust-lifetimes", Title: "Rust ownership and lifetimes"},
		{URL: "https://blog.example/rust-borrowing", Title: "Rust ownership borrowing rules"},
	}

	var clusterID string
	for i, save := range saves {
		record, err := c.Save(ctx, save)
		if err != nil {
			t.Fatalf("Save(%s): %v", save.URL, err)
		}
		if i == 0 {
			clusterID = record.Cluster.ID
			continue
		}
		if record.Cluster.ID != clusterID {
			t.Fatalf("save %d split into cluster %q, want %q", i, record.Cluster.ID, clusterID)
		}
		// Size comes from whichever snapshot won the similarity scan,
		// so it only ever moves up from the joined snapshot.
		if record.Cluster.Size < 2 {
			t.Errorf("save %d cluster size = %d, want at least 2", i, record.Cluster.Size)
		}
	}
}

// TestPrivateFlowEndToEnd exercises the PIN gate around the private
// view: save private, verify scoping, unlock with the PIN.
func TestPrivateFlowEndToEnd(t *testing.T) {
	c := newCollection(t)
	ctx := context.Background()

	if err := c.SetPin(ctx, "2580"); err != nil {
		t.Fatalf("SetPin: %v", err)
	}
	if _, err := c.Save(ctx, saveReq("https://public.example/a")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	private, err := c.Save(ctx, collection.SaveRequest{URL: "https://diary.example/entry", Private: true})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}

	if got := c.List(collection.ScopePublic); len(got) != 1 {
		t.Fatalf("public view holds %d records, want 1", len(got))
	}
	if err := c.RequirePin(ctx, "1111"); err != collection.ErrPinMismatch {
		t.Fatalf("wrong PIN error = %v, want ErrPinMismatch", err)
	}
	if err := c.RequirePin(ctx, "2580"); err != nil {
		t.Fatalf("correct PIN rejected: %v", err)
	}
	got := c.List(collection.ScopePrivate)
	if len(got) != 1 || got[0].ID != private.ID {
		t.Fatalf("private view = %d records", len(got))
	}
}

// TestExportImportAcrossCollections round-trips a collection through
// the interchange document into a fresh one.
func TestExportImportAcrossCollections(t *testing.T) {
	source := newCollection(t)
	ctx := context.Background()

	urls := []string{
		"https://github.com/golang/go",
		"https://news.example/markets",
		"https://blog.example/python-tutorial",
	}
	for _, url := range urls {
		if _, err := source.Save(ctx, saveReq(url)); err != nil {
			t.Fatalf("Save(%s): %v", url, err)
		}
	}

	payload, err := json.Marshal(source.Export(collection.ScopeAll))
	if err != nil {
		t.Fatalf("marshal export: %v", err)
	}

	target := newCollection(t)
	summary, err := target.Import(ctx, payload, false)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if summary.Added != len(urls) {
		t.Fatalf("imported %d records, want %d", summary.Added, len(urls))
	}

	sourceRecords := source.List(collection.ScopeAll)
	targetRecords := target.List(collection.ScopeAll)
	if len(sourceRecords) != len(targetRecords) {
		t.Fatalf("record count mismatch: %d vs %d", len(sourceRecords), len(targetRecords))
	}
	for i := range sourceRecords {
		if sourceRecords[i].URL != targetRecords[i].URL {
			t.Errorf("order or URL mismatch at %d: %q vs %q", i, sourceRecords[i].URL, targetRecords[i].URL)
		}
		if sourceRecords[i].Category != targetRecords[i].Category {
			t.Errorf("category lost for %s", sourceRecords[i].URL)
		}
	}
}

// saveReq is shorthand for a plain manual save of a URL.
func saveReq(url string) collection.SaveRequest {
	return collection.SaveRequest{URL: url}
}
