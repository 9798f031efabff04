package index

import (
	"testing"

	"github.com/linkminder/linkminder/internal/domain"
)

func record(id, url string) *domain.LinkRecord {
	return &domain.LinkRecord{ID: id, URL: url}
}

func TestMemoryIndex_UpsertPrependsNewLinks(t *testing.T) {
	idx := NewMemoryIndex()
	idx.UpsertLink(record("a", "https://a.example/"))
	idx.UpsertLink(record("b", "https://b.example/"))

	links := idx.Links()
	if len(links) != 2 {
		t.Fatalf("count = %d, want 2", len(links))
	}
	if links[0].ID != "b" || links[1].ID != "a" {
		t.Errorf("order = [%s %s], want newest first [b a]", links[0].ID, links[1].ID)
	}
}

func TestMemoryIndex_UpsertKeepsPosition(t *testing.T) {
	idx := NewMemoryIndex()
	idx.UpsertLink(record("a", "https://a.example/"))
	idx.UpsertLink(record("b", "https://b.example/"))

	updated := record("a", "https://a.example/")
	updated.Note = "edited"
	idx.UpsertLink(updated)

	links := idx.Links()
	if links[1].ID != "a" || links[1].Note != "edited" {
		t.Errorf("update must replace in place, got %+v", links[1])
	}
	if len(links) != 2 {
		t.Errorf("update must not grow the index, count = %d", len(links))
	}
}

func TestMemoryIndex_Delete(t *testing.T) {
	idx := NewMemoryIndex()
	idx.UpsertLink(record("a", "https://a.example/"))
	idx.UpsertLink(record("b", "https://b.example/"))
	idx.DeleteLink("b")

	if idx.Count() != 1 {
		t.Fatalf("count = %d, want 1", idx.Count())
	}
	if _, ok := idx.GetLink("b"); ok {
		t.Error("deleted record still reachable")
	}
	if _, ok := idx.GetLink("a"); !ok {
		t.Error("remaining record lost")
	}
}

func TestMemoryIndex_ReplaceLinks(t *testing.T) {
	idx := NewMemoryIndex()
	idx.UpsertLink(record("old", "https://old.example/"))

	idx.ReplaceLinks([]*domain.LinkRecord{
		record("n2", "https://n2.example/"),
		record("n1", "https://n1.example/"),
	})

	links := idx.Links()
	if len(links) != 2 || links[0].ID != "n2" {
		t.Errorf("snapshot not replaced, got %v", links)
	}
	if idx.LastSync().IsZero() {
		t.Error("lastSync not recorded")
	}
}

func TestMemoryIndex_Rules(t *testing.T) {
	idx := NewMemoryIndex()
	idx.ReplaceRules([]domain.Rule{
		{ID: "r1", Category: domain.CategoryDev},
		{ID: "r2", Category: domain.CategoryNews},
	})

	rules := idx.Rules()
	if len(rules) != 2 || rules[0].ID != "r1" {
		t.Errorf("rules = %v, want declaration order kept", rules)
	}

	// Mutating the copy must not leak into the index.
	rules[0].ID = "mutated"
	if idx.Rules()[0].ID != "r1" {
		t.Error("Rules() must return a copy")
	}
}
