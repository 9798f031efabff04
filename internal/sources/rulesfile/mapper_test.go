package rulesfile

import (
	"testing"

	"github.com/linkminder/linkminder/internal/domain"
)

func TestMapperMapRules(t *testing.T) {
	config := &RulesConfig{
		Rules: []RuleEntry{
			{
				ID:           "work-wiki",
				Label:        "Work wiki",
				Category:     "문서",
				Tags:         []string{"work"},
				HostIncludes: []string{"wiki.corp.example"},
			},
			{
				ID:       "recipes",
				Keywords: []string{"recipe"},
			},
		},
	}

	rules, err := NewMapper().MapRules(config)
	if err != nil {
		t.Fatalf("MapRules() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("MapRules() returned %d rules, want 2", len(rules))
	}
	if rules[0].Category != domain.CategoryDocument {
		t.Errorf("rules[0].Category = %q", rules[0].Category)
	}
	if rules[1].Category != domain.CategoryOther {
		t.Errorf("unknown category should default to %q, got %q", domain.CategoryOther, rules[1].Category)
	}
}

func TestMapperMapRulesRequiresID(t *testing.T) {
	config := &RulesConfig{
		Rules: []RuleEntry{{Keywords: []string{"x"}}},
	}
	if _, err := NewMapper().MapRules(config); err == nil {
		t.Error("MapRules() should reject an entry without id")
	}
}

func TestMapperMapRulesRequiresMatcher(t *testing.T) {
	config := &RulesConfig{
		Rules: []RuleEntry{{ID: "empty", Category: "개발"}},
	}
	if _, err := NewMapper().MapRules(config); err == nil {
		t.Error("MapRules() should reject a matcherless entry")
	}
}

func TestMapperPreservesDeclarationOrder(t *testing.T) {
	config := &RulesConfig{
		Rules: []RuleEntry{
			{ID: "c", Keywords: []string{"c"}},
			{ID: "a", Keywords: []string{"a"}},
			{ID: "b", Keywords: []string{"b"}},
		},
	}

	rules, err := NewMapper().MapRules(config)
	if err != nil {
		t.Fatalf("MapRules() error = %v", err)
	}
	for i, want := range []string{"c", "a", "b"} {
		if rules[i].ID != want {
			t.Errorf("rules[%d].ID = %q, want %q", i, rules[i].ID, want)
		}
	}
}
