package rulesfile

import (
	"fmt"
	"strings"

	"github.com/linkminder/linkminder/internal/domain"
)

// Mapper converts rules.yaml entries to domain rules
type Mapper struct{}

// NewMapper creates a new rules mapper
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapRules converts a RulesConfig to a domain.Rule slice, preserving
// declaration order. Entries without any matcher are rejected; they
// could never score and seeding them would only confuse the rule list.
func (m *Mapper) MapRules(config *RulesConfig) ([]domain.Rule, error) {
	rules := make([]domain.Rule, 0, len(config.Rules))

	for i, entry := range config.Rules {
		rule := domain.Rule{
			ID:           strings.TrimSpace(entry.ID),
			Label:        entry.Label,
			Category:     domain.Category(entry.Category).OrDefault(),
			Tags:         entry.Tags,
			HostIncludes: entry.HostIncludes,
			PathIncludes: entry.PathIncludes,
			Keywords:     entry.Keywords,
			Regex:        entry.Regex,
		}

		if rule.ID == "" {
			return nil, fmt.Errorf("rules[%d]: id is required", i)
		}
		if !rule.HasMatchers() {
			return nil, fmt.Errorf("rules[%d] (%s): at least one matcher is required", i, rule.ID)
		}

		rules = append(rules, rule)
	}

	return rules, nil
}
