package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/linkminder/linkminder/internal/domain"
)

// GetRule retrieves a custom rule by ID
func (s *Store) GetRule(ctx context.Context, id string) (*domain.Rule, error) {
	data, err := s.client.Get(ctx, RuleKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("rule not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get rule: %w", err)
	}

	var rule domain.Rule
	if err := json.Unmarshal(data, &rule); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rule: %w", err)
	}
	return &rule, nil
}

// ListRules returns all custom rules in declaration order. Declaration
// order is the tie-break contract of the classifier: earlier rules win
// equal scores.
func (s *Store) ListRules(ctx context.Context) ([]domain.Rule, error) {
	ids, err := s.client.LRange(ctx, KeyRuleOrder, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get rule order: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Rule{}, nil
	}

	rules := make([]domain.Rule, 0, len(ids))
	for _, id := range ids {
		rule, err := s.GetRule(ctx, id)
		if err != nil {
			continue
		}
		rules = append(rules, *rule)
	}
	return rules, nil
}

// UpsertRule stores a rule, appending to the declaration order when the
// rule is new.
func (s *Store) UpsertRule(ctx context.Context, rule *domain.Rule) error {
	data, err := json.Marshal(rule)
	if err != nil {
		return fmt.Errorf("failed to marshal rule: %w", err)
	}

	exists, err := s.client.Exists(ctx, RuleKey(rule.ID)).Result()
	if err != nil {
		return fmt.Errorf("failed to check rule existence: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, RuleKey(rule.ID), data, 0)
	if exists == 0 {
		pipe.RPush(ctx, KeyRuleOrder, rule.ID)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save rule: %w", err)
	}
	return nil
}

// DeleteRule removes a rule and its order entry.
func (s *Store) DeleteRule(ctx context.Context, id string) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, RuleKey(id))
	pipe.LRem(ctx, KeyRuleOrder, 0, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}
	return nil
}
