package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/linkminder/linkminder/internal/domain"
)

// Store handles Redis operations for link records, custom rules and the
// private PIN. Records are stored as per-ID JSON keys; a list preserves
// newest-first insertion order and a hash indexes records by normalized
// URL for dedup lookups. Entries never expire: this is the durable
// collection, not a cache.
type Store struct {
	client *redis.Client
}

// NewStore creates a new Redis store
func NewStore(client *redis.Client) *Store {
	return &Store{
		client: client,
	}
}

// GetLink retrieves a link record by ID
func (s *Store) GetLink(ctx context.Context, id string) (*domain.LinkRecord, error) {
	data, err := s.client.Get(ctx, LinkKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("link not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get link: %w", err)
	}

	var record domain.LinkRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, fmt.Errorf("failed to unmarshal link: %w", err)
	}
	return &record, nil
}

// FindLinkByURL looks up a record by its normalized URL.
// Returns (nil, nil) when no record exists for the URL.
func (s *Store) FindLinkByURL(ctx context.Context, normalizedURL string) (*domain.LinkRecord, error) {
	id, err := s.client.HGet(ctx, KeyLinksByURL, normalizedURL).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to look up link by url: %w", err)
	}
	return s.GetLink(ctx, id)
}

// ListLinks returns all link records, newest first. Records whose key
// vanished out from under the order list are skipped.
func (s *Store) ListLinks(ctx context.Context) ([]*domain.LinkRecord, error) {
	ids, err := s.client.LRange(ctx, KeyLinkOrder, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get link order: %w", err)
	}
	if len(ids) == 0 {
		return []*domain.LinkRecord{}, nil
	}

	pipe := s.client.Pipeline()
	cmds := make([]*redis.StringCmd, len(ids))
	for i, id := range ids {
		cmds[i] = pipe.Get(ctx, LinkKey(id))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to fetch links: %w", err)
	}

	records := make([]*domain.LinkRecord, 0, len(ids))
	for _, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			continue
		}
		var record domain.LinkRecord
		if err := json.Unmarshal(data, &record); err != nil {
			continue
		}
		records = append(records, &record)
	}
	return records, nil
}

// InsertLink stores a brand-new record at the head of the order list.
func (s *Store) InsertLink(ctx context.Context, record *domain.LinkRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, LinkKey(record.ID), data, 0)
	pipe.LPush(ctx, KeyLinkOrder, record.ID)
	pipe.HSet(ctx, KeyLinksByURL, record.URL, record.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert link: %w", err)
	}
	return nil
}

// UpdateLink overwrites an existing record in place. The record keeps
// its position in the order list.
func (s *Store) UpdateLink(ctx context.Context, record *domain.LinkRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal link: %w", err)
	}
	if err := s.client.Set(ctx, LinkKey(record.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to update link: %w", err)
	}
	return nil
}

// DeleteLink removes a record and its index entries.
func (s *Store) DeleteLink(ctx context.Context, id string) error {
	record, err := s.GetLink(ctx, id)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Del(ctx, LinkKey(id))
	pipe.LRem(ctx, KeyLinkOrder, 0, id)
	pipe.HDel(ctx, KeyLinksByURL, record.URL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete link: %w", err)
	}
	return nil
}
