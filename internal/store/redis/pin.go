package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// GetPin returns the stored private-view PIN, or "" when none is set.
func (s *Store) GetPin(ctx context.Context) (string, error) {
	pin, err := s.client.Get(ctx, KeyPrivatePin).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("failed to get pin: %w", err)
	}
	return pin, nil
}

// SetPin stores the private-view PIN. An empty pin clears it.
func (s *Store) SetPin(ctx context.Context, pin string) error {
	if pin == "" {
		if err := s.client.Del(ctx, KeyPrivatePin).Err(); err != nil {
			return fmt.Errorf("failed to clear pin: %w", err)
		}
		return nil
	}
	if err := s.client.Set(ctx, KeyPrivatePin, pin, 0).Err(); err != nil {
		return fmt.Errorf("failed to set pin: %w", err)
	}
	return nil
}
