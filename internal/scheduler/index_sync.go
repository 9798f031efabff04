package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/linkminder/linkminder/internal/collection"
	"github.com/linkminder/linkminder/internal/logger"
)

// IndexSyncer keeps the in-memory snapshot aligned with Redis: a full
// load on startup, then periodic resyncs. Writes go to Redis first and
// are mirrored into the index, so a resync only matters after another
// writer or a missed mirror; it is cheap enough to run anyway.
type IndexSyncer struct {
	collection *collection.Collection
	logger     logger.Logger
	interval   time.Duration
	stopCh     chan struct{}
}

// NewIndexSyncer creates a new index syncer
func NewIndexSyncer(
	coll *collection.Collection,
	log logger.Logger,
	interval time.Duration,
) *IndexSyncer {
	return &IndexSyncer{
		collection: coll,
		logger:     log,
		interval:   interval,
		stopCh:     make(chan struct{}),
	}
}

// Start performs the initial sync and begins the periodic resync loop.
// The initial sync failing is fatal; serving from an empty snapshot
// while Redis holds data would look like data loss.
func (is *IndexSyncer) Start(ctx context.Context) error {
	if err := is.collection.Sync(ctx); err != nil {
		return fmt.Errorf("initial index sync failed: %w", err)
	}

	ticker := time.NewTicker(is.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := is.collection.Sync(ctx); err != nil {
					is.logger.Error("failed to resync index from redis",
						logger.Error(err))
				}
			case <-is.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the syncer
func (is *IndexSyncer) Stop() {
	close(is.stopCh)
}
