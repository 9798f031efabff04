package scheduler

import (
	"context"
	"time"

	"github.com/linkminder/linkminder/internal/collection"
	"github.com/linkminder/linkminder/internal/logger"
)

// Reclassifier periodically sweeps the collection for records written
// by an older classifier version and rewrites their classification.
// Cluster assignments are never touched; only the rule-derived fields
// change. A manual trigger channel lets the API force a sweep without
// waiting for the ticker.
type Reclassifier struct {
	collection    *collection.Collection
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewReclassifier creates a new reclassifier
func NewReclassifier(
	coll *collection.Collection,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Reclassifier {
	return &Reclassifier{
		collection:    coll,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start runs one sweep immediately, then loops on the ticker and the
// manual trigger.
func (r *Reclassifier) Start(ctx context.Context) error {
	if err := r.sweep(ctx); err != nil {
		r.logger.Warn("initial reclassify sweep failed",
			logger.Error(err))
	}

	ticker := time.NewTicker(r.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := r.sweep(ctx); err != nil {
					r.logger.Error("reclassify sweep failed",
						logger.Error(err))
				}
			case <-r.manualTrigger:
				r.logger.Info("manual reclassify triggered")
				if err := r.sweep(ctx); err != nil {
					r.logger.Error("reclassify sweep failed",
						logger.Error(err))
				}
			case <-r.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reclassifier
func (r *Reclassifier) Stop() {
	close(r.stopCh)
}

func (r *Reclassifier) sweep(ctx context.Context) error {
	count, err := r.collection.Reclassify(ctx)
	if err != nil {
		return err
	}
	if count == 0 {
		r.logger.Debug("no stale records to reclassify")
	}
	return nil
}
