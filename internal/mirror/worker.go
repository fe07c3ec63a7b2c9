// Package mirror drains the legacy-key write-through queue. Sync-group and
// legacy-key writes are enqueued by the launch service instead of fired
// inline, so partial failures are retryable and visible in the queue table
// rather than silently dropped.
package mirror

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hancomics/prodboard/internal/domain/launch"
)

// Worker periodically applies pending mirror operations.
type Worker struct {
	queue       launch.MirrorQueue
	statuses    launch.Repository
	interval    time.Duration
	batchSize   int
	maxAttempts int
	logger      *slog.Logger
}

// New creates a mirror worker.
func New(queue launch.MirrorQueue, statuses launch.Repository, interval time.Duration, batchSize, maxAttempts int, logger *slog.Logger) *Worker {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	if batchSize <= 0 {
		batchSize = 50
	}
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &Worker{
		queue:       queue,
		statuses:    statuses,
		interval:    interval,
		batchSize:   batchSize,
		maxAttempts: maxAttempts,
		logger:      logger,
	}
}

// Run sweeps the queue until the context is canceled.
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Sweep(ctx); err != nil {
				w.logger.Warn("mirror sweep failed", "error", err)
			}
		}
	}
}

// Sweep applies one batch of pending operations. Ops are independent, so the
// batch runs concurrently; one op failing never blocks the others, it just
// stays queued with its attempt count bumped.
func (w *Worker) Sweep(ctx context.Context) error {
	ops, err := w.queue.ListPending(ctx, w.batchSize)
	if err != nil {
		return err
	}
	if len(ops) == 0 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(8)
	for _, op := range ops {
		g.Go(func() error {
			w.apply(gctx, op)
			return nil
		})
	}
	return g.Wait()
}

func (w *Worker) apply(ctx context.Context, op launch.MirrorOp) {
	var err error
	switch op.Kind {
	case launch.MirrorUpsert:
		err = w.statuses.Upsert(ctx, op.Record)
	case launch.MirrorDelete:
		err = w.statuses.Delete(ctx, op.Record.Key)
	default:
		w.logger.Warn("unknown mirror op kind", "op", op.ID, "kind", op.Kind)
		_ = w.queue.MarkDone(ctx, op.ID)
		return
	}

	if err == nil {
		if markErr := w.queue.MarkDone(ctx, op.ID); markErr != nil {
			w.logger.Warn("marking mirror op done failed", "op", op.ID, "error", markErr)
		}
		return
	}

	attempts := op.Attempts + 1
	if attempts >= w.maxAttempts {
		// Give up: the primary write already succeeded, legacy consistency
		// is best-effort only.
		w.logger.Warn("mirror op dropped after max attempts", "op", op.ID, "key", op.Record.Key, "error", err)
		_ = w.queue.MarkDone(ctx, op.ID)
		return
	}
	if markErr := w.queue.MarkFailed(ctx, op.ID, attempts, err.Error()); markErr != nil {
		w.logger.Warn("marking mirror op failed failed", "op", op.ID, "error", markErr)
	}
}
