// Package worker drains added-transaction events and exports the
// records to the configured spreadsheet sink.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

// RowAppender is the export sink, satisfied by sheets.Client.
type RowAppender interface {
	AppendTransaction(ctx context.Context, t core.Transaction) error
}

// ExportWorker loads transactions announced over AMQP from the store
// and appends them to the sink. A periodic backlog pass picks up rows
// whose export failed or was never announced.
type ExportWorker struct {
	store     *storage.SQLiteRepository
	sink      RowAppender
	batchSize int
}

func NewExportWorker(store *storage.SQLiteRepository, sink RowAppender, batchSize int) *ExportWorker {
	return &ExportWorker{
		store:     store,
		sink:      sink,
		batchSize: batchSize,
	}
}

// HandleAdded processes one added-transaction event. Returning an
// error requeues the message.
func (w *ExportWorker) HandleAdded(ctx context.Context, msg *amqp.TransactionAddedMessage) error {
	t, err := w.store.Get(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("load transaction %d: %w", msg.ID, err)
	}

	if err := w.sink.AppendTransaction(ctx, t); err != nil {
		return fmt.Errorf("export transaction %d: %w", msg.ID, err)
	}

	if err := w.store.MarkSynced(ctx, msg.ID); err != nil {
		return fmt.Errorf("mark transaction %d synced: %w", msg.ID, err)
	}
	return nil
}

// SyncBacklog exports up to batchSize transactions that were recorded
// but never exported.
func (w *ExportWorker) SyncBacklog(ctx context.Context) error {
	pending, err := w.store.Unsynced(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list unsynced transactions: %w", err)
	}
	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Syncing export backlog", "count", len(pending))
	for _, t := range pending {
		if err := w.sink.AppendTransaction(ctx, t); err != nil {
			// Leave the row unsynced; the next pass retries it.
			slog.ErrorContext(ctx, "Failed to export backlog transaction",
				"id", t.ID, "error", err)
			continue
		}
		if err := w.store.MarkSynced(ctx, t.ID); err != nil {
			return err
		}
	}
	return nil
}

// Run consumes events and runs the backlog ticker until the context is
// cancelled.
func (w *ExportWorker) Run(ctx context.Context, client *amqp.Client, interval time.Duration) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		err := client.Consume(ctx, w.HandleAdded)
		if err == context.Canceled {
			return nil
		}
		return err
	})

	g.Go(func() error {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				if err := w.SyncBacklog(ctx); err != nil {
					slog.ErrorContext(ctx, "Backlog sync failed", "error", err)
				}
			}
		}
	})

	return g.Wait()
}
