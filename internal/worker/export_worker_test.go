package worker

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fintrack/internal/amqp"
	"fintrack/internal/core"
	"fintrack/internal/storage"
)

type fakeSink struct {
	rows []int64
	fail bool
}

func (s *fakeSink) AppendTransaction(_ context.Context, t core.Transaction) error {
	if s.fail {
		return errors.New("sheet unavailable")
	}
	s.rows = append(s.rows, t.ID)
	return nil
}

func newTestRepo(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "fintrack.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func record(t *testing.T, repo *storage.SQLiteRepository, category string, cents int64) core.Transaction {
	t.Helper()
	rec, err := repo.Add(context.Background(), core.NewTransaction{
		Date:     core.NewDate(2024, 1, 5),
		Type:     core.Expense,
		Category: category,
		Amount:   core.Money{Cents: cents},
	})
	require.NoError(t, err)
	return rec
}

func TestHandleAdded(t *testing.T) {
	repo := newTestRepo(t)
	sink := &fakeSink{}
	w := NewExportWorker(repo, sink, 10)
	ctx := context.Background()

	rec := record(t, repo, "Food", 1250)
	require.NoError(t, w.HandleAdded(ctx, &amqp.TransactionAddedMessage{ID: rec.ID}))
	assert.Equal(t, []int64{rec.ID}, sink.rows)

	pending, err := repo.Unsynced(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestHandleAddedUnknownID(t *testing.T) {
	w := NewExportWorker(newTestRepo(t), &fakeSink{}, 10)
	err := w.HandleAdded(context.Background(), &amqp.TransactionAddedMessage{ID: 99})
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestSyncBacklog(t *testing.T) {
	repo := newTestRepo(t)
	sink := &fakeSink{}
	w := NewExportWorker(repo, sink, 10)
	ctx := context.Background()

	a := record(t, repo, "Food", 100)
	b := record(t, repo, "Rent", 200)

	require.NoError(t, w.SyncBacklog(ctx))
	assert.Equal(t, []int64{a.ID, b.ID}, sink.rows)

	// Second pass finds nothing left.
	sink.rows = nil
	require.NoError(t, w.SyncBacklog(ctx))
	assert.Empty(t, sink.rows)
}

func TestSyncBacklogLeavesFailedRowsPending(t *testing.T) {
	repo := newTestRepo(t)
	sink := &fakeSink{fail: true}
	w := NewExportWorker(repo, sink, 10)
	ctx := context.Background()

	record(t, repo, "Food", 100)
	require.NoError(t, w.SyncBacklog(ctx))

	pending, err := repo.Unsynced(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, pending, 1, "failed exports stay queued for retry")
}
