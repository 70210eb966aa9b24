package ledger

import (
	"context"

	"fintrack/internal/core"
)

// Ports for the transaction store and outbound event publication.
type (
	// Store is the durable, append-only transaction collection.
	Store interface {
		Add(ctx context.Context, n core.NewTransaction) (core.Transaction, error)
		Query(ctx context.Context, f core.Filter) ([]core.Transaction, error)
		All(ctx context.Context) ([]core.Transaction, error)
		Count(ctx context.Context) (int64, error)
	}

	// EventPublisher announces newly recorded transactions to the
	// export pipeline.
	EventPublisher interface {
		PublishTransactionAdded(ctx context.Context, id int64) error
	}
)
