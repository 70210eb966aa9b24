// Package ledger orchestrates the transaction store, the aggregation
// engine and the export event stream behind a single service.
package ledger

import (
	"context"
	"fmt"
	"log/slog"

	"fintrack/internal/core"
)

// Service wires the store to the event publisher. The publisher may be
// nil when no export pipeline is configured.
type Service struct {
	store  Store
	events EventPublisher
}

func NewService(store Store, events EventPublisher) *Service {
	return &Service{store: store, events: events}
}

// Record validates and persists a transaction, then publishes an
// added-transaction event. The record is the source of truth: a failed
// publish is logged and does not fail the call.
func (s *Service) Record(ctx context.Context, n core.NewTransaction) (core.Transaction, error) {
	t, err := s.store.Add(ctx, n)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("add transaction: %w", err)
	}

	if s.events == nil {
		return t, nil
	}
	if err := s.events.PublishTransactionAdded(ctx, t.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish added-transaction event",
			"id", t.ID, "error", err)
	}
	return t, nil
}

// List returns transactions matching the filter.
func (s *Service) List(ctx context.Context, f core.Filter) ([]core.Transaction, error) {
	return s.store.Query(ctx, f)
}

// Summary aggregates totals over the filtered ledger.
func (s *Service) Summary(ctx context.Context, f core.Filter) (core.Summary, error) {
	txns, err := s.store.Query(ctx, f)
	if err != nil {
		return core.Summary{}, err
	}
	return core.Summarize(txns), nil
}

// Breakdown aggregates per-category totals over the filtered ledger.
func (s *Service) Breakdown(ctx context.Context, f core.Filter) ([]core.CategoryBreakdown, error) {
	txns, err := s.store.Query(ctx, f)
	if err != nil {
		return nil, err
	}
	return core.ByCategory(txns), nil
}

// Monthly returns the twelve-month report for a year.
func (s *Service) Monthly(ctx context.Context, year int) ([12]core.MonthTotal, error) {
	txns, err := s.store.Query(ctx, core.Filter{Year: &year})
	if err != nil {
		return [12]core.MonthTotal{}, err
	}
	return core.MonthlyReport(txns, year), nil
}

// Seed loads demonstration data when the ledger is empty. It reports
// whether anything was added.
func (s *Service) Seed(ctx context.Context) (bool, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	samples := []core.NewTransaction{
		{Date: core.NewDate(2024, 11, 1), Type: core.Income, Category: "Salary", Amount: core.Money{Cents: 500000}, Note: "Monthly salary"},
		{Date: core.NewDate(2024, 11, 15), Type: core.Income, Category: "Freelance", Amount: core.Money{Cents: 80000}, Note: "Side project"},
		{Date: core.NewDate(2024, 11, 1), Type: core.Expense, Category: "Rent", Amount: core.Money{Cents: 150000}, Note: "Monthly rent"},
		{Date: core.NewDate(2024, 11, 5), Type: core.Expense, Category: "Groceries", Amount: core.Money{Cents: 35000}, Note: "Weekly shopping"},
		{Date: core.NewDate(2024, 11, 10), Type: core.Expense, Category: "Utilities", Amount: core.Money{Cents: 15000}, Note: "Electric & water"},
		{Date: core.NewDate(2024, 11, 12), Type: core.Expense, Category: "Transportation", Amount: core.Money{Cents: 20000}, Note: "Gas & metro"},
		{Date: core.NewDate(2024, 11, 18), Type: core.Expense, Category: "Entertainment", Amount: core.Money{Cents: 12000}, Note: "Movies & dining"},
		{Date: core.NewDate(2024, 11, 20), Type: core.Expense, Category: "Groceries", Amount: core.Money{Cents: 28000}, Note: "Weekly shopping"},
	}
	for _, sample := range samples {
		if _, err := s.Record(ctx, sample); err != nil {
			return false, fmt.Errorf("seed sample data: %w", err)
		}
	}
	slog.InfoContext(ctx, "Sample data loaded", "count", len(samples))
	return true, nil
}
