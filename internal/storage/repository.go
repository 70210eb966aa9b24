// Package storage implements the durable transaction store on SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

// StorageError wraps driver failures so callers can distinguish I/O
// problems from validation and empty results.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("transaction not found")

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Add validates and persists a new transaction, assigning the next id.
// A zero date defaults to today.
func (r *SQLiteRepository) Add(ctx context.Context, n core.NewTransaction) (core.Transaction, error) {
	if err := n.Validate(); err != nil {
		return core.Transaction{}, err
	}
	if n.Date.IsZero() {
		n.Date = core.Today()
	}

	res, err := r.db.ExecContext(ctx,
		`INSERT INTO transactions (date, type, category, amount_cents, note)
		 VALUES (?, ?, ?, ?, ?)`,
		n.Date.String(), string(n.Type), n.Category, n.Amount.Cents, n.Note)
	if err != nil {
		return core.Transaction{}, &StorageError{Op: "insert transaction", Err: err}
	}
	id, err := res.LastInsertId()
	if err != nil {
		return core.Transaction{}, &StorageError{Op: "last insert id", Err: err}
	}

	t := core.Transaction{
		ID:       id,
		Date:     n.Date,
		Type:     n.Type,
		Category: n.Category,
		Amount:   n.Amount,
		Note:     n.Note,
	}

	slog.InfoContext(ctx, "Transaction saved",
		"id", t.ID,
		"type", t.Type,
		"category", t.Category,
		"amount_cents", t.Amount.Cents,
		"date", t.Date.String())

	return t, nil
}

// Query returns transactions matching every provided filter field, in
// ascending date order with ties broken by id. Zero matches is a
// success with an empty slice.
func (r *SQLiteRepository) Query(ctx context.Context, f core.Filter) ([]core.Transaction, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	query := `SELECT id, date, type, category, amount_cents, note FROM transactions`
	var (
		conds []string
		args  []any
	)
	if f.Year != nil {
		start, end := dateRange(*f.Year, f.Month)
		conds = append(conds, "date >= ?", "date < ?")
		args = append(args, start, end)
	}
	if f.Category != "" {
		conds = append(conds, "category = ?")
		args = append(args, f.Category)
	}
	if f.Type != nil {
		conds = append(conds, "type = ?")
		args = append(args, string(*f.Type))
	}
	for i, c := range conds {
		if i == 0 {
			query += " WHERE " + c
		} else {
			query += " AND " + c
		}
	}
	query += " ORDER BY date ASC, id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &StorageError{Op: "query transactions", Err: err}
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate transactions", Err: err}
	}
	return out, nil
}

// All returns the whole ledger, equivalent to Query with a zero filter.
func (r *SQLiteRepository) All(ctx context.Context) ([]core.Transaction, error) {
	return r.Query(ctx, core.Filter{})
}

// Get retrieves a single transaction by id.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, date, type, category, amount_cents, note
		 FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, ErrNotFound
		}
		return core.Transaction{}, err
	}
	return t, nil
}

// Count returns the number of ledger records.
func (r *SQLiteRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&n); err != nil {
		return 0, &StorageError{Op: "count transactions", Err: err}
	}
	return n, nil
}

// Unsynced returns transactions not yet exported, oldest first.
func (r *SQLiteRepository) Unsynced(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, date, type, category, amount_cents, note
		 FROM transactions WHERE synced_at IS NULL
		 ORDER BY id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, &StorageError{Op: "query unsynced", Err: err}
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "iterate unsynced", Err: err}
	}
	return out, nil
}

// MarkSynced records that a transaction was exported.
func (r *SQLiteRepository) MarkSynced(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET synced_at = ? WHERE id = ?`,
		time.Now().UTC().Format(time.RFC3339), id)
	if err != nil {
		return &StorageError{Op: "mark synced", Err: err}
	}
	slog.InfoContext(ctx, "Transaction marked as synced", "id", id)
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var (
		t       core.Transaction
		dateStr string
		typeStr string
		cents   int64
	)
	if err := row.Scan(&t.ID, &dateStr, &typeStr, &t.Category, &cents, &t.Note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, err
		}
		return core.Transaction{}, &StorageError{Op: "scan transaction", Err: err}
	}
	date, err := core.ParseDate(dateStr)
	if err != nil {
		return core.Transaction{}, &StorageError{Op: "parse stored date", Err: err}
	}
	t.Date = date
	t.Type = core.TxnType(typeStr)
	t.Amount = core.Money{Cents: cents}
	return t, nil
}

// dateRange returns [start, end) bounds in YYYY-MM-DD form for a year
// or a year+month. Dates are stored as ISO strings, so lexical and
// chronological order agree.
func dateRange(year int, month *int) (string, string) {
	if month == nil {
		return fmt.Sprintf("%04d-01-01", year), fmt.Sprintf("%04d-01-01", year+1)
	}
	start := core.NewDate(year, *month, 1)
	end := core.NewDate(year, *month+1, 1) // time.Date normalizes month 13
	return start.String(), end.String()
}
