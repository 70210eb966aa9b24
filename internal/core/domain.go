package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Income  TxnType = "income"
	Expense TxnType = "expense"
)

type (
	TxnType string

	Date struct {
		time.Time
	}

	Money struct {
		Cents int64
	}

	// Transaction is a persisted ledger record. The store assigns ID on
	// insert; records are read-only afterwards (append-only ledger).
	Transaction struct {
		ID       int64
		Date     Date
		Type     TxnType
		Category string
		Amount   Money
		Note     string
	}

	// NewTransaction carries the caller-supplied fields of a transaction
	// before the store assigns an ID. A zero Date means "today".
	NewTransaction struct {
		Date     Date
		Type     TxnType
		Category string
		Amount   Money
		Note     string
	}
)

var (
	ErrInvalidType   = errors.New("type must be income or expense")
	ErrInvalidAmount = errors.New("amount cannot be negative")
	ErrEmptyCategory = errors.New("category cannot be empty")
	ErrInvalidDate   = errors.New("invalid date")
)

// ValidationError reports which transaction field failed validation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (t TxnType) Valid() bool {
	return t == Income || t == Expense
}

// ParseTxnType parses a transaction type, ignoring case and surrounding space.
func ParseTxnType(s string) (TxnType, error) {
	t := TxnType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", &ValidationError{Field: "type", Err: ErrInvalidType}
	}
	return t, nil
}

// NewDate creates a Date from year, month, day.
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// Today returns the current calendar date.
func Today() Date {
	now := time.Now()
	return NewDate(now.Year(), int(now.Month()), now.Day())
}

// ParseDate parses a YYYY-MM-DD date string.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return Date{}, &ValidationError{Field: "date", Err: ErrInvalidDate}
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	return d.Format("2006-01-02")
}

// Day returns the day of the month.
func (d Date) Day() int {
	return d.Time.Day()
}

// Month returns the month as 1-12.
func (d Date) Month() int {
	return int(d.Time.Month())
}

// Year returns the year.
func (d Date) Year() int {
	return d.Time.Year()
}

// Before orders dates by calendar day.
func (d Date) Before(other Date) bool {
	return d.Time.Before(other.Time)
}

// Validate checks the caller-supplied fields. The date may be zero, in
// which case the store defaults it to today on insert.
func (n NewTransaction) Validate() error {
	if !n.Type.Valid() {
		return &ValidationError{Field: "type", Err: ErrInvalidType}
	}
	if n.Amount.Cents < 0 {
		return &ValidationError{Field: "amount", Err: ErrInvalidAmount}
	}
	if strings.TrimSpace(n.Category) == "" {
		return &ValidationError{Field: "category", Err: ErrEmptyCategory}
	}
	return nil
}
