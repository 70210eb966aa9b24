package core

import "errors"

var (
	ErrMonthWithoutYear = errors.New("month filter requires a year")
	ErrInvalidMonth     = errors.New("month must be between 1 and 12")
)

// Filter narrows a ledger query. All provided fields must match (AND
// semantics); the zero Filter matches everything. Years and months
// outside the data range are valid and simply match nothing.
type Filter struct {
	Year     *int
	Month    *int // 1-12, requires Year
	Category string
	Type     *TxnType
}

// Validate rejects filters with no plausible meaning. It fails fast so
// stores never see a month without a year.
func (f Filter) Validate() error {
	if f.Month != nil {
		if f.Year == nil {
			return ErrMonthWithoutYear
		}
		if *f.Month < 1 || *f.Month > 12 {
			return ErrInvalidMonth
		}
	}
	if f.Type != nil && !f.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}

// Matches reports whether a transaction passes every provided field.
func (f Filter) Matches(t Transaction) bool {
	if f.Year != nil && t.Date.Year() != *f.Year {
		return false
	}
	if f.Month != nil && t.Date.Month() != *f.Month {
		return false
	}
	if f.Category != "" && t.Category != f.Category {
		return false
	}
	if f.Type != nil && t.Type != *f.Type {
		return false
	}
	return true
}
