package core

import (
	"errors"
	"testing"
)

func intPtr(v int) *int { return &v }

func TestFilterValidate(t *testing.T) {
	if err := (Filter{}).Validate(); err != nil {
		t.Fatalf("zero filter should be valid, got %v", err)
	}
	if err := (Filter{Year: intPtr(2024), Month: intPtr(6)}).Validate(); err != nil {
		t.Fatalf("year+month should be valid, got %v", err)
	}

	err := (Filter{Month: intPtr(6)}).Validate()
	if !errors.Is(err, ErrMonthWithoutYear) {
		t.Fatalf("expected ErrMonthWithoutYear, got %v", err)
	}

	for _, m := range []int{0, 13, -1} {
		err := (Filter{Year: intPtr(2024), Month: intPtr(m)}).Validate()
		if !errors.Is(err, ErrInvalidMonth) {
			t.Fatalf("month %d: expected ErrInvalidMonth, got %v", m, err)
		}
	}

	bad := TxnType("transfer")
	if err := (Filter{Type: &bad}).Validate(); !errors.Is(err, ErrInvalidType) {
		t.Fatalf("expected ErrInvalidType, got %v", err)
	}
}

func TestFilterMatches(t *testing.T) {
	rec := txn(NewDate(2024, 1, 5), Expense, "Food", 1250)

	income := Income
	expense := Expense
	cases := []struct {
		name string
		f    Filter
		want bool
	}{
		{"zero filter", Filter{}, true},
		{"year match", Filter{Year: intPtr(2024)}, true},
		{"year mismatch", Filter{Year: intPtr(2023)}, false},
		{"year+month match", Filter{Year: intPtr(2024), Month: intPtr(1)}, true},
		{"month mismatch", Filter{Year: intPtr(2024), Month: intPtr(2)}, false},
		{"category match", Filter{Category: "Food"}, true},
		{"category case-sensitive", Filter{Category: "food"}, false},
		{"type match", Filter{Type: &expense}, true},
		{"type mismatch", Filter{Type: &income}, false},
		{"all fields", Filter{Year: intPtr(2024), Month: intPtr(1), Category: "Food", Type: &expense}, true},
	}
	for _, tc := range cases {
		if got := tc.f.Matches(rec); got != tc.want {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}
