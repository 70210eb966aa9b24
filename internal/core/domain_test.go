package core

import (
	"errors"
	"testing"
)

func TestNewTransactionValidate(t *testing.T) {
	good := NewTransaction{
		Date:     NewDate(2024, 1, 5),
		Type:     Expense,
		Category: "Food",
		Amount:   Money{Cents: 1250},
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	// Zero amount and zero date are both valid; the store defaults the date.
	zeroish := NewTransaction{Type: Income, Category: "Salary"}
	if err := zeroish.Validate(); err != nil {
		t.Fatalf("expected ok for zero amount and date, got %v", err)
	}

	cases := []struct {
		name  string
		n     NewTransaction
		field string
		want  error
	}{
		{"bad type", NewTransaction{Type: "transfer", Category: "c", Amount: Money{Cents: 1}}, "type", ErrInvalidType},
		{"negative amount", NewTransaction{Type: Income, Category: "c", Amount: Money{Cents: -1}}, "amount", ErrInvalidAmount},
		{"empty category", NewTransaction{Type: Income, Category: "  ", Amount: Money{Cents: 1}}, "category", ErrEmptyCategory},
	}
	for _, tc := range cases {
		err := tc.n.Validate()
		if err == nil {
			t.Fatalf("%s: expected error", tc.name)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %T", tc.name, err)
		}
		if verr.Field != tc.field {
			t.Fatalf("%s: expected field %q, got %q", tc.name, tc.field, verr.Field)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v in chain, got %v", tc.name, tc.want, err)
		}
	}
}

func TestParseTxnType(t *testing.T) {
	cases := []struct {
		in   string
		want TxnType
		ok   bool
	}{
		{"income", Income, true},
		{"EXPENSE", Expense, true},
		{" income ", Income, true},
		{"transfer", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := ParseTxnType(tc.in)
		if tc.ok {
			if err != nil || got != tc.want {
				t.Fatalf("%q expected %q, got %q (err=%v)", tc.in, tc.want, got, err)
			}
		} else if err == nil {
			t.Fatalf("%q expected error", tc.in)
		}
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	if err != nil {
		t.Fatalf("expected ok, got %v", err)
	}
	if d.Year() != 2024 || d.Month() != 1 || d.Day() != 5 {
		t.Fatalf("unexpected date %v", d)
	}
	if d.String() != "2024-01-05" {
		t.Fatalf("expected 2024-01-05, got %s", d.String())
	}

	for _, bad := range []string{"2024-13-01", "05/01/2024", "not-a-date", ""} {
		if _, err := ParseDate(bad); err == nil {
			t.Fatalf("%q expected error", bad)
		}
	}
}
