package core

import "testing"

func TestParseDecimalToCents(t *testing.T) {
	cases := []struct {
		in  string
		out int64
		ok  bool
	}{
		{"1", 100, true},
		{"1.0", 100, true},
		{"1.23", 123, true},
		{"1,23", 123, true},
		{"0.01", 1, true},
		{"0", 0, true},
		{"0.00", 0, true},
		{"1.005", 101, true}, // half-up rounding
		{" 2.50 ", 250, true},
		{"2000.00", 200000, true},
		{"-1", 0, false},
		{"+1", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, err := ParseDecimalToCents(tc.in)
		if tc.ok {
			if err != nil || got != tc.out {
				t.Fatalf("%q expected %d, got %d (err=%v)", tc.in, tc.out, got, err)
			}
		} else {
			if err == nil {
				t.Fatalf("%q expected error", tc.in)
			}
		}
	}
}

func TestMoneyString(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "0.00"},
		{1, "0.01"},
		{1250, "12.50"},
		{200000, "2000.00"},
		{-800, "-8.00"},
	}
	for _, tc := range cases {
		if got := (Money{Cents: tc.cents}).String(); got != tc.want {
			t.Fatalf("%d cents expected %q, got %q", tc.cents, tc.want, got)
		}
	}
}

// Ten thousand one-cent additions must sum to exactly 100.00; this is
// the reason amounts are integer cents rather than floats.
func TestCentAccumulationIsExact(t *testing.T) {
	var total Money
	cent := Money{Cents: 1}
	for i := 0; i < 10000; i++ {
		total = total.Add(cent)
	}
	if total.Cents != 10000 {
		t.Fatalf("expected 10000 cents, got %d", total.Cents)
	}
	if total.String() != "100.00" {
		t.Fatalf("expected 100.00, got %s", total.String())
	}
}
