package menu

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fintrack/internal/ledger"
	"fintrack/internal/storage/memory"
)

func runScript(t *testing.T, dir string, lines ...string) string {
	t.Helper()
	svc := ledger.NewService(memory.New(), nil)
	in := strings.NewReader(strings.Join(lines, "\n") + "\n")
	var out bytes.Buffer
	session := NewSession(svc, nil, dir, in, &out)
	if err := session.Run(context.Background()); err != nil {
		t.Fatalf("session: %v", err)
	}
	return out.String()
}

func TestAddAndSummary(t *testing.T) {
	out := runScript(t, t.TempDir(),
		"2",          // add expense
		"Food",       // category
		"12.50",      // amount
		"2024-01-05", // date
		"lunch",      // note
		"1",          // add income
		"Salary",
		"2000.00",
		"2024-01-20",
		"",
		"4", // summary
		"n", // all time
		"9", // exit
	)

	for _, want := range []string{
		"Recorded expense #1: 12.50 - Food",
		"Recorded income #2: 2000.00 - Salary",
		"Total Income:   2000.00",
		"Total Expenses: 12.50",
		"Net Balance:    1987.50",
		"Goodbye.",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
}

func TestInvalidAmountIsNonFatal(t *testing.T) {
	out := runScript(t, t.TempDir(),
		"2",
		"Food",
		"abc", // bad amount ends the command, not the session
		"3",
		"9",
	)
	if !strings.Contains(out, "Invalid input (amount)") {
		t.Fatalf("expected amount validation message:\n%s", out)
	}
	if !strings.Contains(out, "No transactions found.") {
		t.Fatalf("expected empty ledger after failed add:\n%s", out)
	}
}

func TestListAndExport(t *testing.T) {
	dir := t.TempDir()
	out := runScript(t, dir,
		"8", // sample data
		"3", // list
		"7", // export csv
		"9",
	)
	if !strings.Contains(out, "Sample data loaded.") {
		t.Fatalf("expected sample data message:\n%s", out)
	}
	if !strings.Contains(out, "Salary") || !strings.Contains(out, "Groceries") {
		t.Fatalf("expected listed transactions:\n%s", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "transactions_export.csv"))
	if err != nil {
		t.Fatalf("expected csv export: %v", err)
	}
	if !strings.HasPrefix(string(data), "id,date,type,category,amount,note\n") {
		t.Fatalf("unexpected csv header: %q", data)
	}
}

func TestYearlyReportWithoutCharts(t *testing.T) {
	out := runScript(t, t.TempDir(),
		"8",    // sample data
		"6",    // yearly report
		"2024", // the seeded year
		"9",
	)
	if !strings.Contains(out, "MONTHLY REPORT 2024") {
		t.Fatalf("expected report heading:\n%s", out)
	}
	if !strings.Contains(out, "November") {
		t.Fatalf("expected November row:\n%s", out)
	}
}
