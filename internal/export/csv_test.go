package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"fintrack/internal/core"
)

func sample() []core.Transaction {
	return []core.Transaction{
		{ID: 1, Date: core.NewDate(2024, 1, 5), Type: core.Expense, Category: "Food", Amount: core.Money{Cents: 1250}, Note: "lunch"},
		{ID: 2, Date: core.NewDate(2024, 1, 20), Type: core.Income, Category: "Salary", Amount: core.Money{Cents: 200000}},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sample()); err != nil {
		t.Fatalf("write: %v", err)
	}

	want := "id,date,type,category,amount,note\n" +
		"1,2024-01-05,expense,Food,12.50,lunch\n" +
		"2,2024-01-20,income,Salary,2000.00,\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteCSVEmptyLedgerKeepsHeader(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.String() != "id,date,type,category,amount,note\n" {
		t.Fatalf("unexpected output: %q", buf.String())
	}
}

func TestWriteCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := WriteCSVFile(path, sample()); err != nil {
		t.Fatalf("write file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("id,date,type,category,amount,note\n")) {
		t.Fatalf("missing header: %q", data)
	}
}
