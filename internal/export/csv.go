// Package export writes ledger rows as CSV, consuming the report
// adapter's rows verbatim.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"fintrack/internal/core"
	"fintrack/internal/report"
)

// WriteCSV writes a header row followed by one line per transaction.
func WriteCSV(w io.Writer, txns []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(report.Header()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, row := range report.Rows(txns) {
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// WriteCSVFile exports the transactions to a file at path.
func WriteCSVFile(path string, txns []core.Transaction) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create export file: %w", err)
	}
	defer f.Close()

	if err := WriteCSV(f, txns); err != nil {
		return err
	}
	return f.Close()
}
