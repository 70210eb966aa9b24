// Package menu implements the interactive command loop over the ledger
// operations. The session holds its own reader, writer and service so
// it can run headlessly in tests.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"fintrack/internal/core"
	"fintrack/internal/export"
	"fintrack/internal/ledger"
	"fintrack/internal/report"
)

// ChartRenderer is the chart sink used by the yearly report action,
// satisfied by chart.Renderer. It may be nil to skip chart output.
type ChartRenderer interface {
	RenderYearReport(year int, expenses, income []report.PieSlice, bars [12]report.BarEntry) (string, error)
}

type Session struct {
	svc       *ledger.Service
	charts    ChartRenderer
	exportDir string
	in        *bufio.Scanner
	out       io.Writer
}

func NewSession(svc *ledger.Service, charts ChartRenderer, exportDir string, in io.Reader, out io.Writer) *Session {
	return &Session{
		svc:       svc,
		charts:    charts,
		exportDir: exportDir,
		in:        bufio.NewScanner(in),
		out:       out,
	}
}

// Run loops over the menu until the user exits or input ends.
func (s *Session) Run(ctx context.Context) error {
	for {
		s.printMenu()
		choice, ok := s.prompt("Enter your choice (1-9): ")
		if !ok {
			return nil
		}

		var err error
		switch strings.TrimSpace(choice) {
		case "1":
			err = s.addTransaction(ctx, core.Income)
		case "2":
			err = s.addTransaction(ctx, core.Expense)
		case "3":
			err = s.listTransactions(ctx)
		case "4":
			err = s.showSummary(ctx)
		case "5":
			err = s.showBreakdown(ctx)
		case "6":
			err = s.yearlyReport(ctx)
		case "7":
			err = s.exportCSV(ctx)
		case "8":
			err = s.loadSampleData(ctx)
		case "9":
			fmt.Fprintln(s.out, "Goodbye.")
			return nil
		default:
			fmt.Fprintln(s.out, "Invalid choice, please try again.")
			continue
		}

		if err != nil {
			var verr *core.ValidationError
			if errors.As(err, &verr) {
				fmt.Fprintf(s.out, "Invalid input (%s): %v\n", verr.Field, verr.Err)
				continue
			}
			// Storage failures end the command, not the session.
			fmt.Fprintf(s.out, "Error: %v\n", err)
		}
	}
}

func (s *Session) printMenu() {
	fmt.Fprint(s.out, `
==================================================
PERSONAL FINANCE TRACKER
==================================================
1. Add Income
2. Add Expense
3. View All Transactions
4. View Summary
5. Category Breakdown
6. Generate Yearly Report
7. Export to CSV
8. Load Sample Data
9. Exit
==================================================
`)
}

func (s *Session) addTransaction(ctx context.Context, typ core.TxnType) error {
	category, ok := s.prompt("Category: ")
	if !ok {
		return nil
	}
	amountStr, ok := s.prompt("Amount: ")
	if !ok {
		return nil
	}
	amount, err := core.ParseMoney(amountStr)
	if err != nil {
		return err
	}
	dateStr, ok := s.prompt("Date (YYYY-MM-DD, empty for today): ")
	if !ok {
		return nil
	}
	var date core.Date
	if strings.TrimSpace(dateStr) != "" {
		if date, err = core.ParseDate(dateStr); err != nil {
			return err
		}
	}
	note, ok := s.prompt("Note (optional): ")
	if !ok {
		return nil
	}

	t, err := s.svc.Record(ctx, core.NewTransaction{
		Date:     date,
		Type:     typ,
		Category: strings.TrimSpace(category),
		Amount:   amount,
		Note:     strings.TrimSpace(note),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Recorded %s #%d: %s - %s\n", t.Type, t.ID, t.Amount, t.Category)
	return nil
}

func (s *Session) listTransactions(ctx context.Context) error {
	txns, err := s.svc.List(ctx, core.Filter{})
	if err != nil {
		return err
	}
	if len(txns) == 0 {
		fmt.Fprintln(s.out, "No transactions found.")
		return nil
	}
	s.printTable(txns)
	return nil
}

func (s *Session) showSummary(ctx context.Context) error {
	f, label, err := s.promptPeriod()
	if err != nil {
		return err
	}
	sum, err := s.svc.Summary(ctx, f)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nFINANCIAL SUMMARY - %s\n", label)
	fmt.Fprintf(s.out, "Total Income:   %s\n", sum.TotalIncome)
	fmt.Fprintf(s.out, "Total Expenses: %s\n", sum.TotalExpense)
	fmt.Fprintf(s.out, "Net Balance:    %s\n", sum.Net)
	return nil
}

func (s *Session) showBreakdown(ctx context.Context) error {
	f, label, err := s.promptPeriod()
	if err != nil {
		return err
	}
	breakdown, err := s.svc.Breakdown(ctx, f)
	if err != nil {
		return err
	}
	if len(breakdown) == 0 {
		fmt.Fprintf(s.out, "No transactions found for %s\n", label)
		return nil
	}
	fmt.Fprintf(s.out, "\nCATEGORY BREAKDOWN - %s\n", label)
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "category\tincome\texpense\tnet")
	for _, b := range breakdown {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Category, b.Income, b.Expense, b.Net)
	}
	return tw.Flush()
}

func (s *Session) yearlyReport(ctx context.Context) error {
	year, err := s.promptInt("Year (e.g. 2024): ")
	if err != nil {
		return err
	}

	monthly, err := s.svc.Monthly(ctx, year)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "\nMONTHLY REPORT %d\n", year)
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "month\tincome\texpense\tnet")
	for _, m := range monthly {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", m.Month, m.Income, m.Expense, m.Net)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if s.charts == nil {
		return nil
	}
	breakdown, err := s.svc.Breakdown(ctx, core.Filter{Year: &year})
	if err != nil {
		return err
	}
	expensePie, err := report.PieSeries(report.ExpenseShares(breakdown))
	if err != nil && !errors.Is(err, report.ErrEmptySeries) {
		return err
	}
	incomePie, err := report.PieSeries(report.IncomeShares(breakdown))
	if err != nil && !errors.Is(err, report.ErrEmptySeries) {
		return err
	}
	path, err := s.charts.RenderYearReport(year, expensePie, incomePie, report.BarSeries(monthly))
	if err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Charts saved to %s\n", path)
	return nil
}

func (s *Session) exportCSV(ctx context.Context) error {
	txns, err := s.svc.List(ctx, core.Filter{})
	if err != nil {
		return err
	}
	path := filepath.Join(s.exportDir, "transactions_export.csv")
	if err := export.WriteCSVFile(path, txns); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Exported %d transactions to %s\n", len(txns), path)
	return nil
}

func (s *Session) loadSampleData(ctx context.Context) error {
	added, err := s.svc.Seed(ctx)
	if err != nil {
		return err
	}
	if added {
		fmt.Fprintln(s.out, "Sample data loaded.")
	} else {
		fmt.Fprintln(s.out, "Ledger is not empty, sample data skipped.")
	}
	return nil
}

// promptPeriod asks whether to scope the operation to a specific month
// and builds the matching filter.
func (s *Session) promptPeriod() (core.Filter, string, error) {
	answer, ok := s.prompt("View specific month? (y/n): ")
	if !ok || strings.ToLower(strings.TrimSpace(answer)) != "y" {
		return core.Filter{}, "All Time", nil
	}
	year, err := s.promptInt("Year (e.g. 2024): ")
	if err != nil {
		return core.Filter{}, "", err
	}
	month, err := s.promptInt("Month (1-12): ")
	if err != nil {
		return core.Filter{}, "", err
	}
	f := core.Filter{Year: &year, Month: &month}
	if err := f.Validate(); err != nil {
		return core.Filter{}, "", err
	}
	return f, fmt.Sprintf("%04d-%02d", year, month), nil
}

func (s *Session) printTable(txns []core.Transaction) {
	tw := tabwriter.NewWriter(s.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(report.Header(), "\t"))
	for _, row := range report.Rows(txns) {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	tw.Flush()
}

// prompt reads one line; ok is false when input is exhausted.
func (s *Session) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

func (s *Session) promptInt(label string) (int, error) {
	raw, ok := s.prompt(label)
	if !ok {
		return 0, fmt.Errorf("input closed")
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", strings.TrimSpace(raw))
	}
	return v, nil
}
