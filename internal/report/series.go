// Package report converts aggregation results into the label/value
// series consumed by the chart renderer and the CSV exporter.
package report

import (
	"errors"
	"strconv"

	"fintrack/internal/core"
)

// ErrEmptySeries means every candidate value was excluded; callers
// should skip rendering rather than fail the whole command.
var ErrEmptySeries = errors.New("no positive values to chart")

type (
	// LabeledAmount is one (category, amount) pair in aggregation order.
	LabeledAmount struct {
		Label  string
		Amount core.Money
	}

	// PieSlice is one positive share of a pie chart.
	PieSlice struct {
		Label string
		Value core.Money
	}

	// BarEntry is one month's pair of bars.
	BarEntry struct {
		Label   string
		Income  core.Money
		Expense core.Money
	}
)

// ExpenseShares extracts the expense side of a category breakdown,
// preserving its order.
func ExpenseShares(breakdown []core.CategoryBreakdown) []LabeledAmount {
	out := make([]LabeledAmount, len(breakdown))
	for i, b := range breakdown {
		out[i] = LabeledAmount{Label: b.Category, Amount: b.Expense}
	}
	return out
}

// IncomeShares extracts the income side of a category breakdown,
// preserving its order.
func IncomeShares(breakdown []core.CategoryBreakdown) []LabeledAmount {
	out := make([]LabeledAmount, len(breakdown))
	for i, b := range breakdown {
		out[i] = LabeledAmount{Label: b.Category, Amount: b.Income}
	}
	return out
}

// PieSeries drops non-positive entries (a pie cannot render them) and
// keeps the remaining slices in input order. Returns ErrEmptySeries
// when nothing survives.
func PieSeries(entries []LabeledAmount) ([]PieSlice, error) {
	var out []PieSlice
	for _, e := range entries {
		if e.Amount.Cents <= 0 {
			continue
		}
		out = append(out, PieSlice{Label: e.Label, Value: e.Amount})
	}
	if len(out) == 0 {
		return nil, ErrEmptySeries
	}
	return out, nil
}

// BarSeries maps a yearly report onto twelve bar entries, zeros
// included so empty months render at zero height instead of vanishing.
func BarSeries(monthly [12]core.MonthTotal) [12]BarEntry {
	var out [12]BarEntry
	for i, m := range monthly {
		out[i] = BarEntry{
			Label:   m.Month.String(),
			Income:  m.Income,
			Expense: m.Expense,
		}
	}
	return out
}

// Header returns the shared column order for CSV export and tabular
// display.
func Header() []string {
	return []string{"id", "date", "type", "category", "amount", "note"}
}

// Rows flattens transactions into one string row each, columns per
// Header.
func Rows(txns []core.Transaction) [][]string {
	out := make([][]string, len(txns))
	for i, t := range txns {
		out[i] = []string{
			strconv.FormatInt(t.ID, 10),
			t.Date.String(),
			string(t.Type),
			t.Category,
			t.Amount.String(),
			t.Note,
		}
	}
	return out
}
