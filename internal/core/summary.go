package core

import "time"

// Summary holds ledger-wide totals. Net may be negative.
type Summary struct {
	TotalIncome  Money
	TotalExpense Money
	Net          Money
}

// CategoryBreakdown aggregates one category's records.
type CategoryBreakdown struct {
	Category string
	Income   Money
	Expense  Money
	Net      Money
}

// MonthTotal is one month's slice of a yearly report.
type MonthTotal struct {
	Month   time.Month
	Income  Money
	Expense Money
	Net     Money
}

// Summarize reduces a set of transactions to income/expense/net totals.
// Empty input yields all zeros.
func Summarize(txns []Transaction) Summary {
	var s Summary
	for _, t := range txns {
		switch t.Type {
		case Income:
			s.TotalIncome = s.TotalIncome.Add(t.Amount)
		case Expense:
			s.TotalExpense = s.TotalExpense.Add(t.Amount)
		}
	}
	s.Net = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// ByCategory groups transactions by their category field, case-sensitive,
// in first-seen order. A zero-amount transaction still registers its
// category.
func ByCategory(txns []Transaction) []CategoryBreakdown {
	index := make(map[string]int)
	var out []CategoryBreakdown
	for _, t := range txns {
		i, ok := index[t.Category]
		if !ok {
			i = len(out)
			index[t.Category] = i
			out = append(out, CategoryBreakdown{Category: t.Category})
		}
		switch t.Type {
		case Income:
			out[i].Income = out[i].Income.Add(t.Amount)
		case Expense:
			out[i].Expense = out[i].Expense.Add(t.Amount)
		}
	}
	for i := range out {
		out[i].Net = out[i].Income.Sub(out[i].Expense)
	}
	return out
}

// MonthlyReport buckets a year's transactions into twelve month totals,
// January through December. Transactions outside year are ignored;
// months without transactions stay zero.
func MonthlyReport(txns []Transaction, year int) [12]MonthTotal {
	var report [12]MonthTotal
	for i := range report {
		report[i].Month = time.Month(i + 1)
	}
	for _, t := range txns {
		if t.Date.Year() != year {
			continue
		}
		m := &report[t.Date.Month()-1]
		switch t.Type {
		case Income:
			m.Income = m.Income.Add(t.Amount)
		case Expense:
			m.Expense = m.Expense.Add(t.Amount)
		}
	}
	for i := range report {
		report[i].Net = report[i].Income.Sub(report[i].Expense)
	}
	return report
}
