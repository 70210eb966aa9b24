// Package chart renders report series as chart artifacts. It is the
// image sink behind the report adapter; callers hand it already
// computed series and get back the written file path.
package chart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"fintrack/internal/report"
)

type Renderer struct {
	dir string
}

func NewRenderer(dir string) *Renderer {
	return &Renderer{dir: dir}
}

// RenderYearReport writes a report_<year>.html page with the category
// pies and the monthly income/expense bars. Nil pie series are skipped;
// callers decide that via report.ErrEmptySeries.
func (r *Renderer) RenderYearReport(year int, expenses, income []report.PieSlice, bars [12]report.BarEntry) (string, error) {
	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Financial Report %d", year)

	if len(expenses) > 0 {
		page.AddCharts(pieChart("Expenses by Category", expenses))
	}
	if len(income) > 0 {
		page.AddCharts(pieChart("Income by Category", income))
	}
	page.AddCharts(barChart(fmt.Sprintf("Monthly Totals %d", year), bars))

	path := filepath.Join(r.dir, fmt.Sprintf("report_%d.html", year))
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create chart file: %w", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return "", fmt.Errorf("render charts: %w", err)
	}
	return path, nil
}

func pieChart(title string, slices []report.PieSlice) *charts.Pie {
	pie := charts.NewPie()
	pie.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	items := make([]opts.PieData, len(slices))
	for i, s := range slices {
		items[i] = opts.PieData{Name: s.Label, Value: s.Value.Float64()}
	}
	pie.AddSeries(title, items)
	return pie
}

func barChart(title string, bars [12]report.BarEntry) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: title}))

	labels := make([]string, len(bars))
	incomeData := make([]opts.BarData, len(bars))
	expenseData := make([]opts.BarData, len(bars))
	for i, b := range bars {
		labels[i] = b.Label
		incomeData[i] = opts.BarData{Value: b.Income.Float64()}
		expenseData[i] = opts.BarData{Value: b.Expense.Float64()}
	}

	bar.SetXAxis(labels).
		AddSeries("Income", incomeData).
		AddSeries("Expense", expenseData)
	return bar
}
