package finance

import (
	"sort"
	"strconv"

	"finsight/internal/domain"
)

// Accounting codes for the six metrics a yearly report carries. Income
// statement codes live in fin_results, balance codes in balances.
const (
	codeRevenue         = "2110"
	codeGrossProfit     = "2100"
	codeOperatingProfit = "2200"
	codeNetProfit       = "2400"
	codeTotalAssets     = "1600"
	codeEquity          = "1300"
)

// Assemble converts the raw provider tables into the canonical report
// sequence, one report per year, ascending. Years come from the union of
// both tables; a year where every lookup fails still produces a report, with
// zeros. Assemble never fails on malformed provider data.
func Assemble(data FinanceData) []domain.YearlyReport {
	years := unionYears(data.Balances.Years, data.FinResults.Years)

	reports := make([]domain.YearlyReport, 0, len(years))
	for _, year := range years {
		ys := strconv.Itoa(year)
		reports = append(reports, domain.YearlyReport{
			Year:            year,
			Revenue:         scaled(data.FinResults, codeRevenue, ys),
			GrossProfit:     scaled(data.FinResults, codeGrossProfit, ys),
			OperatingProfit: scaled(data.FinResults, codeOperatingProfit, ys),
			NetProfit:       scaled(data.FinResults, codeNetProfit, ys),
			TotalAssets:     scaled(data.Balances, codeTotalAssets, ys),
			Equity:          scaled(data.Balances, codeEquity, ys),
		})
	}
	sort.SliceStable(reports, func(i, j int) bool { return reports[i].Year < reports[j].Year })
	return reports
}

func scaled(t LineItemTable, code, year string) *float64 {
	v := Scale(t.value(code, year))
	return &v
}

func unionYears(a, b []int) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	for _, y := range a {
		seen[y] = struct{}{}
	}
	for _, y := range b {
		seen[y] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
