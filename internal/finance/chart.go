package finance

import "finsight/internal/domain"

// ProjectChart derives the plotting series from a report sequence. The input
// is assumed to be ordered already (Assemble's contract); no sorting happens
// here. Nil metrics chart as 0. Profitability is net profit over revenue in
// percent, and 0 whenever revenue is absent or zero.
func ProjectChart(reports []domain.YearlyReport) domain.ChartSeries {
	series := domain.ChartSeries{
		Years:         make([]int, 0, len(reports)),
		Revenue:       make([]float64, 0, len(reports)),
		NetProfit:     make([]float64, 0, len(reports)),
		Assets:        make([]float64, 0, len(reports)),
		Equity:        make([]float64, 0, len(reports)),
		Profitability: make([]float64, 0, len(reports)),
	}

	for _, r := range reports {
		series.Years = append(series.Years, r.Year)
		series.Revenue = append(series.Revenue, orZero(r.Revenue))
		series.NetProfit = append(series.NetProfit, orZero(r.NetProfit))
		series.Assets = append(series.Assets, orZero(r.TotalAssets))
		series.Equity = append(series.Equity, orZero(r.Equity))

		profitability := 0.0
		if r.Revenue != nil && r.NetProfit != nil && *r.Revenue != 0 {
			profitability = (*r.NetProfit / *r.Revenue) * 100
		}
		series.Profitability = append(series.Profitability, profitability)
	}
	return series
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
