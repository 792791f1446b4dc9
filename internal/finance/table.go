// Package finance turns raw provider line-item tables into canonical yearly
// reports and derives chart-ready aggregates from them. Everything here is a
// pure function over its inputs.
package finance

// LineItemTable is one raw statement table as the finance provider ships it:
// a list of indicators keyed by accounting code, each holding per-year sums
// stated in thousands of currency units. The table only lives for the
// duration of an Assemble call.
type LineItemTable struct {
	Years      []int       `json:"years"`
	Indicators []Indicator `json:"indicators"`
}

// Indicator is one accounting line. Sums is keyed by year-as-text; values are
// left loosely typed because the feed occasionally carries nulls or strings
// where numbers belong.
type Indicator struct {
	Code string         `json:"code"`
	Sums map[string]any `json:"sum"`
}

// FinanceData is the full financials payload: the balance sheet table and the
// income statement ("financial results") table.
type FinanceData struct {
	Balances   LineItemTable `json:"balances"`
	FinResults LineItemTable `json:"fin_results"`
}

// value looks up one code/year cell. Any failure along the way (unknown
// code, missing year key, non-numeric cell) yields (0, false); a malformed
// table must never fail assembly.
func (t LineItemTable) value(code, year string) (float64, bool) {
	for _, ind := range t.Indicators {
		if ind.Code != code {
			continue
		}
		switch v := ind.Sums[year].(type) {
		case float64:
			return v, true
		case int:
			return float64(v), true
		default:
			return 0, false
		}
	}
	return 0, false
}
