package domain

import "fmt"

// Core domain models. These are plain value objects constructed per request;
// handlers encode them to JSON directly.

// CompanyRecord is a row from the local company store. The local store is
// authoritative for identity fields; providers only ever enrich.
type CompanyRecord struct {
	CompanyID  int64
	Name       string
	INN        string
	OKVED      string // primary activity code
	OKVEDExtra string // secondary activity code
	RegionCode string
}

// Location renders the region code the way the search and detail responses
// expose it, or "" when the record has no region.
func (c CompanyRecord) Location() string {
	if c.RegionCode == "" {
		return ""
	}
	return fmt.Sprintf("Region code: %s", c.RegionCode)
}

// Summary converts a record to its search-result shape.
func (c CompanyRecord) Summary() CompanySummary {
	return CompanySummary{
		CompanyID:  c.CompanyID,
		Name:       c.Name,
		INN:        c.INN,
		OKVED:      c.OKVED,
		OKVEDExtra: c.OKVEDExtra,
		Location:   c.Location(),
	}
}

// CompanySummary is the search-result shape.
type CompanySummary struct {
	CompanyID  int64  `json:"company_id"`
	Name       string `json:"name"`
	INN        string `json:"inn"`
	OKVED      string `json:"okved,omitempty"`
	OKVEDExtra string `json:"okved_o,omitempty"`
	Location   string `json:"location,omitempty"`
}

// SearchFilter carries the flexible-search parameters. Empty fields are
// ignored; at least one must be set for a search to make sense.
type SearchFilter struct {
	Name   string
	OKVED  string
	INN    string
	Region string
}

// Empty reports whether no filter field is set.
func (f SearchFilter) Empty() bool {
	return f.Name == "" && f.OKVED == "" && f.INN == "" && f.Region == ""
}

// Ownership holds the two owner groups from the counterparty payload. Entries
// stay loosely typed: provider schemas drift and an unknown field must never
// break the record.
type Ownership struct {
	Individuals []map[string]any `json:"fl,omitempty"`
	Companies   []map[string]any `json:"ul,omitempty"`
}

// CompanyDetail is the reconciled view of a company: local identity plus
// whatever the providers knew. Empty enrichment fields mean the provider had
// nothing, which is a normal state.
type CompanyDetail struct {
	CompanyID  int64  `json:"company_id"`
	Name       string `json:"name"`
	INN        string `json:"inn"`
	OKVED      string `json:"okved,omitempty"`
	OKVEDExtra string `json:"okved_o,omitempty"`
	Location   string `json:"location,omitempty"`

	// Counterparty enrichment.
	FullName         string           `json:"full_name,omitempty"`
	OGRN             string           `json:"ogrn,omitempty"`
	KPP              string           `json:"kpp,omitempty"`
	LegalForm        string           `json:"opf,omitempty"`
	Address          string           `json:"address,omitempty"`
	RegistrationDate string           `json:"registration_date,omitempty"`
	CharterCapital   string           `json:"charter_capital,omitempty"`
	Status           map[string]any   `json:"status,omitempty"`
	Owners           *Ownership       `json:"owners,omitempty"`
	Managers         []map[string]any `json:"managers,omitempty"`
	TaxModeInfo      map[string]any   `json:"tax_mode_info,omitempty"`

	// Supplementary provider payload, attached opaque.
	Supplementary map[string]any `json:"rusprofile_data,omitempty"`
}

// YearlyReport is one year of normalized financials in base currency units.
// Nil means "no data"; 0 is a reported zero. The provider feed cannot always
// tell the two apart, see the assembler.
type YearlyReport struct {
	Year            int      `json:"year"`
	Revenue         *float64 `json:"revenue_cur"`
	GrossProfit     *float64 `json:"gross_profit_cur"`
	OperatingProfit *float64 `json:"oper_profit_cur"`
	NetProfit       *float64 `json:"net_profit_cur"`
	TotalAssets     *float64 `json:"balance_assets_eoy"`
	Equity          *float64 `json:"equity_eoy"`
}

// ForecastReport is a one-year-ahead projection with a confidence score in
// [0,1]. A nil metric means that metric had too little history to fit.
type ForecastReport struct {
	Year        int      `json:"year"`
	Revenue     *float64 `json:"revenue_cur"`
	NetProfit   *float64 `json:"net_profit_cur"`
	TotalAssets *float64 `json:"balance_assets_eoy"`
	Equity      *float64 `json:"equity_eoy"`
	Confidence  float64  `json:"confidence"`
}

// ChartSeries is the plotting-ready aggregate over a report sequence. All
// slices are index-aligned with the input reports.
type ChartSeries struct {
	Years         []int     `json:"years"`
	Revenue       []float64 `json:"revenue"`
	NetProfit     []float64 `json:"net_profit"`
	Assets        []float64 `json:"assets"`
	Equity        []float64 `json:"equity"`
	Profitability []float64 `json:"profitability"`
}

// MetricChange describes the forecast delta for one metric versus the latest
// historical year.
type MetricChange struct {
	Percent   float64 `json:"percent"`
	Direction string  `json:"direction"` // "growth" or "decline"
}

// ForecastExplanation is the human-readable account of a forecast.
type ForecastExplanation struct {
	Method          string                  `json:"method"`
	DataPoints      int                     `json:"data_points"`
	ConfidenceLevel float64                 `json:"confidence_level"`
	ConfidenceText  string                  `json:"confidence_text"`
	Changes         map[string]MetricChange `json:"changes"`
}

// Analytics is the full analytics response for one company.
type Analytics struct {
	Company          CompanyDetail    `json:"company"`
	Reports          []YearlyReport   `json:"reports"`
	ChartData        ChartSeries      `json:"chart_data"`
	SimilarCompanies []CompanySummary `json:"similar_companies"`
	PredictedData    *ForecastReport  `json:"predicted_data,omitempty"`
}
