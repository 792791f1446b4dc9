package ports

import (
	"context"

	"finsight/internal/domain"
)

// Companies answers search and detail requests.
type Companies interface {
	Search(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.CompanySummary, int, error)
	Detail(ctx context.Context, inn string) (domain.CompanyDetail, error)
}

// Analytics builds the report/chart/forecast view of a company.
type Analytics interface {
	Overview(ctx context.Context, inn string) (domain.Analytics, error)
	Forecast(ctx context.Context, inn string) (ForecastResult, error)
	Refresh(ctx context.Context, inn string) (jobID string, err error)
}

// ForecastResult is the standalone-forecast response: the projection, its
// explanation, and the historical base it rests on.
type ForecastResult struct {
	Prediction    domain.ForecastReport      `json:"prediction"`
	Explanation   domain.ForecastExplanation `json:"explanation"`
	BaseDataYears int                        `json:"base_data_years"`
	LastYear      int                        `json:"last_year"`
}

// Analyzer streams a narrative company analysis, chunk by chunk, through
// emit. Returning emit's error aborts the stream.
type Analyzer interface {
	Stream(ctx context.Context, inn string, emit func(chunk string) error) error
}
