// Package analytics builds the full analytical view of a company: canonical
// yearly reports, chart series, similar companies and the next-year
// forecast.
package analytics

import (
	"context"
	"log"
	"sync"

	"finsight/internal/domain"
	"finsight/internal/finance"
	"finsight/internal/forecast"
	"finsight/internal/merge"
	"finsight/internal/ports"
)

const similarLimit = 20

type Service struct {
	repo          ports.CompanyRepository
	reports       ports.ReportRepository
	jobs          ports.RefreshJobRepository
	counterparty  ports.CounterpartyProvider
	supplementary ports.SupplementaryProvider
}

func New(repo ports.CompanyRepository, reports ports.ReportRepository, jobs ports.RefreshJobRepository,
	counterparty ports.CounterpartyProvider, supplementary ports.SupplementaryProvider) *Service {
	return &Service{
		repo:          repo,
		reports:       reports,
		jobs:          jobs,
		counterparty:  counterparty,
		supplementary: supplementary,
	}
}

// Overview assembles the analytics response. The three provider calls run
// concurrently; each missing payload degrades its slice of the response
// (empty enrichment, empty reports, no forecast) rather than failing it.
func (s *Service) Overview(ctx context.Context, inn string) (domain.Analytics, error) {
	rec, found, err := s.repo.FindByINN(ctx, inn)
	if err != nil {
		return domain.Analytics{}, err
	}
	if !found {
		return domain.Analytics{}, ErrNotFound
	}

	var (
		wg            sync.WaitGroup
		counterparty  *domain.CounterpartyDoc
		financeData   *finance.FinanceData
		supplementary map[string]any
	)
	wg.Add(3)
	go func() {
		defer wg.Done()
		doc, err := s.counterparty.Counterparty(ctx, inn)
		if err != nil {
			log.Printf("counterparty fetch for %s: %v", inn, err)
			return
		}
		counterparty = doc
	}()
	go func() {
		defer wg.Done()
		data, err := s.counterparty.Finance(ctx, inn)
		if err != nil {
			log.Printf("finance fetch for %s: %v", inn, err)
			return
		}
		financeData = data
	}()
	go func() {
		defer wg.Done()
		supplementary = s.supplementary.Fetch(ctx, inn)
	}()
	wg.Wait()

	detail := merge.Merge(rec, counterparty, supplementary)
	reports := s.resolveReports(ctx, rec, financeData)

	var similar []domain.CompanySummary
	if rec.OKVED != "" {
		recs, err := s.repo.FindSimilar(ctx, rec.OKVED, inn, similarLimit)
		if err != nil {
			log.Printf("similar companies for %s: %v", inn, err)
		}
		for _, r := range recs {
			similar = append(similar, r.Summary())
		}
	}

	return domain.Analytics{
		Company:          detail,
		Reports:          reports,
		ChartData:        finance.ProjectChart(reports),
		SimilarCompanies: similar,
		PredictedData:    forecast.Next(reports),
	}, nil
}

// Forecast produces the standalone forecast with its explanation.
func (s *Service) Forecast(ctx context.Context, inn string) (ports.ForecastResult, error) {
	rec, found, err := s.repo.FindByINN(ctx, inn)
	if err != nil {
		return ports.ForecastResult{}, err
	}
	if !found {
		return ports.ForecastResult{}, ErrNotFound
	}

	financeData, err := s.counterparty.Finance(ctx, inn)
	if err != nil {
		log.Printf("finance fetch for %s: %v", inn, err)
	}
	reports := s.resolveReports(ctx, rec, financeData)
	if len(reports) == 0 {
		return ports.ForecastResult{}, ErrNoFinanceData
	}

	predicted := forecast.Next(reports)
	if predicted == nil {
		return ports.ForecastResult{}, ErrNotEnoughData
	}
	return ports.ForecastResult{
		Prediction:    *predicted,
		Explanation:   forecast.Explain(predicted, reports),
		BaseDataYears: len(reports),
		LastYear:      reports[len(reports)-1].Year,
	}, nil
}

// Refresh enqueues a background sync of the company's stored reports.
func (s *Service) Refresh(ctx context.Context, inn string) (string, error) {
	rec, found, err := s.repo.FindByINN(ctx, inn)
	if err != nil {
		return "", err
	}
	if !found {
		return "", ErrNotFound
	}
	return s.jobs.Enqueue(ctx, rec.CompanyID, rec.INN)
}

// resolveReports prefers fresh provider tables; the store's synced reports
// are the fallback when the provider had nothing.
func (s *Service) resolveReports(ctx context.Context, rec domain.CompanyRecord, data *finance.FinanceData) []domain.YearlyReport {
	if data != nil {
		if reports := finance.Assemble(*data); len(reports) > 0 {
			return reports
		}
	}
	stored, err := s.reports.ByCompany(ctx, rec.CompanyID)
	if err != nil {
		log.Printf("stored reports for company %d: %v", rec.CompanyID, err)
		return nil
	}
	return stored
}

var (
	ErrNotFound      = errString("company not found")
	ErrNoFinanceData = errString("no financial data")
	ErrNotEnoughData = errString("not enough data to forecast")
)

type errString string

func (e errString) Error() string { return string(e) }
