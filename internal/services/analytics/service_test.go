package analytics

import (
	"context"
	"errors"
	"testing"

	"finsight/internal/domain"
	"finsight/internal/finance"
	"finsight/internal/ports"
)

type fakeRepo struct {
	rec     domain.CompanyRecord
	found   bool
	similar []domain.CompanyRecord
}

func (f *fakeRepo) FindByINN(context.Context, string) (domain.CompanyRecord, bool, error) {
	return f.rec, f.found, nil
}

func (f *fakeRepo) Search(context.Context, domain.SearchFilter, int) ([]domain.CompanyRecord, int, error) {
	return nil, 0, nil
}

func (f *fakeRepo) FindSimilar(context.Context, string, string, int) ([]domain.CompanyRecord, error) {
	return f.similar, nil
}

type fakeReports struct {
	stored   []domain.YearlyReport
	upserted []domain.YearlyReport
}

func (f *fakeReports) ByCompany(context.Context, int64) ([]domain.YearlyReport, error) {
	return f.stored, nil
}

func (f *fakeReports) Upsert(_ context.Context, _ int64, reports []domain.YearlyReport) error {
	f.upserted = reports
	return nil
}

type fakeJobs struct{ enqueued []string }

func (f *fakeJobs) Enqueue(_ context.Context, _ int64, inn string) (string, error) {
	f.enqueued = append(f.enqueued, inn)
	return "job-1", nil
}
func (f *fakeJobs) ClaimNext(context.Context) (ports.RefreshJob, bool, error) {
	return ports.RefreshJob{}, false, nil
}
func (f *fakeJobs) MarkCompleted(context.Context, string) error      { return nil }
func (f *fakeJobs) MarkFailed(context.Context, string, string) error { return nil }

type fakeProvider struct {
	data *finance.FinanceData
	err  error
}

func (f *fakeProvider) Counterparty(context.Context, string) (*domain.CounterpartyDoc, error) {
	return nil, errors.New("no profile")
}

func (f *fakeProvider) Finance(context.Context, string) (*finance.FinanceData, error) {
	return f.data, f.err
}

type fakeSupp struct{}

func (fakeSupp) Fetch(context.Context, string) map[string]any {
	return map[string]any{"source": "rusprofile"}
}

func financeFixture() *finance.FinanceData {
	return &finance.FinanceData{
		FinResults: finance.LineItemTable{
			Years: []int{2021, 2022, 2023},
			Indicators: []finance.Indicator{
				{Code: "2110", Sums: map[string]any{"2021": 100.0, "2022": 200.0, "2023": 300.0}},
			},
		},
	}
}

func TestOverview(t *testing.T) {
	repo := &fakeRepo{
		rec:   domain.CompanyRecord{CompanyID: 1, Name: "ACME", INN: "7701234567", OKVED: "62.01"},
		found: true,
		similar: []domain.CompanyRecord{
			{CompanyID: 2, Name: "Rival", INN: "7707654321"},
		},
	}
	svc := New(repo, &fakeReports{}, &fakeJobs{}, &fakeProvider{data: financeFixture()}, fakeSupp{})

	got, err := svc.Overview(context.Background(), "7701234567")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if got.Company.Name != "ACME" {
		t.Errorf("company: %+v", got.Company)
	}
	if len(got.Reports) != 3 {
		t.Fatalf("expected 3 reports, got %d", len(got.Reports))
	}
	if len(got.ChartData.Years) != 3 {
		t.Errorf("chart years: %v", got.ChartData.Years)
	}
	if len(got.SimilarCompanies) != 1 || got.SimilarCompanies[0].Name != "Rival" {
		t.Errorf("similar: %+v", got.SimilarCompanies)
	}
	// Revenue 100k/200k/300k extrapolates to 400k for 2024.
	if got.PredictedData == nil || got.PredictedData.Year != 2024 {
		t.Fatalf("predicted: %+v", got.PredictedData)
	}
	if got.PredictedData.Revenue == nil || *got.PredictedData.Revenue != 400_000 {
		t.Errorf("predicted revenue: %v", got.PredictedData.Revenue)
	}
	// The failed counterparty fetch degrades to local-only detail.
	if got.Company.KPP != "" {
		t.Errorf("no counterparty data expected, got %+v", got.Company)
	}
	if got.Company.Supplementary["source"] != "rusprofile" {
		t.Errorf("supplementary: %v", got.Company.Supplementary)
	}
}

func TestOverviewFallsBackToStoredReports(t *testing.T) {
	repo := &fakeRepo{rec: domain.CompanyRecord{CompanyID: 1, INN: "7701234567"}, found: true}
	rev := 500_000.0
	stored := &fakeReports{stored: []domain.YearlyReport{{Year: 2022, Revenue: &rev}}}
	svc := New(repo, stored, &fakeJobs{}, &fakeProvider{err: errors.New("down")}, fakeSupp{})

	got, err := svc.Overview(context.Background(), "7701234567")
	if err != nil {
		t.Fatalf("overview: %v", err)
	}
	if len(got.Reports) != 1 || got.Reports[0].Year != 2022 {
		t.Errorf("expected stored fallback, got %+v", got.Reports)
	}
}

func TestForecast(t *testing.T) {
	repo := &fakeRepo{rec: domain.CompanyRecord{CompanyID: 1, INN: "7701234567"}, found: true}
	svc := New(repo, &fakeReports{}, &fakeJobs{}, &fakeProvider{data: financeFixture()}, fakeSupp{})

	got, err := svc.Forecast(context.Background(), "7701234567")
	if err != nil {
		t.Fatalf("forecast: %v", err)
	}
	if got.Prediction.Year != 2024 || got.LastYear != 2023 || got.BaseDataYears != 3 {
		t.Errorf("result shape: %+v", got)
	}
	if got.Explanation.Method == "" {
		t.Error("explanation missing")
	}
}

func TestForecastErrorTaxonomy(t *testing.T) {
	repo := &fakeRepo{rec: domain.CompanyRecord{CompanyID: 1}, found: true}

	// No provider data and nothing stored: no finance data at all.
	svc := New(repo, &fakeReports{}, &fakeJobs{}, &fakeProvider{err: errors.New("down")}, fakeSupp{})
	if _, err := svc.Forecast(context.Background(), "7701234567"); !errors.Is(err, ErrNoFinanceData) {
		t.Errorf("expected ErrNoFinanceData, got %v", err)
	}

	// One stored year: data exists but cannot be extrapolated.
	rev := 100.0
	stored := &fakeReports{stored: []domain.YearlyReport{{Year: 2023, Revenue: &rev}}}
	svc = New(repo, stored, &fakeJobs{}, &fakeProvider{err: errors.New("down")}, fakeSupp{})
	if _, err := svc.Forecast(context.Background(), "7701234567"); !errors.Is(err, ErrNotEnoughData) {
		t.Errorf("expected ErrNotEnoughData, got %v", err)
	}

	// Unknown company.
	svc = New(&fakeRepo{}, &fakeReports{}, &fakeJobs{}, &fakeProvider{}, fakeSupp{})
	if _, err := svc.Forecast(context.Background(), "0"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestRefreshEnqueues(t *testing.T) {
	repo := &fakeRepo{rec: domain.CompanyRecord{CompanyID: 1, INN: "7701234567"}, found: true}
	jobs := &fakeJobs{}
	svc := New(repo, &fakeReports{}, jobs, &fakeProvider{}, fakeSupp{})

	id, err := svc.Refresh(context.Background(), "7701234567")
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if id != "job-1" || len(jobs.enqueued) != 1 {
		t.Errorf("enqueue: id=%q jobs=%v", id, jobs.enqueued)
	}
}
