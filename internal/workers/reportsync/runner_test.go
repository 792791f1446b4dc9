package reportsync

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"finsight/internal/domain"
	"finsight/internal/finance"
	"finsight/internal/ports"
)

type memJobs struct {
	mu        sync.Mutex
	queue     []ports.RefreshJob
	completed []string
	failed    map[string]string
}

func newMemJobs(jobs ...ports.RefreshJob) *memJobs {
	return &memJobs{queue: jobs, failed: map[string]string{}}
}

func (m *memJobs) Enqueue(context.Context, int64, string) (string, error) {
	return "", errors.New("not used")
}

func (m *memJobs) ClaimNext(context.Context) (ports.RefreshJob, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) == 0 {
		return ports.RefreshJob{}, false, nil
	}
	job := m.queue[0]
	m.queue = m.queue[1:]
	return job, true, nil
}

func (m *memJobs) MarkCompleted(_ context.Context, jobID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.completed = append(m.completed, jobID)
	return nil
}

func (m *memJobs) MarkFailed(_ context.Context, jobID, reason string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failed[jobID] = reason
	return nil
}

func (m *memJobs) snapshot() ([]string, map[string]string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	completed := append([]string(nil), m.completed...)
	failed := make(map[string]string, len(m.failed))
	for k, v := range m.failed {
		failed[k] = v
	}
	return completed, failed
}

type stubProvider struct {
	data map[string]*finance.FinanceData
}

func (s stubProvider) Counterparty(context.Context, string) (*domain.CounterpartyDoc, error) {
	return nil, errors.New("not used")
}

func (s stubProvider) Finance(_ context.Context, inn string) (*finance.FinanceData, error) {
	data, ok := s.data[inn]
	if !ok {
		return nil, errors.New("provider down")
	}
	return data, nil
}

type memReports struct {
	mu       sync.Mutex
	upserted map[int64][]domain.YearlyReport
}

func (m *memReports) ByCompany(context.Context, int64) ([]domain.YearlyReport, error) {
	return nil, nil
}

func (m *memReports) Upsert(_ context.Context, companyID int64, reports []domain.YearlyReport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.upserted == nil {
		m.upserted = map[int64][]domain.YearlyReport{}
	}
	m.upserted[companyID] = reports
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		if cond() {
			return
		}
		select {
		case <-deadline:
			t.Fatal("condition not met in time")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestRunProcessesQueuedJobs(t *testing.T) {
	jobs := newMemJobs(
		ports.RefreshJob{ID: "j1", CompanyID: 1, INN: "7701234567"},
		ports.RefreshJob{ID: "j2", CompanyID: 2, INN: "0000000000"},
	)
	reports := &memReports{}
	provider := stubProvider{data: map[string]*finance.FinanceData{
		"7701234567": {
			FinResults: finance.LineItemTable{
				Years:      []int{2023},
				Indicators: []finance.Indicator{{Code: "2110", Sums: map[string]any{"2023": 100.0}}},
			},
		},
	}}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	Run(ctx, jobs, FinanceProcessor{Provider: provider, Reports: reports}, 2, 10*time.Millisecond)

	waitFor(t, func() bool {
		completed, failed := jobs.snapshot()
		return len(completed) == 1 && len(failed) == 1
	})

	completed, failed := jobs.snapshot()
	if completed[0] != "j1" {
		t.Errorf("completed: %v", completed)
	}
	// The unknown INN fails its job with the provider error as the reason.
	if reason := failed["j2"]; reason == "" {
		t.Errorf("failed: %v", failed)
	}

	reports.mu.Lock()
	defer reports.mu.Unlock()
	if got := reports.upserted[1]; len(got) != 1 || got[0].Year != 2023 {
		t.Errorf("upserted reports: %+v", got)
	}
	if _, ok := reports.upserted[2]; ok {
		t.Error("failed job must not upsert")
	}
}

func TestFinanceProcessorEmptyTables(t *testing.T) {
	provider := stubProvider{data: map[string]*finance.FinanceData{"77": {}}}
	p := FinanceProcessor{Provider: provider, Reports: &memReports{}}

	err := p.Process(context.Background(), ports.RefreshJob{ID: "j1", CompanyID: 1, INN: "77"})
	if err == nil {
		t.Error("empty tables refresh nothing and must fail the job")
	}
}
