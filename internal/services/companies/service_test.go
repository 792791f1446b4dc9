package companies

import (
	"context"
	"errors"
	"testing"

	"finsight/internal/domain"
	"finsight/internal/finance"
)

type fakeRepo struct {
	records map[string]domain.CompanyRecord
}

func (f *fakeRepo) FindByINN(_ context.Context, inn string) (domain.CompanyRecord, bool, error) {
	rec, ok := f.records[inn]
	return rec, ok, nil
}

func (f *fakeRepo) Search(_ context.Context, filter domain.SearchFilter, limit int) ([]domain.CompanyRecord, int, error) {
	var out []domain.CompanyRecord
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, len(out), nil
}

func (f *fakeRepo) FindSimilar(context.Context, string, string, int) ([]domain.CompanyRecord, error) {
	return nil, nil
}

type fakeCounterparty struct {
	doc *domain.CounterpartyDoc
	err error
}

func (f *fakeCounterparty) Counterparty(context.Context, string) (*domain.CounterpartyDoc, error) {
	return f.doc, f.err
}

func (f *fakeCounterparty) Finance(context.Context, string) (*finance.FinanceData, error) {
	return nil, errors.New("not used here")
}

type fakeSupplementary struct{ payload map[string]any }

func (f *fakeSupplementary) Fetch(context.Context, string) map[string]any { return f.payload }

func TestDetailMergesAllSources(t *testing.T) {
	repo := &fakeRepo{records: map[string]domain.CompanyRecord{
		"7701234567": {CompanyID: 1, Name: "ACME", INN: "7701234567", RegionCode: "77"},
	}}
	cp := &fakeCounterparty{doc: &domain.CounterpartyDoc{Raw: map[string]any{
		"company": map[string]any{"kpp": "770101001"},
	}}}
	supp := &fakeSupplementary{payload: map[string]any{"source": "rusprofile"}}

	svc := New(repo, cp, supp)
	got, err := svc.Detail(context.Background(), "7701234567")
	if err != nil {
		t.Fatalf("detail: %v", err)
	}
	if got.Name != "ACME" || got.KPP != "770101001" {
		t.Errorf("merged detail: %+v", got)
	}
	if got.Supplementary["source"] != "rusprofile" {
		t.Errorf("supplementary: %v", got.Supplementary)
	}
}

func TestDetailUnknownCompany(t *testing.T) {
	svc := New(&fakeRepo{}, &fakeCounterparty{}, &fakeSupplementary{})
	_, err := svc.Detail(context.Background(), "0000000000")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDetailSurvivesProviderFailure(t *testing.T) {
	repo := &fakeRepo{records: map[string]domain.CompanyRecord{
		"7701234567": {CompanyID: 1, Name: "ACME", INN: "7701234567"},
	}}
	cp := &fakeCounterparty{err: errors.New("upstream down")}
	supp := &fakeSupplementary{payload: map[string]any{"error": "timeout"}}

	got, err := New(repo, cp, supp).Detail(context.Background(), "7701234567")
	if err != nil {
		t.Fatalf("a provider failure must not fail the detail: %v", err)
	}
	if got.Name != "ACME" {
		t.Errorf("local data survives: %+v", got)
	}
	if got.Supplementary["error"] != "timeout" {
		t.Errorf("supplementary still attaches: %v", got.Supplementary)
	}
}

func TestSearchMapsToSummaries(t *testing.T) {
	repo := &fakeRepo{records: map[string]domain.CompanyRecord{
		"7701234567": {CompanyID: 1, Name: "ACME", INN: "7701234567", RegionCode: "77"},
	}}
	svc := New(repo, &fakeCounterparty{}, &fakeSupplementary{})

	got, total, err := svc.Search(context.Background(), domain.SearchFilter{Name: "ACME"}, 10)
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || len(got) != 1 {
		t.Fatalf("expected one hit, got %d/%d", len(got), total)
	}
	if got[0].Location != "Region code: 77" {
		t.Errorf("summary location: %q", got[0].Location)
	}
}
