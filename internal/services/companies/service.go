// Package companies answers company search and detail requests, reconciling
// the local store with both external providers.
package companies

import (
	"context"
	"log"
	"sync"

	"finsight/internal/domain"
	"finsight/internal/merge"
	"finsight/internal/ports"
)

type Service struct {
	repo          ports.CompanyRepository
	counterparty  ports.CounterpartyProvider
	supplementary ports.SupplementaryProvider
}

func New(repo ports.CompanyRepository, counterparty ports.CounterpartyProvider, supplementary ports.SupplementaryProvider) *Service {
	return &Service{repo: repo, counterparty: counterparty, supplementary: supplementary}
}

func (s *Service) Search(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.CompanySummary, int, error) {
	recs, total, err := s.repo.Search(ctx, filter, limit)
	if err != nil {
		return nil, 0, err
	}
	summaries := make([]domain.CompanySummary, 0, len(recs))
	for _, rec := range recs {
		summaries = append(summaries, rec.Summary())
	}
	return summaries, total, nil
}

// Detail returns the reconciled company view. Both provider calls run
// concurrently and both are optional: a provider failure is logged and the
// merge proceeds with whatever arrived.
func (s *Service) Detail(ctx context.Context, inn string) (domain.CompanyDetail, error) {
	rec, found, err := s.repo.FindByINN(ctx, inn)
	if err != nil {
		return domain.CompanyDetail{}, err
	}
	if !found {
		return domain.CompanyDetail{}, ErrNotFound
	}

	counterparty, supplementary := s.fetchEnrichment(ctx, inn)
	return merge.Merge(rec, counterparty, supplementary), nil
}

// fetchEnrichment issues both provider calls at once. Neither result is a
// prerequisite for the other, and the absence of either is a normal outcome.
func (s *Service) fetchEnrichment(ctx context.Context, inn string) (counterparty *domain.CounterpartyDoc, supplementary map[string]any) {
	var wg sync.WaitGroup
	wg.Add(2)
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
		supplementary = s.supplementary.Fetch(ctx, inn)
	}()
	wg.Wait()
	return counterparty, supplementary
}

var ErrNotFound = errString("company not found")

type errString string

func (e errString) Error() string { return string(e) }
