// Package reportsync runs the background refresh of stored yearly reports:
// workers claim queued refresh jobs, pull fresh tables from the finance
// provider and upsert the assembled reports into the store.
package reportsync

import (
	"context"
	"fmt"
	"log"
	"time"

	"finsight/internal/finance"
	"finsight/internal/ports"
)

// Processor performs the refresh work for one claimed job.
type Processor interface {
	Process(ctx context.Context, job ports.RefreshJob) error
}

// FinanceProcessor is the real processor: provider tables in, stored
// reports out. Unlike request handling, a missing provider payload here is
// a failure: the job exists to fetch data, so nothing to fetch means
// nothing was refreshed.
type FinanceProcessor struct {
	Provider ports.CounterpartyProvider
	Reports  ports.ReportRepository
}

func (p FinanceProcessor) Process(ctx context.Context, job ports.RefreshJob) error {
	data, err := p.Provider.Finance(ctx, job.INN)
	if err != nil {
		return fmt.Errorf("finance fetch: %w", err)
	}
	if data == nil {
		return fmt.Errorf("no finance data for %s", job.INN)
	}
	reports := finance.Assemble(*data)
	if len(reports) == 0 {
		return fmt.Errorf("no report years for %s", job.INN)
	}
	return p.Reports.Upsert(ctx, job.CompanyID, reports)
}

// Run starts worker goroutines that claim refresh jobs and process them.
func Run(ctx context.Context, repo ports.RefreshJobRepository, processor Processor, concurrency int, pollInterval time.Duration) {
	if concurrency < 1 {
		return
	}
	jobsCh := make(chan ports.RefreshJob, concurrency)

	// dispatcher loop
	go func() {
		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				close(jobsCh)
				return
			case <-ticker.C:
				for {
					job, found, err := repo.ClaimNext(ctx)
					if err != nil {
						log.Printf("job claim error: %v", err)
						break
					}
					if !found {
						break
					}
					jobsCh <- job
				}
			}
		}
	}()

	// workers
	for i := 0; i < concurrency; i++ {
		go func(idx int) {
			for job := range jobsCh {
				if err := processor.Process(ctx, job); err != nil {
					_ = repo.MarkFailed(ctx, job.ID, err.Error())
					log.Printf("worker %d: job %s failed: %v", idx, job.ID, err)
					continue
				}
				if err := repo.MarkCompleted(ctx, job.ID); err != nil {
					log.Printf("worker %d: complete err: %v", idx, err)
				}
			}
		}(i)
	}
}
