package ports

import "context"

// RefreshJob asks the sync worker to refresh one company's stored reports
// from the finance provider.
type RefreshJob struct {
	ID        string
	CompanyID int64
	INN       string
}

// RefreshJobRepository supports enqueueing and claiming report refresh jobs.
type RefreshJobRepository interface {
	Enqueue(ctx context.Context, companyID int64, inn string) (jobID string, err error)
	ClaimNext(ctx context.Context) (job RefreshJob, found bool, err error)
	MarkCompleted(ctx context.Context, jobID string) error
	MarkFailed(ctx context.Context, jobID string, reason string) error
}
