package ports

import (
	"context"

	"finsight/internal/domain"
)

// CompanyRepository reads the local company store. The store is the source
// of truth for identity; everything else in the system only enriches it.
type CompanyRepository interface {
	// FindByINN looks a company up by tax number, tolerating the legacy
	// ".0" suffix some imported rows carry.
	FindByINN(ctx context.Context, inn string) (rec domain.CompanyRecord, found bool, err error)

	// Search applies the flexible filter and returns up to limit records
	// ordered by name, plus the total match count.
	Search(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.CompanyRecord, int, error)

	// FindSimilar returns companies sharing an activity code, excluding the
	// subject company itself.
	FindSimilar(ctx context.Context, okved, excludeINN string, limit int) ([]domain.CompanyRecord, error)
}

// ReportRepository stores per-year financial reports. Stored reports serve
// as a fallback when the finance provider has nothing; they are written by
// the background sync worker, never by request handling.
type ReportRepository interface {
	ByCompany(ctx context.Context, companyID int64) ([]domain.YearlyReport, error)
	Upsert(ctx context.Context, companyID int64, reports []domain.YearlyReport) error
}
