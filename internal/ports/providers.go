package ports

import (
	"context"

	"finsight/internal/domain"
	"finsight/internal/finance"
)

// CounterpartyProvider is the primary external data provider. Both calls
// treat upstream failure as "no data": callers log the error and carry on
// with a nil payload.
type CounterpartyProvider interface {
	// Counterparty fetches the entity profile (names, address, owners,
	// management, activity codes).
	Counterparty(ctx context.Context, inn string) (*domain.CounterpartyDoc, error)

	// Finance fetches the raw balance-sheet and income-statement tables.
	Finance(ctx context.Context, inn string) (*finance.FinanceData, error)
}

// SupplementaryProvider is the secondary provider whose payload is attached
// to the company detail without field-level merging. Fetch never fails: a
// scraping error is recorded inside the returned document instead.
type SupplementaryProvider interface {
	Fetch(ctx context.Context, inn string) map[string]any
}
