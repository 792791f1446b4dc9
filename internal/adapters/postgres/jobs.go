package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"finsight/internal/ports"
)

// Enqueue inserts a refresh job in the queued state.
func (db *DB) Enqueue(ctx context.Context, companyID int64, inn string) (string, error) {
	id := uuid.NewString()
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO refresh_jobs (id, company_id, inn, status)
		VALUES ($1, $2, $3, 'queued')
	`, id, companyID, inn)
	if err != nil {
		return "", err
	}
	return id, nil
}

// ClaimNext selects the next queued job using SKIP LOCKED and marks it
// running, so concurrent workers never claim the same job twice.
func (db *DB) ClaimNext(ctx context.Context) (job ports.RefreshJob, found bool, err error) {
	tx, err := db.Pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return job, false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	err = tx.QueryRow(ctx, `
		SELECT id, company_id, inn FROM refresh_jobs
		WHERE status = 'queued'
		ORDER BY queued_at
		FOR UPDATE SKIP LOCKED
		LIMIT 1
	`).Scan(&job.ID, &job.CompanyID, &job.INN)
	if errors.Is(err, pgx.ErrNoRows) {
		err = nil
		return job, false, nil
	}
	if err != nil {
		return job, false, err
	}

	if _, err = tx.Exec(ctx, `
		UPDATE refresh_jobs SET status='running', started_at=now(), attempts=attempts+1 WHERE id=$1
	`, job.ID); err != nil {
		return job, false, err
	}
	return job, true, nil
}

func (db *DB) MarkCompleted(ctx context.Context, jobID string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE refresh_jobs SET status='completed', finished_at=now() WHERE id=$1
	`, jobID)
	return err
}

func (db *DB) MarkFailed(ctx context.Context, jobID string, reason string) error {
	_, err := db.Pool.Exec(ctx, `
		UPDATE refresh_jobs SET status='failed', finished_at=now(), reason=$2 WHERE id=$1
	`, jobID, reason)
	return err
}
