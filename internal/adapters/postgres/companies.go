package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"finsight/internal/domain"
)

const companyColumns = `company_id, name, inn, COALESCE(okved, ''), COALESCE(okved_o, ''), COALESCE(kod_re, '')`

// FindByINN looks a company up by tax number. Legacy imports left some rows
// with a trailing ".0" on the INN, so the lookup matches those too.
func (db *DB) FindByINN(ctx context.Context, inn string) (domain.CompanyRecord, bool, error) {
	inn = strings.TrimSpace(inn)
	var rec domain.CompanyRecord
	err := db.Pool.QueryRow(ctx, `
		SELECT `+companyColumns+`
		FROM company
		WHERE inn = $1 OR inn = $1 || '.0' OR replace(inn, '.0', '') = $1
		LIMIT 1
	`, inn).Scan(&rec.CompanyID, &rec.Name, &rec.INN, &rec.OKVED, &rec.OKVEDExtra, &rec.RegionCode)
	if errors.Is(err, pgx.ErrNoRows) {
		return rec, false, nil
	}
	if err != nil {
		return rec, false, err
	}
	return rec, true, nil
}

// Search applies the flexible filter. Rows whose INN carries the legacy ".0"
// suffix are excluded from search results.
func (db *DB) Search(ctx context.Context, filter domain.SearchFilter, limit int) ([]domain.CompanyRecord, int, error) {
	if filter.Empty() {
		return nil, 0, nil
	}

	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.INN != "" {
		p := arg(filter.INN)
		conds = append(conds, fmt.Sprintf("(inn = %s OR inn LIKE '%%' || %s || '%%')", p, p))
	}
	if filter.Name != "" {
		conds = append(conds, fmt.Sprintf("name ILIKE '%%' || %s || '%%'", arg(filter.Name)))
	}
	if filter.OKVED != "" {
		p := arg(filter.OKVED)
		conds = append(conds, fmt.Sprintf("(okved LIKE '%%' || %s || '%%' OR okved_o LIKE '%%' || %s || '%%')", p, p))
	}
	if filter.Region != "" {
		conds = append(conds, fmt.Sprintf("kod_re LIKE '%%' || %s || '%%'", arg(filter.Region)))
	}
	conds = append(conds, "inn NOT LIKE '%.0'")
	where := strings.Join(conds, " AND ")

	var total int
	if err := db.Pool.QueryRow(ctx, `SELECT count(*) FROM company WHERE `+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, limit)
	rows, err := db.Pool.Query(ctx, fmt.Sprintf(`
		SELECT %s FROM company WHERE %s ORDER BY name LIMIT $%d
	`, companyColumns, where, len(args)), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	recs, err := scanCompanies(rows)
	if err != nil {
		return nil, 0, err
	}
	return recs, total, nil
}

// FindSimilar returns companies sharing the activity code, excluding the
// subject company.
func (db *DB) FindSimilar(ctx context.Context, okved, excludeINN string, limit int) ([]domain.CompanyRecord, error) {
	if okved == "" {
		return nil, nil
	}
	rows, err := db.Pool.Query(ctx, `
		SELECT `+companyColumns+`
		FROM company
		WHERE (okved LIKE '%' || $1 || '%' OR okved_o LIKE '%' || $1 || '%')
		  AND inn <> $2
		  AND inn NOT LIKE '%.0'
		ORDER BY name
		LIMIT $3
	`, okved, strings.TrimSpace(excludeINN), limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCompanies(rows)
}

func scanCompanies(rows pgx.Rows) ([]domain.CompanyRecord, error) {
	var recs []domain.CompanyRecord
	for rows.Next() {
		var rec domain.CompanyRecord
		if err := rows.Scan(&rec.CompanyID, &rec.Name, &rec.INN, &rec.OKVED, &rec.OKVEDExtra, &rec.RegionCode); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}
