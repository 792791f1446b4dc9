package postgres

import (
	"context"

	"finsight/internal/domain"
)

// ByCompany returns a company's stored yearly reports ascending by year.
// Metric columns are nullable; NULL scans to a nil pointer, which downstream
// reads as "no data".
func (db *DB) ByCompany(ctx context.Context, companyID int64) ([]domain.YearlyReport, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT year, revenue_cur, gross_profit_cur, oper_profit_cur, net_profit_cur,
		       balance_assets_eoy, equity_eoy
		FROM report
		WHERE company_id = $1
		ORDER BY year
	`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reports []domain.YearlyReport
	for rows.Next() {
		var r domain.YearlyReport
		if err := rows.Scan(&r.Year, &r.Revenue, &r.GrossProfit, &r.OperatingProfit,
			&r.NetProfit, &r.TotalAssets, &r.Equity); err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Upsert writes assembled reports for a company, one row per year.
func (db *DB) Upsert(ctx context.Context, companyID int64, reports []domain.YearlyReport) error {
	for _, r := range reports {
		_, err := db.Pool.Exec(ctx, `
			INSERT INTO report (company_id, year, revenue_cur, gross_profit_cur, oper_profit_cur,
			                    net_profit_cur, balance_assets_eoy, equity_eoy)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (company_id, year) DO UPDATE SET
				revenue_cur = EXCLUDED.revenue_cur,
				gross_profit_cur = EXCLUDED.gross_profit_cur,
				oper_profit_cur = EXCLUDED.oper_profit_cur,
				net_profit_cur = EXCLUDED.net_profit_cur,
				balance_assets_eoy = EXCLUDED.balance_assets_eoy,
				equity_eoy = EXCLUDED.equity_eoy
		`, companyID, r.Year, r.Revenue, r.GrossProfit, r.OperatingProfit,
			r.NetProfit, r.TotalAssets, r.Equity)
		if err != nil {
			return err
		}
	}
	return nil
}
