package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para dashboard y reporte de ventas.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

func (r *AnalyticsRepo) CountProducts(ctx context.Context, onlyInStock bool) (int, error) {
	query := `SELECT COUNT(*) FROM products`
	if onlyInStock {
		query += ` WHERE stock > 0`
	}
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.CountProducts: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) CountLowStock(ctx context.Context, threshold int) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE stock > 0 AND stock <= $1`, threshold).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountLowStock: %w", err)
	}
	return n, nil
}

func (r *AnalyticsRepo) GetSalesMetrics(ctx context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	var (
		n     int
		total decimal.Decimal
	)
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(total), 0) FROM sales WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&n, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("analytics.GetSalesMetrics: %w", err)
	}
	return n, total, nil
}

func (r *AnalyticsRepo) CountMovements(ctx context.Context, from, to time.Time) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM stock_movements WHERE created_at >= $1 AND created_at < $2`,
		from, to,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("analytics.CountMovements: %w", err)
	}
	return n, nil
}

// GetSalesByPeriod agrupa con date_trunc en la zona horaria de la tienda.
// from/to son fechas locales inclusivas.
func (r *AnalyticsRepo) GetSalesByPeriod(ctx context.Context, period string, from, to *time.Time, loc *time.Location) ([]repository.SalesPeriodRow, error) {
	switch period {
	case repository.PeriodDay, repository.PeriodWeek, repository.PeriodMonth:
	default:
		return nil, fmt.Errorf("analytics.GetSalesByPeriod: período desconocido %q", period)
	}
	if loc == nil {
		loc = time.UTC
	}

	var fromDate, toDate *string
	if from != nil {
		s := from.Format(time.DateOnly)
		fromDate = &s
	}
	if to != nil {
		s := to.Format(time.DateOnly)
		toDate = &s
	}

	const query = `
	SELECT
	    date_trunc($1, created_at AT TIME ZONE $2)::date::text AS period_start,
	    COUNT(*)                                             AS sales_count,
	    COALESCE(SUM(total), 0)                              AS sales_total
	FROM sales
	WHERE ($3::date IS NULL OR (created_at AT TIME ZONE $2)::date >= $3::date)
	  AND ($4::date IS NULL OR (created_at AT TIME ZONE $2)::date <= $4::date)
	GROUP BY 1
	ORDER BY 1 DESC`

	rows, err := r.q.Query(ctx, query, period, loc.String(), fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("analytics.GetSalesByPeriod: %w", err)
	}
	defer rows.Close()

	results := make([]repository.SalesPeriodRow, 0)
	for rows.Next() {
		var (
			start string
			row   repository.SalesPeriodRow
		)
		if err := rows.Scan(&start, &row.SalesCount, &row.SalesTotal); err != nil {
			return nil, fmt.Errorf("analytics.GetSalesByPeriod scan: %w", err)
		}
		row.PeriodStart, err = time.ParseInLocation(time.DateOnly, start, loc)
		if err != nil {
			return nil, fmt.Errorf("analytics.GetSalesByPeriod fecha: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
