package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

type analyticsRepo struct {
	s *Store
}

var _ repository.AnalyticsRepository = (*analyticsRepo)(nil)

// Analytics devuelve el repositorio de consultas para dashboard y reportes.
func (s *Store) Analytics() repository.AnalyticsRepository {
	return &analyticsRepo{s: s}
}

func (r *analyticsRepo) CountProducts(_ context.Context, onlyInStock bool) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if !onlyInStock {
		return len(r.s.products), nil
	}
	n := 0
	for _, p := range r.s.products {
		if p.Stock > 0 {
			n++
		}
	}
	return n, nil
}

func (r *analyticsRepo) CountLowStock(_ context.Context, threshold int) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, p := range r.s.products {
		if p.Stock > 0 && p.Stock <= threshold {
			n++
		}
	}
	return n, nil
}

func (r *analyticsRepo) GetSalesMetrics(_ context.Context, from, to time.Time) (int, decimal.Decimal, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	count, total := 0, decimal.Zero
	for _, s := range r.s.sales {
		if s.CreatedAt.Before(from) || !s.CreatedAt.Before(to) {
			continue
		}
		count++
		total = total.Add(s.Total)
	}
	return count, total, nil
}

func (r *analyticsRepo) CountMovements(_ context.Context, from, to time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	n := 0
	for _, m := range r.s.movements {
		if !m.CreatedAt.Before(from) && m.CreatedAt.Before(to) {
			n++
		}
	}
	return n, nil
}

// GetSalesByPeriod agrupa como date_trunc en PostgreSQL (semanas desde el lunes).
func (r *analyticsRepo) GetSalesByPeriod(_ context.Context, period string, from, to *time.Time, loc *time.Location) ([]repository.SalesPeriodRow, error) {
	if loc == nil {
		loc = time.UTC
	}
	buckets := make(map[time.Time]*repository.SalesPeriodRow)

	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, s := range r.s.sales {
		local := s.CreatedAt.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		if from != nil && day.Before(*from) {
			continue
		}
		if to != nil && day.After(*to) {
			continue
		}
		start, err := truncatePeriod(day, period)
		if err != nil {
			return nil, err
		}
		row, ok := buckets[start]
		if !ok {
			row = &repository.SalesPeriodRow{PeriodStart: start, SalesTotal: decimal.Zero}
			buckets[start] = row
		}
		row.SalesCount++
		row.SalesTotal = row.SalesTotal.Add(s.Total)
	}

	out := make([]repository.SalesPeriodRow, 0, len(buckets))
	for _, row := range buckets {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PeriodStart.After(out[j].PeriodStart) })
	return out, nil
}

func truncatePeriod(day time.Time, period string) (time.Time, error) {
	switch period {
	case repository.PeriodDay:
		return day, nil
	case repository.PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7 // lunes = 0
		return day.AddDate(0, 0, -offset), nil
	case repository.PeriodMonth:
		return time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location()), nil
	}
	return time.Time{}, fmt.Errorf("período desconocido: %s", period)
}
