// Package analytics contiene los casos de uso de lectura: dashboard del día y
// reporte de ventas por período.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/heleta-pos/internal/application/dto"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

// DashboardOptions parámetros del dashboard.
type DashboardOptions struct {
	Location          *time.Location // zona horaria de la tienda para "hoy"
	LowStockThreshold int
	CacheTTL          time.Duration
}

// DashboardUseCase arma el resumen del día.
//
// Fuente de datos: AnalyticsRepository (consultas read-only, solo estado confirmado).
// El resultado se cachea por rol; los misses concurrentes se resuelven con una sola consulta.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	cache         DashboardCache
	opts          DashboardOptions
	group         singleflight.Group
	now           func() time.Time
}

// NewDashboardUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository, cache DashboardCache, opts DashboardOptions) *DashboardUseCase {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	if opts.LowStockThreshold <= 0 {
		opts.LowStockThreshold = 10
	}
	return &DashboardUseCase{
		analyticsRepo: analyticsRepo,
		cache:         cache,
		opts:          opts,
		now:           time.Now,
	}
}

// GetSummary devuelve el resumen para el rol indicado.
// Admin ve el total de productos; los demás roles solo los que tienen stock.
func (uc *DashboardUseCase) GetSummary(ctx context.Context, role string) (*dto.DashboardSummaryDTO, error) {
	key := "dashboard:summary:" + role

	if uc.cache != nil {
		if cached, ok, err := uc.cache.Get(ctx, key); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("dashboard: lectura de caché falló")
		} else if ok {
			return cached, nil
		}
	}

	// La consulta compartida no hereda la cancelación de quien la inició;
	// cada llamador deja de esperar con su propio ctx.
	shared := context.WithoutCancel(ctx)
	ch := uc.group.DoChan(key, func() (interface{}, error) {
		summary, err := uc.compute(shared, role)
		if err != nil {
			return nil, err
		}
		if uc.cache != nil && uc.opts.CacheTTL > 0 {
			if err := uc.cache.Set(shared, key, summary, uc.opts.CacheTTL); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("dashboard: escritura de caché falló")
			}
		}
		return summary, nil
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*dto.DashboardSummaryDTO), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// compute lanza las cuatro consultas en paralelo.
func (uc *DashboardUseCase) compute(ctx context.Context, role string) (*dto.DashboardSummaryDTO, error) {
	now := uc.now().In(uc.opts.Location)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.opts.Location)
	todayEnd := todayStart.AddDate(0, 0, 1)

	var (
		totalProducts, lowStock, movements, salesCount int
		salesTotal                                     decimal.Decimal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountProducts(gctx, role != entity.RoleAdmin)
		if err != nil {
			return fmt.Errorf("dashboard: total de productos: %w", err)
		}
		totalProducts = n
		return nil
	})
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountLowStock(gctx, uc.opts.LowStockThreshold)
		if err != nil {
			return fmt.Errorf("dashboard: stock bajo: %w", err)
		}
		lowStock = n
		return nil
	})
	g.Go(func() error {
		n, total, err := uc.analyticsRepo.GetSalesMetrics(gctx, todayStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: ventas de hoy: %w", err)
		}
		salesCount, salesTotal = n, total
		return nil
	})
	g.Go(func() error {
		n, err := uc.analyticsRepo.CountMovements(gctx, todayStart, todayEnd)
		if err != nil {
			return fmt.Errorf("dashboard: movimientos de hoy: %w", err)
		}
		movements = n
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:  totalProducts,
		LowStock:       lowStock,
		SalesToday:     dto.SalesTodayDTO{Count: salesCount, Total: salesTotal.Round(2)},
		MovementsToday: movements,
	}, nil
}
