package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/heleta-pos/internal/application/dto"
	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

// SalesReportUseCase reporte de ventas agrupado por día, semana o mes.
type SalesReportUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	loc           *time.Location
	now           func() time.Time
}

// NewSalesReportUseCase construye el caso de uso. loc es la zona horaria de la tienda.
func NewSalesReportUseCase(analyticsRepo repository.AnalyticsRepository, loc *time.Location) *SalesReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesReportUseCase{analyticsRepo: analyticsRepo, loc: loc, now: time.Now}
}

// GetReport agrupa ventas por período. Sin rango y con period=day devuelve solo hoy.
func (uc *SalesReportUseCase) GetReport(ctx context.Context, in dto.SalesReportRequest) ([]dto.SalesPeriodDTO, error) {
	period := in.Period
	if period == "" {
		period = repository.PeriodDay
	}
	switch period {
	case repository.PeriodDay, repository.PeriodWeek, repository.PeriodMonth:
	default:
		return nil, domain.NewInvalidRequest("period debe ser day, week o month")
	}

	from, err := uc.parseDate(in.From, "from")
	if err != nil {
		return nil, err
	}
	to, err := uc.parseDate(in.To, "to")
	if err != nil {
		return nil, err
	}
	if from != nil && to != nil && from.After(*to) {
		return nil, domain.NewInvalidRequest("from no puede ser posterior a to")
	}
	if from == nil && to == nil && period == repository.PeriodDay {
		now := uc.now().In(uc.loc)
		today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
		from, to = &today, &today
	}

	rows, err := uc.analyticsRepo.GetSalesByPeriod(ctx, period, from, to, uc.loc)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesPeriodDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.SalesPeriodDTO{
			Period:     r.PeriodStart.Format(time.DateOnly),
			SalesCount: r.SalesCount,
			SalesTotal: r.SalesTotal.Round(2),
		})
	}
	return out, nil
}

func (uc *SalesReportUseCase) parseDate(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(time.DateOnly, raw, uc.loc)
	if err != nil {
		return nil, domain.NewInvalidRequest("%s debe tener formato YYYY-MM-DD", field)
	}
	return &t, nil
}
