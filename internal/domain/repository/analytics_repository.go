package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Períodos de agrupación del reporte de ventas.
const (
	PeriodDay   = "day"
	PeriodWeek  = "week"
	PeriodMonth = "month"
)

// SalesPeriodRow fila del reporte de ventas agrupado por período.
type SalesPeriodRow struct {
	PeriodStart time.Time // inicio del período en la zona horaria del reporte
	SalesCount  int
	SalesTotal  decimal.Decimal
}

// AnalyticsRepository consultas de solo lectura para dashboard y reportes.
type AnalyticsRepository interface {
	// CountProducts cuenta productos; si onlyInStock, solo los que tienen stock > 0.
	CountProducts(ctx context.Context, onlyInStock bool) (int, error)

	// CountLowStock cuenta productos con 0 < stock <= threshold.
	CountLowStock(ctx context.Context, threshold int) (int, error)

	// GetSalesMetrics devuelve cantidad y monto total de ventas en [from, to).
	GetSalesMetrics(ctx context.Context, from, to time.Time) (count int, total decimal.Decimal, err error)

	// CountMovements cuenta movimientos de inventario en [from, to).
	CountMovements(ctx context.Context, from, to time.Time) (int, error)

	// GetSalesByPeriod agrupa ventas por día/semana/mes en la zona loc.
	// from y to son fechas locales inclusivas; nil = sin límite. Orden: más reciente primero.
	GetSalesByPeriod(ctx context.Context, period string, from, to *time.Time, loc *time.Location) ([]SalesPeriodRow, error)
}
