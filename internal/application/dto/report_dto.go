package dto

import "github.com/shopspring/decimal"

// SalesReportRequest parámetros de GET /api/reports/sales.
type SalesReportRequest struct {
	Period string `query:"period"` // day (default) | week | month
	From   string `query:"from"`   // YYYY-MM-DD
	To     string `query:"to"`     // YYYY-MM-DD
}

// SalesPeriodDTO fila del reporte agrupado.
type SalesPeriodDTO struct {
	Period     string          `json:"period"` // YYYY-MM-DD del inicio del período
	SalesCount int             `json:"sales_count"`
	SalesTotal decimal.Decimal `json:"sales_total"`
}
