package dto

import "github.com/shopspring/decimal"

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	TotalProducts  int           `json:"total_products"`  // admin: todos; otros roles: con stock > 0
	LowStock       int           `json:"low_stock"`       // 0 < stock <= umbral
	SalesToday     SalesTodayDTO `json:"sales_today"`
	MovementsToday int           `json:"movements_today"`
}

// SalesTodayDTO ventas del día en curso (zona horaria de la tienda).
type SalesTodayDTO struct {
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}
