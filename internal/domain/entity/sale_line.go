package entity

import "github.com/shopspring/decimal"

// SaleLine línea de una venta. UnitPrice es una copia del precio al momento
// de la venta, desacoplada de cambios posteriores del catálogo.
type SaleLine struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal // Quantity * UnitPrice
}
