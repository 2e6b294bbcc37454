package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Stock solo lo modifica el libro de stock (StockLedger), nunca el CRUD de catálogo.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta vigente
	Stock       int             // stock actual, siempre >= 0
	Category    string
	Barcode     string // opcional, único si se informa
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
