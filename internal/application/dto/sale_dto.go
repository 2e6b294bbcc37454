package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleLineRequest línea de la canasta en POST /api/sales.
type SaleLineRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  int              `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"` // opcional; si falta se usa el precio vigente
}

// CreateSaleRequest body de POST /api/sales.
type CreateSaleRequest struct {
	Lines         []SaleLineRequest `json:"lines"`
	PaymentMethod string            `json:"payment_method,omitempty"` // cash (default), card, transfer, other
}

// SaleLineResponse línea persistida con el precio congelado.
type SaleLineResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta registrada.
type SaleResponse struct {
	SaleID        string             `json:"sale_id"`
	Total         decimal.Decimal    `json:"total"`
	PaymentMethod string             `json:"payment_method"`
	UserID        string             `json:"user_id"`
	Lines         []SaleLineResponse `json:"lines"`
	CreatedAt     time.Time          `json:"created_at"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
