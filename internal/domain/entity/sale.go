package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentOther    = "other"
)

// IsValidPaymentMethod indica si m pertenece al enumerado de medios de pago.
func IsValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentOther:
		return true
	}
	return false
}

// Sale cabecera de una venta. Total lo calcula el servidor; nunca se modifica.
type Sale struct {
	ID            string
	Total         decimal.Decimal
	PaymentMethod string
	UserID        string
	CreatedAt     time.Time
	Lines         []*SaleLine
}
