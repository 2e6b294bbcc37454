package entity

import "time"

// Dirección del movimiento de inventario.
const (
	MovementIn  = "in"  // entrada
	MovementOut = "out" // salida
)

// Motivos usados por el sistema.
const (
	ReasonSale    = "venta"
	ReasonRestock = "reposición"
)

// StockMovement registro inmutable del historial de stock (append-only).
type StockMovement struct {
	ID        string
	ProductID string
	Direction string // in, out
	Quantity  int    // siempre positiva; la dirección indica el signo
	Reason    string
	UserID    string
	CreatedAt time.Time
}

// IsValidDirection indica si d es una dirección conocida.
func IsValidDirection(d string) bool {
	return d == MovementIn || d == MovementOut
}
