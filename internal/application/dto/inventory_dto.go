package dto

import "time"

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	ProductID string `json:"product_id"`
	Direction string `json:"direction"` // in (default) | out
	Quantity  int    `json:"quantity"`
	Reason    string `json:"reason,omitempty"`
}

// MovementResponse movimiento del historial de stock.
type MovementResponse struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Direction string    `json:"direction"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// RegisterMovementResponse resultado de un movimiento manual con el stock resultante.
type RegisterMovementResponse struct {
	Movement MovementResponse `json:"movement"`
	Stock    int              `json:"stock"`
}
