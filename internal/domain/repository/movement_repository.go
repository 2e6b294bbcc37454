package repository

import (
	"context"

	"github.com/jhoicas/heleta-pos/internal/domain/entity"
)

// MovementFilter filtros opcionales para listar movimientos.
type MovementFilter struct {
	ProductID string
	Direction string
	Limit     int
}

// MovementRepository lectura del historial de movimientos (committed).
type MovementRepository interface {
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
}
