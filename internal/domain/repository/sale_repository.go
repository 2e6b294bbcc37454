package repository

import (
	"context"

	"github.com/jhoicas/heleta-pos/internal/domain/entity"
)

// SaleRepository persiste ventas y sus líneas. Solo inserciones; las ventas no se modifican.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	// GetByID devuelve la venta con sus líneas, o nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// List devuelve las ventas más recientes primero, con sus líneas.
	List(ctx context.Context, limit, offset int) ([]*entity.Sale, error)
}
