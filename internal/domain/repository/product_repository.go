package repository

import (
	"context"

	"github.com/jhoicas/heleta-pos/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia del catálogo (DIP).
// No expone escritura de stock: eso pertenece a StockLedger.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetByBarcode(ctx context.Context, barcode string) (*entity.Product, error)
	// Update modifica datos de catálogo (nombre, precio, categoría...). Bloquea la fila,
	// por lo que espera a las ventas en curso sobre el mismo producto.
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context, limit, offset int) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
