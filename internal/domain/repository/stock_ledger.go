package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
)

// LockedProduct vista de un producto leída bajo bloqueo exclusivo.
type LockedProduct struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Stock int
}

// StockLedger es el único escritor de Product.Stock. Todas sus operaciones
// ocurren dentro de una transacción abierta por el TxRunner.
type StockLedger interface {
	// LockAndRead bloquea en exclusiva cada fila de producto hasta el fin de la
	// transacción, en orden ascendente de ID. Devuelve *domain.ProductNotFoundError
	// con el primer ID inexistente (en el orden recibido).
	LockAndRead(ctx context.Context, productIDs []string) (map[string]LockedProduct, error)
	// ApplyDecrement resta quantity al stock. El llamador ya tiene el bloqueo y
	// validó stock >= quantity; aquí no se revalida.
	ApplyDecrement(ctx context.Context, productID string, quantity int) error
	// ApplyIncrement suma quantity al stock (entradas de mercadería).
	ApplyIncrement(ctx context.Context, productID string, quantity int) error
	// RecordMovement agrega un movimiento al historial.
	RecordMovement(ctx context.Context, movement *entity.StockMovement) error
}
