package inventory

import (
	"context"

	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando el libro de stock atado a ella.
// Garantiza atomicidad para los movimientos manuales.
type TxRunner interface {
	Run(ctx context.Context, fn func(ledger repository.StockLedger) error) error
}
