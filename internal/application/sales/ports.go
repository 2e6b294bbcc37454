package sales

import (
	"context"

	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

// TxRunner abre una transacción, entrega el libro de stock y el repositorio de
// ventas atados a ella, y hace Commit solo si fn retorna nil. Ante error o
// panic hace Rollback y libera los bloqueos antes de propagar.
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		ledger repository.StockLedger,
		saleRepo repository.SaleRepository,
	) error) error
}

// InTx ejecuta fn dentro de una transacción y devuelve su resultado.
// El valor solo se devuelve si el Commit fue exitoso.
func InTx[T any](ctx context.Context, runner TxRunner, fn func(
	ledger repository.StockLedger,
	saleRepo repository.SaleRepository,
) (T, error)) (T, error) {
	var out T
	err := runner.RunSale(ctx, func(ledger repository.StockLedger, saleRepo repository.SaleRepository) error {
		v, err := fn(ledger, saleRepo)
		if err != nil {
			return err
		}
		out = v
		return nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return out, nil
}
