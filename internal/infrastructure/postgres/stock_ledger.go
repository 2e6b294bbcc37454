package postgres

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

var _ repository.StockLedger = (*StockLedger)(nil)

// StockLedger libro de stock sobre PostgreSQL. Debe construirse con una pgx.Tx:
// los bloqueos FOR UPDATE viven lo que dura la transacción.
type StockLedger struct {
	q Querier
}

// NewStockLedger construye el adaptador sobre la tx.
func NewStockLedger(q Querier) *StockLedger {
	return &StockLedger{q: q}
}

// LockAndRead bloquea las filas con SELECT ... ORDER BY id FOR UPDATE: PostgreSQL
// toma los bloqueos en el orden en que recorre las filas ordenadas.
// Re-bloquear una fila ya tomada por la misma tx no espera.
func (r *StockLedger) LockAndRead(ctx context.Context, productIDs []string) (map[string]repository.LockedProduct, error) {
	ids := append([]string(nil), productIDs...)
	sort.Strings(ids)

	const query = `
		SELECT id, name, price, stock
		FROM products
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, ids)
	if err != nil {
		return nil, wrapLockErr(err)
	}
	defer rows.Close()

	out := make(map[string]repository.LockedProduct, len(ids))
	for rows.Next() {
		var p repository.LockedProduct
		if err := rows.Scan(&p.ID, &p.Name, &p.Price, &p.Stock); err != nil {
			return nil, fmt.Errorf("scan locked product: %w", err)
		}
		out[p.ID] = p
	}
	if err := rows.Err(); err != nil {
		return nil, wrapLockErr(err)
	}

	for _, id := range productIDs {
		if _, ok := out[id]; !ok {
			return nil, &domain.ProductNotFoundError{ProductID: id}
		}
	}
	return out, nil
}

// ApplyDecrement no revalida; el CHECK (stock >= 0) de la tabla es la última barrera.
func (r *StockLedger) ApplyDecrement(ctx context.Context, productID string, quantity int) error {
	return r.applyDelta(ctx, productID, -quantity)
}

func (r *StockLedger) ApplyIncrement(ctx context.Context, productID string, quantity int) error {
	return r.applyDelta(ctx, productID, quantity)
}

func (r *StockLedger) applyDelta(ctx context.Context, productID string, delta int) error {
	const query = `UPDATE products SET stock = stock + $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, productID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update stock %s: stock negativo rechazado por CHECK: %w", productID, err)
		}
		return fmt.Errorf("update stock %s: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return &domain.ProductNotFoundError{ProductID: productID}
	}
	return nil
}

// RecordMovement inserta en stock_movements.
func (r *StockLedger) RecordMovement(ctx context.Context, m *entity.StockMovement) error {
	const query = `
		INSERT INTO stock_movements (id, product_id, direction, quantity, reason, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, m.ID, m.ProductID, m.Direction, m.Quantity, m.Reason, m.UserID, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func wrapLockErr(err error) error {
	if isLockTimeout(err) {
		return fmt.Errorf("lock products: %w: %w", domain.ErrLockTimeout, err)
	}
	return fmt.Errorf("lock products: %w", err)
}
