package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

// tx transacción en memoria: acumula escrituras y las aplica de una vez en commit.
// Los bloqueos de fila se mantienen hasta commit o rollback.
type tx struct {
	s         *Store
	held      map[string]struct{}
	stock     map[string]int // delta de stock por producto
	movements []entity.StockMovement
	sales     []*entity.Sale
	lines     []*entity.SaleLine
}

func (s *Store) begin() *tx {
	return &tx{
		s:     s,
		held:  make(map[string]struct{}),
		stock: make(map[string]int),
	}
}

// Run ejecuta fn en una transacción con el libro de stock (movimientos manuales).
func (s *Store) Run(ctx context.Context, fn func(ledger repository.StockLedger) error) error {
	return s.runTx(ctx, func(t *tx) error {
		return fn(&ledgerRepo{t: t})
	})
}

// RunSale ejecuta fn en una transacción con el libro de stock y el repositorio de ventas.
func (s *Store) RunSale(ctx context.Context, fn func(ledger repository.StockLedger, saleRepo repository.SaleRepository) error) error {
	return s.runTx(ctx, func(t *tx) error {
		return fn(&ledgerRepo{t: t}, &saleRepo{s: s, t: t})
	})
}

func (s *Store) runTx(ctx context.Context, fn func(t *tx) error) (err error) {
	t := s.begin()
	defer t.release()
	defer func() {
		if r := recover(); r != nil {
			t.discard()
			panic(r)
		}
	}()

	if err := fn(t); err != nil {
		t.discard()
		return err
	}
	if err := ctx.Err(); err != nil {
		t.discard()
		return fmt.Errorf("commit transaction: %w", err)
	}
	if err := t.commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// commit aplica todo o nada. Verifica stock >= 0 antes de escribir.
func (t *tx) commit() error {
	s := t.s
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, delta := range t.stock {
		p, ok := s.products[id]
		if !ok {
			return &domain.ProductNotFoundError{ProductID: id}
		}
		if p.Stock+delta < 0 {
			return fmt.Errorf("producto %s: stock negativo (%d)", id, p.Stock+delta)
		}
	}
	byID := make(map[string]*entity.Sale, len(t.sales))
	for _, sale := range t.sales {
		byID[sale.ID] = sale
	}
	for _, l := range t.lines {
		if _, ok := byID[l.SaleID]; !ok {
			return fmt.Errorf("línea %s: venta %s inexistente", l.ID, l.SaleID)
		}
	}

	for id, delta := range t.stock {
		p := s.products[id]
		p.Stock += delta
		s.products[id] = p
	}
	s.movements = append(s.movements, t.movements...)
	for _, l := range t.lines {
		sale := byID[l.SaleID]
		sale.Lines = append(sale.Lines, l)
	}
	for _, sale := range t.sales {
		s.sales = append(s.sales, sale)
		s.salesByID[sale.ID] = sale
	}
	t.discard()
	return nil
}

func (t *tx) discard() {
	t.stock = make(map[string]int)
	t.movements = nil
	t.sales = nil
	t.lines = nil
}

// release libera los bloqueos tomados, en orden.
func (t *tx) release() {
	ids := make([]string, 0, len(t.held))
	for id := range t.held {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		t.s.locks.Release(id)
	}
	t.held = make(map[string]struct{})
}

func (t *tx) holds(id string) bool {
	_, ok := t.held[id]
	return ok
}

// ledgerRepo implementa repository.StockLedger sobre una tx en memoria.
type ledgerRepo struct {
	t *tx
}

var _ repository.StockLedger = (*ledgerRepo)(nil)

// LockAndRead bloquea en orden ascendente; re-bloquear una fila ya tomada no hace nada.
// Solo se crean filas de bloqueo para productos existentes.
func (r *ledgerRepo) LockAndRead(ctx context.Context, productIDs []string) (map[string]repository.LockedProduct, error) {
	s := r.t.s
	if err := s.firstMissing(productIDs); err != nil {
		return nil, err
	}

	sorted := append([]string(nil), productIDs...)
	sort.Strings(sorted)
	for _, id := range sorted {
		if r.t.holds(id) {
			continue
		}
		if err := s.acquire(ctx, id); err != nil {
			return nil, err
		}
		r.t.held[id] = struct{}{}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]repository.LockedProduct, len(productIDs))
	for _, id := range productIDs {
		// pudo borrarse entre la verificación y el bloqueo
		p, ok := s.products[id]
		if !ok {
			return nil, &domain.ProductNotFoundError{ProductID: id}
		}
		out[id] = repository.LockedProduct{
			ID:    p.ID,
			Name:  p.Name,
			Price: p.Price,
			Stock: p.Stock + r.t.stock[id],
		}
	}
	return out, nil
}

func (r *ledgerRepo) ApplyDecrement(_ context.Context, productID string, quantity int) error {
	if !r.t.holds(productID) {
		return fmt.Errorf("descontar stock de %s sin bloqueo de fila", productID)
	}
	r.t.stock[productID] -= quantity
	return nil
}

func (r *ledgerRepo) ApplyIncrement(_ context.Context, productID string, quantity int) error {
	if !r.t.holds(productID) {
		return fmt.Errorf("sumar stock a %s sin bloqueo de fila", productID)
	}
	r.t.stock[productID] += quantity
	return nil
}

func (r *ledgerRepo) RecordMovement(_ context.Context, m *entity.StockMovement) error {
	if m == nil {
		return domain.ErrInvalidInput
	}
	r.t.movements = append(r.t.movements, *m)
	return nil
}
