package memory

import (
	"context"
	"fmt"

	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

// saleRepo implementa repository.SaleRepository. Con t != nil las inserciones
// quedan pendientes hasta el commit; sin tx cada inserción se confirma sola.
type saleRepo struct {
	s *Store
	t *tx
}

var _ repository.SaleRepository = (*saleRepo)(nil)

// Sales devuelve el repositorio de ventas fuera de transacción (lecturas).
func (s *Store) Sales() repository.SaleRepository {
	return &saleRepo{s: s}
}

func (r *saleRepo) Create(_ context.Context, sale *entity.Sale) error {
	if sale == nil || sale.ID == "" {
		return domain.ErrInvalidInput
	}
	c := *sale
	c.Lines = nil
	if r.t != nil {
		r.t.sales = append(r.t.sales, &c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.salesByID[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.sales = append(r.s.sales, &c)
	r.s.salesByID[c.ID] = &c
	return nil
}

func (r *saleRepo) CreateLine(_ context.Context, line *entity.SaleLine) error {
	if line == nil {
		return domain.ErrInvalidInput
	}
	c := *line
	if r.t != nil {
		r.t.lines = append(r.t.lines, &c)
		return nil
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	sale, ok := r.s.salesByID[c.SaleID]
	if !ok {
		return fmt.Errorf("venta %s inexistente", c.SaleID)
	}
	sale.Lines = append(sale.Lines, &c)
	return nil
}

// GetByID lee solo ventas confirmadas.
func (r *saleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sale, ok := r.s.salesByID[id]
	if !ok {
		return nil, nil
	}
	return cloneSale(sale), nil
}

func (r *saleRepo) List(_ context.Context, limit, offset int) ([]*entity.Sale, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Sale, 0, len(r.s.sales))
	for i := len(r.s.sales) - 1; i >= 0; i-- {
		out = append(out, cloneSale(r.s.sales[i]))
	}
	return paginate(out, limit, offset), nil
}

func cloneSale(s *entity.Sale) *entity.Sale {
	c := *s
	c.Lines = make([]*entity.SaleLine, 0, len(s.Lines))
	for _, l := range s.Lines {
		lc := *l
		c.Lines = append(c.Lines, &lc)
	}
	return &c
}
