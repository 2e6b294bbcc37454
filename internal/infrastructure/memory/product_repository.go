package memory

import (
	"context"

	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

// productRepo catálogo en memoria. Update y Delete toman el bloqueo de fila
// como lo haría un UPDATE en PostgreSQL.
type productRepo struct {
	s *Store
}

var _ repository.ProductRepository = (*productRepo)(nil)

// Products devuelve el repositorio de catálogo.
func (s *Store) Products() repository.ProductRepository {
	return &productRepo{s: s}
}

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	if p == nil || p.ID == "" {
		return domain.ErrInvalidInput
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; ok {
		return domain.ErrDuplicate
	}
	if p.Barcode != "" && r.s.barcodeTaken(p.Barcode, "") {
		return domain.ErrDuplicate
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *productRepo) GetByBarcode(_ context.Context, barcode string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, p := range r.s.products {
		if p.Barcode != "" && p.Barcode == barcode {
			c := p
			return &c, nil
		}
	}
	return nil, nil
}

// Update no toca el stock: conserva el valor confirmado.
func (r *productRepo) Update(ctx context.Context, p *entity.Product) error {
	if p == nil {
		return domain.ErrInvalidInput
	}
	if !r.s.exists(p.ID) {
		return domain.ErrNotFound
	}
	if err := r.s.acquire(ctx, p.ID); err != nil {
		return err
	}
	defer r.s.locks.Release(p.ID)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.products[p.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Barcode != "" && r.s.barcodeTaken(p.Barcode, p.ID) {
		return domain.ErrDuplicate
	}
	updated := *p
	updated.Stock = current.Stock
	updated.CreatedAt = current.CreatedAt
	r.s.products[p.ID] = updated
	return nil
}

func (r *productRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	r.s.mu.RLock()
	list := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		c := p
		list = append(list, &c)
	}
	r.s.mu.RUnlock()
	sortProducts(list)
	return paginate(list, limit, offset), nil
}

func (r *productRepo) Delete(ctx context.Context, id string) error {
	if !r.s.exists(id) {
		return domain.ErrNotFound
	}
	if err := r.s.acquire(ctx, id); err != nil {
		return err
	}
	defer r.s.locks.Release(id)

	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[id]; !ok {
		return domain.ErrNotFound
	}
	if r.s.referenced(id) {
		return domain.ErrInUse
	}
	delete(r.s.products, id)
	return nil
}

func (s *Store) exists(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.products[id]
	return ok
}

// barcodeTaken debe llamarse con s.mu tomado.
func (s *Store) barcodeTaken(barcode, exceptID string) bool {
	for id, p := range s.products {
		if id != exceptID && p.Barcode == barcode {
			return true
		}
	}
	return false
}

// referenced indica si el producto tiene movimientos o líneas de venta. Requiere s.mu.
func (s *Store) referenced(id string) bool {
	for _, m := range s.movements {
		if m.ProductID == id {
			return true
		}
	}
	for _, sale := range s.sales {
		for _, l := range sale.Lines {
			if l.ProductID == id {
				return true
			}
		}
	}
	return false
}
