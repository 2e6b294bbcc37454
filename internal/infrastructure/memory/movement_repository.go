package memory

import (
	"context"

	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/domain/repository"
)

type movementRepo struct {
	s *Store
}

var _ repository.MovementRepository = (*movementRepo)(nil)

// Movements devuelve el repositorio de lectura del historial.
func (s *Store) Movements() repository.MovementRepository {
	return &movementRepo{s: s}
}

// List devuelve los movimientos más recientes primero.
func (r *movementRepo) List(_ context.Context, f repository.MovementFilter) ([]*entity.StockMovement, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.StockMovement, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Direction != "" && m.Direction != f.Direction {
			continue
		}
		c := m
		out = append(out, &c)
		if f.Limit > 0 && len(out) == f.Limit {
			break
		}
	}
	return out, nil
}
