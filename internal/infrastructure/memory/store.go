package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
)

// Store almacenamiento en memoria con la misma semántica transaccional que el
// backend PostgreSQL: bloqueo por fila de producto, escrituras visibles solo al
// Commit y rechazo de stock negativo. Se usa cuando STORE_BACKEND=memory y en tests.
type Store struct {
	mu        sync.RWMutex
	products  map[string]entity.Product
	movements []entity.StockMovement
	sales     []*entity.Sale // orden de inserción
	salesByID map[string]*entity.Sale

	locks       *LockTable
	lockTimeout time.Duration
}

// New crea un store vacío. lockTimeout acota la espera por un bloqueo de fila (0 = sin límite propio).
func New(lockTimeout time.Duration) *Store {
	return &Store{
		products:    make(map[string]entity.Product),
		salesByID:   make(map[string]*entity.Sale),
		locks:       NewLockTable(),
		lockTimeout: lockTimeout,
	}
}

// Seed carga productos tal cual (incluido el stock). Pensado para demo y tests.
func (s *Store) Seed(products ...entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for _, p := range products {
		if p.CreatedAt.IsZero() {
			p.CreatedAt = now
		}
		if p.UpdatedAt.IsZero() {
			p.UpdatedAt = p.CreatedAt
		}
		s.products[p.ID] = p
	}
}

// lockContext aplica el plazo de espera de bloqueo configurado.
func (s *Store) lockContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.lockTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.lockTimeout)
}

// acquire toma el bloqueo de una fila respetando lockTimeout.
func (s *Store) acquire(ctx context.Context, id string) error {
	lctx, cancel := s.lockContext(ctx)
	defer cancel()
	return s.locks.Acquire(lctx, id)
}

// firstMissing devuelve ProductNotFoundError para el primer ID ausente, en el orden recibido.
func (s *Store) firstMissing(ids []string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, id := range ids {
		if _, ok := s.products[id]; !ok {
			return &domain.ProductNotFoundError{ProductID: id}
		}
	}
	return nil
}

func sortProducts(list []*entity.Product) {
	sort.Slice(list, func(i, j int) bool {
		a, b := strings.ToLower(list[i].Name), strings.ToLower(list[j].Name)
		if a == b {
			return list[i].ID < list[j].ID
		}
		return a < b
	})
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
