package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/jhoicas/heleta-pos/internal/domain"
)

const lockShards = 32

// LockTable bloqueos exclusivos por fila de producto. Cada fila es un semáforo
// de capacidad 1; las filas se reparten en shards para no contender en un solo mutex.
type LockTable struct {
	shards [lockShards]lockShard
}

type lockShard struct {
	mu   sync.Mutex
	rows map[string]chan struct{}
}

// NewLockTable crea una tabla vacía.
func NewLockTable() *LockTable {
	lt := &LockTable{}
	for i := range lt.shards {
		lt.shards[i].rows = make(map[string]chan struct{})
	}
	return lt
}

func (lt *LockTable) row(id string) chan struct{} {
	sh := &lt.shards[xxhash.Sum64String(id)%lockShards]
	sh.mu.Lock()
	defer sh.mu.Unlock()
	ch, ok := sh.rows[id]
	if !ok {
		ch = make(chan struct{}, 1)
		sh.rows[id] = ch
	}
	return ch
}

// Acquire espera el bloqueo de la fila id hasta que ctx expire.
// Si el plazo vence devuelve domain.ErrLockTimeout; si ctx se cancela, ctx.Err().
func (lt *LockTable) Acquire(ctx context.Context, id string) error {
	ch := lt.row(id)
	select {
	case ch <- struct{}{}:
		return nil
	default:
	}
	select {
	case ch <- struct{}{}:
		return nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("producto %s: %w", id, domain.ErrLockTimeout)
		}
		return ctx.Err()
	}
}

// Rows cantidad de filas registradas en la tabla.
func (lt *LockTable) Rows() int {
	n := 0
	for i := range lt.shards {
		sh := &lt.shards[i]
		sh.mu.Lock()
		n += len(sh.rows)
		sh.mu.Unlock()
	}
	return n
}

// Release libera la fila id. Solo debe llamarlo quien la adquirió.
func (lt *LockTable) Release(id string) {
	select {
	case <-lt.row(id):
	default:
	}
}
