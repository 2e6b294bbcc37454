package memory_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/heleta-pos/internal/domain"
	"github.com/jhoicas/heleta-pos/internal/infrastructure/memory"
)

func TestLockTable_ExclusionMutua(t *testing.T) {
	lt := memory.NewLockTable()
	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, lt.Acquire(context.Background(), "p1"))
			n := atomic.AddInt32(&inside, 1)
			for {
				m := atomic.LoadInt32(&maxInside)
				if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
			lt.Release("p1")
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), maxInside, "nunca debe haber dos dueños de la misma fila")
}

func TestLockTable_FilasDistintasNoSeBloquean(t *testing.T) {
	lt := memory.NewLockTable()
	require.NoError(t, lt.Acquire(context.Background(), "a"))
	defer lt.Release("a")

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, lt.Acquire(ctx, "b"))
	lt.Release("b")
}

func TestLockTable_TimeoutDevuelveErrLockTimeout(t *testing.T) {
	lt := memory.NewLockTable()
	require.NoError(t, lt.Acquire(context.Background(), "p1"))
	defer lt.Release("p1")

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := lt.Acquire(ctx, "p1")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrLockTimeout)
}

func TestLockTable_ReleasePermiteNuevoDueño(t *testing.T) {
	lt := memory.NewLockTable()
	require.NoError(t, lt.Acquire(context.Background(), "p1"))

	done := make(chan error, 1)
	go func() { done <- lt.Acquire(context.Background(), "p1") }()

	lt.Release("p1")
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("el segundo Acquire debió completar tras Release")
	}
	lt.Release("p1")
}
