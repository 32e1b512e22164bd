package lock_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/pdv-planilha-api/internal/domain"
	"github.com/jhoicas/pdv-planilha-api/internal/infrastructure/lock"
)

func TestMutexLocker_SerializaPorClave(t *testing.T) {
	l := lock.NewMutexLocker()
	ctx := context.Background()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		inside  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			release, err := l.Acquire(ctx, "checkout")
			if !assert.NoError(t, err) {
				return
			}
			defer release(ctx)

			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			inside--
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen, "nunca dos dentro de la sección crítica")
}

func TestMutexLocker_ClavesIndependientes(t *testing.T) {
	l := lock.NewMutexLocker()
	ctx := context.Background()

	r1, err := l.Acquire(ctx, "a")
	require.NoError(t, err)
	defer r1(ctx)

	r2, err := l.Acquire(ctx, "b")
	require.NoError(t, err)
	assert.NoError(t, r2(ctx))
}

func TestMutexLocker_TimeoutDelContexto(t *testing.T) {
	l := lock.NewMutexLocker()
	release, err := l.Acquire(context.Background(), "checkout")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Acquire(ctx, "checkout")
	assert.ErrorIs(t, err, domain.ErrLockNotAcquired)

	require.NoError(t, release(context.Background()))
	require.NoError(t, release(context.Background()), "liberar dos veces no bloquea")

	again, err := l.Acquire(context.Background(), "checkout")
	require.NoError(t, err)
	assert.NoError(t, again(context.Background()))
}
