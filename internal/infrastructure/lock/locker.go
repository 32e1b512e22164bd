// Package lock serializa el checkout: baja de estoque es lectura-modificación-
// escritura sobre la planilha y dos ventas simultáneas pisarían el saldo.
package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/pdv-planilha-api/internal/application/ports"
	"github.com/jhoicas/pdv-planilha-api/internal/domain"
)

const (
	keyPrefix    = "lock:"
	retryBackoff = 100 * time.Millisecond
	maxRetries   = 50 // ~5s de espera antes de responder BUSY
	defaultTTL   = 15 * time.Second
)

var (
	_ ports.Locker = (*RedisLocker)(nil)
	_ ports.Locker = (*MutexLocker)(nil)
)

// RedisLocker lock distribuido (varias instancias de la API sobre la misma planilha).
type RedisLocker struct {
	client *redislock.Client
	ttl    time.Duration
}

// NewRedisLocker ttl es el tiempo máximo que se retiene el lock si el proceso muere.
func NewRedisLocker(rdb *redis.Client, ttl time.Duration) *RedisLocker {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisLocker{client: redislock.New(rdb), ttl: ttl}
}

// Acquire reintenta hasta obtener el lock, agotar los reintentos o cancelar ctx.
func (l *RedisLocker) Acquire(ctx context.Context, key string) (ports.Release, error) {
	lk, err := l.client.Obtain(ctx, keyPrefix+key, l.ttl, &redislock.Options{
		RetryStrategy: redislock.LimitRetry(redislock.LinearBackoff(retryBackoff), maxRetries),
	})
	if errors.Is(err, redislock.ErrNotObtained) || errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return nil, fmt.Errorf("lock %s: %w", key, domain.ErrLockNotAcquired)
	}
	if err != nil {
		return nil, fmt.Errorf("lock %s: %w", key, err)
	}
	return func(ctx context.Context) error {
		if err := lk.Release(ctx); err != nil && !errors.Is(err, redislock.ErrLockNotHeld) {
			return fmt.Errorf("liberar lock %s: %w", key, err)
		}
		return nil
	}, nil
}

// MutexLocker lock en proceso, un mutex por clave. Sirve para una sola instancia.
type MutexLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

func NewMutexLocker() *MutexLocker {
	return &MutexLocker{locks: make(map[string]chan struct{})}
}

// Acquire bloquea hasta obtener key o hasta que se cancele ctx.
func (l *MutexLocker) Acquire(ctx context.Context, key string) (ports.Release, error) {
	l.mu.Lock()
	ch, ok := l.locks[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[key] = ch
	}
	l.mu.Unlock()

	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("lock %s: %w", key, domain.ErrLockNotAcquired)
	}

	var once sync.Once
	return func(context.Context) error {
		once.Do(func() { <-ch })
		return nil
	}, nil
}
