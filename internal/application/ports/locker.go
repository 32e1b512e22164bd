package ports

import "context"

// Release libera un bloqueo obtenido con Locker.Acquire.
type Release func(ctx context.Context) error

// Locker serializa secciones críticas de lectura-modificación-escritura sobre
// la planilha (baja de estoque en el checkout).
type Locker interface {
	// Acquire bloquea key o devuelve un error que envuelve domain.ErrLockNotAcquired.
	Acquire(ctx context.Context, key string) (Release, error)
}
