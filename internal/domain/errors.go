package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound         = errors.New("recurso no encontrado")
	ErrInvalidInput     = errors.New("entrada inválida")
	ErrDuplicate        = errors.New("registro duplicado")
	ErrUnauthorized     = errors.New("no autorizado")
	ErrForbidden        = errors.New("acceso denegado")
	ErrEmptyCart        = errors.New("carrito vacío")
	ErrInactiveProduct  = errors.New("producto inactivo")
	ErrTableUnavailable = errors.New("hoja de cálculo no disponible")
	ErrLockNotAcquired  = errors.New("no se pudo obtener el bloqueo")
)
