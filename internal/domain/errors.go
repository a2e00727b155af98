package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrUserAlreadyExists = errors.New("el usuario ya está registrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicateKey      = errors.New("clave de campo duplicada en la categoría")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrReservedCategory  = errors.New("categoría reservada del sistema")
	ErrPendingNotFound   = errors.New("escritura pendiente no encontrada")
	ErrInvalidTransition = errors.New("transición de estado no permitida")
)
