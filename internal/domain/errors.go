package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrDuplicateSKU        = errors.New("el SKU ya existe")
	ErrInvalidMovementType = errors.New("tipo de movimiento inválido")
	ErrInsufficientStock   = errors.New("stock insuficiente")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrConflict            = errors.New("conflicto con el estado actual")
)
