package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrForbidden    = errors.New("acceso denegado")
	ErrConflict     = errors.New("conflicto con el estado actual")

	// ErrInvariantViolation indica un estado interno inconsistente del motor de slotting
	// (pool o asignación). No es un problema de datos: la corrida debe abortarse.
	ErrInvariantViolation = errors.New("invariante del motor de slotting violado")

	ErrLocationNotInPool     = errors.New("la ubicación no está libre en el pool")
	ErrLocationAlreadyInPool = errors.New("la ubicación ya está libre en el pool")
	ErrUnknownLocation       = errors.New("ubicación desconocida")
	ErrLocationOccupied      = errors.New("la ubicación ya está ocupada por otro ítem")
	ErrItemAlreadyAssigned   = errors.New("el ítem ya ocupa otra ubicación")
)
