package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrForbidden       = errors.New("acceso denegado")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrRenewalPending  = errors.New("ya existe una renovación pendiente para esta licencia")
	ErrRenewalTerminal = errors.New("la renovación ya está en un estado terminal")
	ErrNotExpiryAlert  = errors.New("solo alertas de vencimiento admiten solicitud de renovación")
)
