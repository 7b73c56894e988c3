package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrSesionAusente      = errors.New("no hay sesión iniciada")
	ErrSesionInvalida     = errors.New("la sesión almacenada está corrupta")
	ErrPerfilNoDisponible = errors.New("login correcto pero el perfil de usuario no está disponible")
	ErrStockInsuficiente  = errors.New("stock insuficiente")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
)
