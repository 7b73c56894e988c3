// Package token inspecciona tokens JWT emitidos por el backend sin verificar
// la firma: la consola no conoce el secreto del servidor, así que los claims
// solo sirven para mostrar información (rol, expiración) y nunca como
// decisión de autorización — esa la toma el backend en cada petición.
package token

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims campos de interés del token del backend.
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// Inspect decodifica los claims del token SIN validar la firma.
// Retorna error si el token está malformado.
func Inspect(tokenString string) (*Claims, error) {
	parser := jwt.NewParser()
	claims := &Claims{}
	if _, _, err := parser.ParseUnverified(tokenString, claims); err != nil {
		return nil, fmt.Errorf("token: decodificar claims: %w", err)
	}
	return claims, nil
}

// Expired indica si el claim exp ya pasó. Un token sin exp se considera vigente:
// la palabra final la tiene el backend (responderá 401 si no lo está).
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return now.After(c.ExpiresAt.Time)
}
