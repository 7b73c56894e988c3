// Package auth orquesta el inicio y cierre de sesión de la consola sobre el
// cliente del API y el almacén de sesión.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/api"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/sessionstore"
	"github.com/jhoicas/Inventario-console/pkg/logger"
	"github.com/jhoicas/Inventario-console/pkg/token"
)

// Gateway operaciones del cliente del API que necesita este caso de uso.
type Gateway interface {
	Login(ctx context.Context, credentials api.LoginRequest) (*api.Result[api.LoginData], error)
	GetCurrentUser(ctx context.Context) (*api.Result[entity.User], error)
}

// UseCase caso de uso de autenticación de la consola.
type UseCase struct {
	gateway Gateway
	session *sessionstore.Store
	log     *logger.Logger
}

// New construye el caso de uso.
func New(gateway Gateway, session *sessionstore.Store, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{gateway: gateway, session: session, log: log}
}

// Login autentica al operador y resuelve su perfil.
//
// El perfil se toma del propio envelope de login si vino completo; si no, se
// consulta /users/current. Si tampoco así se puede resolver, el login se
// deshace (sesión eliminada) y se devuelve ErrPerfilNoDisponible: la consola
// nunca asume un rol por defecto cuando el backend no lo confirma.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*entity.User, *api.Result[api.LoginData], error) {
	res, err := uc.gateway.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, nil, err
	}
	if !res.Success {
		uc.log.Info().Str("email", email).Int("status", res.StatusCode).Msg("login rechazado por el backend")
		return nil, res, nil
	}

	if user := res.Data.User; user.Role != "" {
		uc.log.Info().Str("email", email).Str("role", user.Role).Msg("sesión iniciada")
		return &user, res, nil
	}

	// El envelope de login no traía el perfil: consultarlo.
	profile, err := uc.gateway.GetCurrentUser(ctx)
	if err != nil {
		return nil, res, err
	}
	if !profile.Success || profile.Data.Role == "" {
		uc.log.Warn().Str("email", email).Int("status", profile.StatusCode).
			Msg("login correcto pero el perfil no se pudo resolver: sesión descartada")
		if clearErr := uc.session.Clear(); clearErr != nil {
			return nil, res, fmt.Errorf("descartar sesión sin perfil: %w", clearErr)
		}
		return nil, res, domain.ErrPerfilNoDisponible
	}
	if err := uc.session.SetRole(profile.Data.Role); err != nil {
		return nil, res, err
	}
	uc.log.Info().Str("email", email).Str("role", profile.Data.Role).Msg("sesión iniciada")
	return &profile.Data, res, nil
}

// Logout elimina la sesión local. El backend no mantiene estado de sesión.
func (uc *UseCase) Logout() error {
	return uc.session.Clear()
}

// Session estado actual de la sesión local.
type Session struct {
	Authenticated bool
	Role          string
	ExpiresAt     time.Time // cero si el token no trae exp
}

// CurrentSession inspecciona la sesión almacenada sin tocar la red.
func (uc *UseCase) CurrentSession() (*Session, error) {
	tok, err := uc.session.Token()
	if err != nil {
		return nil, err
	}
	if tok == "" {
		return &Session{}, nil
	}
	role, err := uc.session.Role()
	if err != nil {
		return nil, err
	}
	s := &Session{Authenticated: true, Role: role}
	if claims, err := token.Inspect(tok); err == nil {
		if claims.Role != "" && s.Role == "" {
			s.Role = claims.Role
		}
		if claims.ExpiresAt != nil {
			s.ExpiresAt = claims.ExpiresAt.Time
		}
	}
	return s, nil
}
