package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jhoicas/Inventario-console/internal/domain/entity"
)

// LoginRequest credenciales de /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest alta de usuario en /auth/register.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	PhoneNumber string `json:"phoneNumber"`
	Role        string `json:"role"`
}

// UpdateUserRequest actualización parcial del perfil: solo los campos no nil
// se envían; el backend decide cuáles acepta.
type UpdateUserRequest struct {
	Name        *string `json:"name,omitempty"`
	Email       *string `json:"email,omitempty"`
	Password    *string `json:"password,omitempty"`
	PhoneNumber *string `json:"phoneNumber,omitempty"`
}

// Login autentica contra el backend y, si el resultado es exitoso y trae
// token, lo persiste en el almacén de sesión (junto con el rol si vino).
func (c *Client) Login(ctx context.Context, credentials LoginRequest) (*Result[LoginData], error) {
	res, err := do[LoginData](ctx, c, http.MethodPost, "/auth/login", credentials)
	if err != nil {
		return nil, err
	}
	if res.Success && res.Data.Token != "" {
		if err := c.session.SetToken(res.Data.Token); err != nil {
			return nil, fmt.Errorf("api: persistir token de sesión: %w", err)
		}
		if role := res.Data.User.Role; role != "" {
			if err := c.session.SetRole(role); err != nil {
				return nil, fmt.Errorf("api: persistir rol de sesión: %w", err)
			}
		}
	}
	return res, nil
}

// Register registra un usuario nuevo.
func (c *Client) Register(ctx context.Context, user RegisterRequest) (*Result[entity.User], error) {
	return do[entity.User](ctx, c, http.MethodPost, "/auth/register", user)
}

// GetCurrentUser devuelve el perfil del usuario autenticado.
func (c *Client) GetCurrentUser(ctx context.Context) (*Result[entity.User], error) {
	return do[entity.User](ctx, c, http.MethodGet, "/users/current", nil)
}

// UpdateUser actualiza parcialmente el perfil del usuario id.
func (c *Client) UpdateUser(ctx context.Context, id int, fields UpdateUserRequest) (*Result[entity.User], error) {
	return do[entity.User](ctx, c, http.MethodPut, fmt.Sprintf("/users/update/%d", id), fields)
}
