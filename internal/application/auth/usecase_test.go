package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/domain"
	"github.com/jhoicas/Inventario-console/internal/domain/entity"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/api"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/sessionstore"
)

// fakeGateway simula el cliente del API y persiste el token como lo hace el
// cliente real en el login exitoso.
type fakeGateway struct {
	session     *sessionstore.Store
	loginResult *api.Result[api.LoginData]
	userResult  *api.Result[entity.User]
	userCalls   int
}

func (f *fakeGateway) Login(_ context.Context, _ api.LoginRequest) (*api.Result[api.LoginData], error) {
	if f.loginResult.Success && f.loginResult.Data.Token != "" {
		if err := f.session.SetToken(f.loginResult.Data.Token); err != nil {
			return nil, err
		}
	}
	return f.loginResult, nil
}

func (f *fakeGateway) GetCurrentUser(_ context.Context) (*api.Result[entity.User], error) {
	f.userCalls++
	return f.userResult, nil
}

func newStore(t *testing.T) *sessionstore.Store {
	t.Helper()
	s, err := sessionstore.New(t.TempDir())
	require.NoError(t, err)
	return s
}

// El envelope de login trae usuario y rol: no hace falta consultar el perfil.
func TestLogin_PerfilEnElEnvelope(t *testing.T) {
	session := newStore(t)
	gw := &fakeGateway{
		session: session,
		loginResult: &api.Result[api.LoginData]{
			Success: true, StatusCode: 200,
			Data: api.LoginData{Token: "T1", User: entity.User{Role: "ADMIN"}},
		},
	}
	uc := New(gw, session, nil)

	user, res, err := uc.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, "ADMIN", user.Role)
	assert.Zero(t, gw.userCalls, "con perfil en el envelope no se consulta /users/current")
	assert.True(t, session.IsAuthenticated())
}

// Sin perfil en el envelope se consulta /users/current y se cachea el rol.
func TestLogin_PerfilPorConsulta(t *testing.T) {
	session := newStore(t)
	gw := &fakeGateway{
		session: session,
		loginResult: &api.Result[api.LoginData]{
			Success: true, StatusCode: 200,
			Data: api.LoginData{Token: "T1"},
		},
		userResult: &api.Result[entity.User]{
			Success: true, StatusCode: 200,
			Data: entity.User{ID: 3, Name: "Ana", Email: "a@b.com", Role: "MANAGER"},
		},
	}
	uc := New(gw, session, nil)

	user, _, err := uc.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	assert.Equal(t, 1, gw.userCalls)
	assert.Equal(t, "MANAGER", user.Role)
	role, err := session.Role()
	require.NoError(t, err)
	assert.Equal(t, "MANAGER", role)
}

// Login correcto pero perfil irresoluble: error explícito y sesión descartada.
// Nunca se asume un rol por defecto.
func TestLogin_PerfilNoDisponibleDescartaSesion(t *testing.T) {
	session := newStore(t)
	gw := &fakeGateway{
		session: session,
		loginResult: &api.Result[api.LoginData]{
			Success: true, StatusCode: 200,
			Data: api.LoginData{Token: "T1"},
		},
		userResult: &api.Result[entity.User]{
			Success: false, StatusCode: 500, Message: "boom",
		},
	}
	uc := New(gw, session, nil)

	navigated := false
	session.OnClear = func() { navigated = true }

	user, _, err := uc.Login(context.Background(), "a@b.com", "x")
	assert.ErrorIs(t, err, domain.ErrPerfilNoDisponible)
	assert.Nil(t, user)
	assert.False(t, session.IsAuthenticated(), "no debe quedar una sesión a medias")
	assert.True(t, navigated)
}

// Login rechazado por el backend: resultado fallido, sin error y sin sesión.
func TestLogin_Rechazado(t *testing.T) {
	session := newStore(t)
	gw := &fakeGateway{
		session: session,
		loginResult: &api.Result[api.LoginData]{
			Success: false, StatusCode: 400, Message: "Invalid credentials",
		},
	}
	uc := New(gw, session, nil)

	user, res, err := uc.Login(context.Background(), "a@b.com", "mal")
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, res.Success)
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.False(t, session.IsAuthenticated())
}

// Logout elimina la sesión local.
func TestLogout(t *testing.T) {
	session := newStore(t)
	require.NoError(t, session.SetToken("T1"))
	uc := New(&fakeGateway{session: session}, session, nil)

	require.NoError(t, uc.Logout())
	assert.False(t, session.IsAuthenticated())
}

// CurrentSession refleja lo almacenado sin tocar la red.
func TestCurrentSession(t *testing.T) {
	session := newStore(t)
	gw := &fakeGateway{session: session}
	uc := New(gw, session, nil)

	s, err := uc.CurrentSession()
	require.NoError(t, err)
	assert.False(t, s.Authenticated)

	require.NoError(t, session.SetToken("token-opaco"))
	require.NoError(t, session.SetRole("ADMIN"))

	s, err = uc.CurrentSession()
	require.NoError(t, err)
	assert.True(t, s.Authenticated)
	assert.Equal(t, "ADMIN", s.Role)
	assert.Zero(t, gw.userCalls)
}
