package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-console/internal/infrastructure/api"
	"github.com/jhoicas/Inventario-console/internal/infrastructure/sessionstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// newTestClient construye un cliente apuntando a un backend simulado, con un
// almacén de sesión en un directorio temporal.
func newTestClient(t *testing.T, handler http.HandlerFunc) (*api.Client, *sessionstore.Store) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	session, err := sessionstore.New(t.TempDir())
	require.NoError(t, err)

	client, err := api.New(api.Config{
		BaseURL: srv.URL + "/api",
		Timeout: 5 * time.Second,
	}, session, nil)
	require.NoError(t, err)
	return client, session
}

func writeJSON(w http.ResponseWriter, status int, body map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ──────────────────────────────────────────────────────────────────────────────
// Autenticación
// ──────────────────────────────────────────────────────────────────────────────

// Login exitoso: el resultado uniforme trae {token, user} y el token queda
// persistido cifrado (round-trip por el almacén).
func TestLogin_PersisteTokenYRol(t *testing.T) {
	client, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/auth/login", r.URL.Path)

		var creds map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&creds))
		assert.Equal(t, "a@b.com", creds["email"])
		assert.Equal(t, "x", creds["password"])

		writeJSON(w, 200, map[string]any{
			"status": 200, "message": "OK", "token": "T1", "role": "ADMIN",
		})
	})

	res, err := client.Login(context.Background(), api.LoginRequest{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 200, res.StatusCode)
	assert.Equal(t, "T1", res.Data.Token)
	assert.Equal(t, "ADMIN", res.Data.User.Role)
	assert.Equal(t, "", res.Data.User.Email, "subcampo ausente debe ser ''")
	assert.Equal(t, 0, res.Data.User.ID, "subcampo ausente debe ser 0")

	tok, err := session.Token()
	require.NoError(t, err)
	assert.Equal(t, "T1", tok, "el token debe sobrevivir el cifrado en reposo")
	role, err := session.Role()
	require.NoError(t, err)
	assert.Equal(t, "ADMIN", role)
	assert.True(t, session.IsAuthenticated())
}

// Login rechazado: resultado fallido con el mensaje del backend, sin sesión.
func TestLogin_Rechazado(t *testing.T) {
	client, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, 200, map[string]any{"status": 400, "message": "Invalid credentials"})
	})

	res, err := client.Login(context.Background(), api.LoginRequest{Email: "a@b.com", Password: "mal"})
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, 400, res.StatusCode)
	assert.Equal(t, "Invalid credentials", res.Message)
	assert.False(t, session.IsAuthenticated())
}

// Tras el login, toda petición sale con la credencial Bearer y un X-Request-Id.
func TestClient_AdjuntaBearerYRequestID(t *testing.T) {
	var gotAuth, gotReqID string
	client, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotReqID = r.Header.Get("X-Request-Id")
		writeJSON(w, 200, map[string]any{"status": 200, "products": []any{}})
	})
	require.NoError(t, session.SetToken("mi-token"))

	_, err := client.GetAllProducts(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Bearer mi-token", gotAuth)
	assert.NotEmpty(t, gotReqID, "toda petición debe llevar X-Request-Id")
}

// Sin token almacenado no se envía header Authorization.
func TestClient_SinSesionNoHayBearer(t *testing.T) {
	var sawAuth bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, sawAuth = r.Header["Authorization"]
		writeJSON(w, 200, map[string]any{"status": 200, "products": []any{}})
	})

	_, err := client.GetAllProducts(context.Background())
	require.NoError(t, err)
	assert.False(t, sawAuth, "sin sesión no debe haber header Authorization")
}

// Un 401 de transporte derriba la sesión local: ambas entradas eliminadas y
// el hook de navegación disparado; el resultado fallido aún reporta el 401.
func TestClient_401DerribaLaSesion(t *testing.T) {
	client, session := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]any{
			"status": 401, "message": "Token expired",
		})
	})
	require.NoError(t, session.SetToken("caducado"))
	require.NoError(t, session.SetRole("ADMIN"))

	navigated := false
	session.OnClear = func() { navigated = true }

	res, err := client.GetAllProducts(context.Background())
	require.NoError(t, err)

	assert.False(t, res.Success)
	assert.Equal(t, 401, res.StatusCode)
	assert.Equal(t, "Token expired", res.Message)

	assert.False(t, session.IsAuthenticated(), "tras un 401 no debe quedar sesión")
	role, err := session.Role()
	require.NoError(t, err)
	assert.Empty(t, role, "el rol cacheado también debe eliminarse")
	assert.True(t, navigated, "debe dispararse la navegación al login")
}

// Fallo de red sin respuesta: resultado sintetizado con mensaje fijo y 500.
func TestClient_FalloDeRedSintetiza500(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // el puerto queda sin nadie escuchando

	session, err := sessionstore.New(t.TempDir())
	require.NoError(t, err)
	client, err := api.New(api.Config{BaseURL: srv.URL + "/api", Timeout: time.Second}, session, nil)
	require.NoError(t, err)

	res, err := client.GetAllProducts(context.Background())
	require.NoError(t, err, "el fallo de red es un resultado uniforme, no un error")

	assert.False(t, res.Success)
	assert.Equal(t, 500, res.StatusCode)
	assert.Equal(t, "Network error. Please try again.", res.Message)
}

// Configuración malformada sí es error (errores de programación propagan).
func TestNew_BaseURLInvalida(t *testing.T) {
	session, err := sessionstore.New(t.TempDir())
	require.NoError(t, err)

	_, err = api.New(api.Config{BaseURL: "::no-es-url"}, session, nil)
	assert.Error(t, err)

	_, err = api.New(api.Config{BaseURL: "http://ok.example"}, nil, nil)
	assert.Error(t, err, "el almacén de sesión es obligatorio")
}

// ──────────────────────────────────────────────────────────────────────────────
// Recursos
// ──────────────────────────────────────────────────────────────────────────────

// El array products del envelope llega exacto como Data.
func TestGetAllProducts_DesempaquetaProducts(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/all", r.URL.Path)
		writeJSON(w, 200, map[string]any{
			"status":  200,
			"message": "Success",
			"products": []map[string]any{
				{"id": 1, "name": "Tuerca M8", "price": "0.35", "stockQuantity": 500, "categoryId": 2},
			},
		})
	})

	res, err := client.GetAllProducts(context.Background())
	require.NoError(t, err)

	assert.True(t, res.Success)
	require.Len(t, res.Data, 1)
	assert.Equal(t, 1, res.Data[0].ID)
	assert.Equal(t, "Tuerca M8", res.Data[0].Name)
	assert.True(t, res.Data[0].Price.Equal(decimal.RequireFromString("0.35")))
	assert.Equal(t, 500, res.Data[0].StockQuantity)
}

// Alta de producto: formulario multipart con los campos del contrato y la
// imagen opcional.
func TestCreateProduct_Multipart(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products/add", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "Martillo", r.FormValue("name"))
		assert.Equal(t, "MART-01", r.FormValue("sku"))
		assert.Equal(t, "12.9", r.FormValue("price"))
		assert.Equal(t, "25", r.FormValue("stockQuantity"))
		assert.Equal(t, "3", r.FormValue("categoryId"))
		assert.Empty(t, r.FormValue("productId"), "en el alta no se envía productId")

		_, header, err := r.FormFile("imageFile")
		require.NoError(t, err)
		assert.Equal(t, "martillo.png", header.Filename)

		writeJSON(w, 200, map[string]any{
			"status": 200, "message": "Product created",
			"product": map[string]any{"id": 10, "name": "Martillo", "price": "12.9", "stockQuantity": 25, "categoryId": 3},
		})
	})

	res, err := client.CreateProduct(context.Background(), api.ProductForm{
		Name:          "Martillo",
		SKU:           "MART-01",
		Description:   "Martillo de carpintero",
		Price:         decimal.RequireFromString("12.9"),
		StockQuantity: 25,
		CategoryID:    3,
		Image:         &api.ImageFile{Name: "martillo.png", Content: []byte{0x89, 0x50, 0x4e, 0x47}},
	})
	require.NoError(t, err)

	assert.True(t, res.Success)
	assert.Equal(t, 10, res.Data.ID)
}

// La edición exige productId; sin él es error de programación.
func TestUpdateProduct_RequiereProductID(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	_, err := client.UpdateProduct(context.Background(), api.ProductForm{Name: "x"})
	assert.Error(t, err)
}

// La búsqueda libre viaja en searchText plegada sin tildes, junto con la paginación.
func TestGetAllTransactions_BusquedaSinTildes(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions/all", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "0", q.Get("page"))
		assert.Equal(t, "50", q.Get("size"))
		assert.Equal(t, "cafe tostado", q.Get("searchText"))
		writeJSON(w, 200, map[string]any{"status": 200, "transactions": []any{}})
	})

	res, err := client.GetAllTransactions(context.Background(), 0, 50, "café tostado")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, res.Data)
}

// Listado por mes y año usa el endpoint by-month-year.
func TestGetTransactionsByMonthYear(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/transactions/by-month-year", r.URL.Path)
		assert.Equal(t, "3", r.URL.Query().Get("month"))
		assert.Equal(t, "2025", r.URL.Query().Get("year"))
		writeJSON(w, 200, map[string]any{
			"status": 200,
			"transactions": []map[string]any{
				{"id": 7, "transactionType": "SALE", "totalProducts": 2, "totalPrice": "50.00", "status": "COMPLETED"},
			},
		})
	})

	res, err := client.GetTransactionsByMonthYear(context.Background(), 3, 2025)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "SALE", res.Data[0].TransactionType)
}

// Fallos de negocio (not-found, validación) vuelven como resultado fallido,
// nunca como error.
func TestDeleteCategory_NotFoundEsResultado(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/categories/delete/99", r.URL.Path)
		writeJSON(w, 200, map[string]any{"status": 404, "message": "Category not found"})
	})

	res, err := client.DeleteCategory(context.Background(), 99)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 404, res.StatusCode)
	assert.Equal(t, "Category not found", res.Message)
}
