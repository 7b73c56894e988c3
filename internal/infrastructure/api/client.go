// Package api implementa el cliente del API de inventario: adjunta la sesión
// a cada petición saliente, normaliza los envelopes heterogéneos del backend
// en un resultado uniforme y derriba la sesión local al recibir un 401.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Inventario-console/internal/infrastructure/sessionstore"
	"github.com/jhoicas/Inventario-console/pkg/logger"
)

// netErrorMessage mensaje fijo sintetizado cuando no hubo respuesta de red.
// Es contrato con las vistas: no cambiar el texto.
const netErrorMessage = "Network error. Please try again."

// maxBodyBytes tope de lectura del cuerpo de respuesta.
const maxBodyBytes = 10 << 20

// Config parámetros de construcción del cliente.
type Config struct {
	BaseURL      string
	Timeout      time.Duration
	RateLimitRPS float64 // 0 = sin límite
}

// Client fachada sobre el backend REST de inventario. Seguro para uso
// concurrente: no guarda estado mutable entre peticiones aparte del
// almacén de sesión inyectado.
type Client struct {
	baseURL string
	http    *http.Client
	session *sessionstore.Store
	log     *logger.Logger
}

// New construye el cliente ligado a una base URL fija. El almacén de sesión
// se inyecta explícitamente (nada de singletons): así el cliente es testeable
// y pueden convivir varias sesiones independientes en el mismo proceso.
func New(cfg Config, session *sessionstore.Store, log *logger.Logger) (*Client, error) {
	if session == nil {
		return nil, fmt.Errorf("api: almacén de sesión requerido")
	}
	base, err := url.Parse(cfg.BaseURL)
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api: base URL inválida %q", cfg.BaseURL)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 25 * time.Second
	}
	var limiter *rate.Limiter
	if cfg.RateLimitRPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimitRPS), 1)
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Client{
		baseURL: strings.TrimRight(base.String(), "/"),
		http: &http.Client{
			Timeout: timeout,
			Transport: &sessionTransport{
				base:    http.DefaultTransport,
				session: session,
				limiter: limiter,
			},
		},
		session: session,
		log:     log,
	}, nil
}

// sessionTransport interceptor de salida: adjunta el token de sesión como
// credencial Bearer y un X-Request-Id para correlacionar en los logs del
// backend. El token se relee del almacén en cada petición, de modo que un
// login en otra pestaña/proceso aplica sin reconstruir el cliente.
type sessionTransport struct {
	base    http.RoundTripper
	session *sessionstore.Store
	limiter *rate.Limiter
}

func (t *sessionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.limiter != nil {
		if err := t.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}
	clone := req.Clone(req.Context())
	if token, err := t.session.Token(); err == nil && token != "" {
		clone.Header.Set("Authorization", "Bearer "+token)
	}
	clone.Header.Set("X-Request-Id", uuid.NewString())
	return t.base.RoundTrip(clone)
}

// do despacha una petición JSON y normaliza la respuesta.
//
// Semántica de fallo (ver Result): los fallos esperados —validación,
// not-found, denegación— vuelven como Success:false, nunca como error. Un
// fallo de red sin respuesta se sintetiza como resultado fallido 500 con
// mensaje fijo. Solo errores de programación (petición inconstruible,
// payload exitoso indecodificable) vuelven como error.
func do[T any](ctx context.Context, c *Client, method, path string, body any) (*Result[T], error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("api: serializar cuerpo de %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(encoded)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("api: crear petición %s %s: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return dispatch[T](c, req)
}

func dispatch[T any](c *Client, req *http.Request) (*Result[T], error) {
	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		// Fallo de red sin respuesta: resultado uniforme sintetizado.
		c.log.Warn().Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Msg("fallo de red sin respuesta del backend")
		return &Result[T]{
			Success:    false,
			Message:    netErrorMessage,
			StatusCode: http.StatusInternalServerError,
		}, nil
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("api: leer respuesta de %s %s: %w", req.Method, req.URL.Path, err)
	}

	c.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(started)).
		Msg("petición al backend")

	res, err := normalize[T](resp.StatusCode, raw)
	if err != nil {
		return nil, err
	}

	// Interceptor de entrada: un 401 (de transporte o del envelope) derriba
	// la sesión local antes de devolver el resultado. El llamador recibe
	// igualmente el resultado fallido con el 401, pero no debe asumir que la
	// sesión sigue viva.
	if resp.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusUnauthorized {
		c.log.Warn().Str("path", req.URL.Path).Msg("401 del backend: sesión local eliminada")
		if err := c.session.Clear(); err != nil {
			c.log.Error().Err(err).Msg("eliminar sesión local")
		}
	}

	return res, nil
}
