// Package sessionstore persiste la sesión de la consola (token y rol) en
// disco, cifrada en reposo. Es el análogo del localStorage del navegador:
// dos entradas con nombre fijo, última escritura gana si dos procesos
// comparten el directorio.
package sessionstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jhoicas/Inventario-console/internal/domain"
)

// Nombres fijos de las entradas persistidas (contrato con versiones previas).
const (
	tokenEntry = "authToken"
	roleEntry  = "userRole"
)

// Store almacén de sesión explícito e inyectable: se construye con New y se
// pasa por referencia al cliente del API, nunca como singleton de paquete.
type Store struct {
	dir string

	// OnClear se invoca tras Clear: es el efecto de "navegar al login".
	// La consola lo usa para avisar al operador; en tests permite observar
	// el derribo de sesión. Puede ser nil.
	OnClear func()
}

// New crea el almacén sobre dir, creándolo si no existe.
func New(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("sessionstore: directorio vacío")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("sessionstore: crear directorio %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// SetToken cifra y persiste el token, sobrescribiendo el anterior.
func (s *Store) SetToken(token string) error {
	return s.write(tokenEntry, token)
}

// Token devuelve el token almacenado, o cadena vacía si no hay sesión.
// La ausencia no es un error; un blob corrupto sí.
func (s *Store) Token() (string, error) {
	return s.read(tokenEntry)
}

// SetRole cifra y persiste el rol del usuario.
func (s *Store) SetRole(role string) error {
	return s.write(roleEntry, role)
}

// Role devuelve el rol almacenado, o cadena vacía si no hay sesión.
func (s *Store) Role() (string, error) {
	return s.read(roleEntry)
}

// IsAuthenticated indica si hay un token presente y descifrable.
func (s *Store) IsAuthenticated() bool {
	tok, err := s.Token()
	return err == nil && tok != ""
}

// Clear elimina ambas entradas y dispara OnClear. Es un efecto duro, no un
// reset suave: tras Clear el operador debe volver a iniciar sesión.
func (s *Store) Clear() error {
	var errs []error
	for _, entry := range []string{tokenEntry, roleEntry} {
		if err := os.Remove(filepath.Join(s.dir, entry)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, fmt.Errorf("sessionstore: eliminar %s: %w", entry, err))
		}
	}
	if s.OnClear != nil {
		s.OnClear()
	}
	return errors.Join(errs...)
}

func (s *Store) write(entry, value string) error {
	blob, err := encrypt(value)
	if err != nil {
		return err
	}
	path := filepath.Join(s.dir, entry)
	if err := os.WriteFile(path, []byte(blob), 0o600); err != nil {
		return fmt.Errorf("sessionstore: escribir %s: %w", entry, err)
	}
	return nil
}

func (s *Store) read(entry string) (string, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, entry))
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("sessionstore: leer %s: %w", entry, err)
	}
	value, err := decrypt(string(raw))
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrSesionInvalida, err)
	}
	return value, nil
}
