// Package tokenstore almacenes del token de sesión para la CLI.
package tokenstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jhoicas/Promedio-api/internal/application/ports"
)

var (
	_ ports.TokenStore = (*FileStore)(nil)
	_ ports.TokenStore = (*MemoryStore)(nil)
)

type tokenFile struct {
	Token   string    `yaml:"token"`
	SavedAt time.Time `yaml:"saved_at"`
}

// FileStore almacén durable: un archivo YAML legible solo por el usuario.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore construye el almacén sobre path. El archivo se crea al primer Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path ruta del archivo.
func (s *FileStore) Path() string { return s.path }

// Save escribe el token (0600), creando el directorio (0700) si hace falta.
func (s *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("tokenstore: crear directorio: %w", err)
	}
	data, err := yaml.Marshal(tokenFile{Token: token, SavedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("tokenstore: serializar: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("tokenstore: escribir: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("tokenstore: escribir: %w", err)
	}
	return nil
}

// Load devuelve "" sin error si el archivo no existe.
func (s *FileStore) Load() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("tokenstore: leer: %w", err)
	}
	var tf tokenFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return "", fmt.Errorf("tokenstore: archivo corrupto %s: %w", s.path, err)
	}
	return tf.Token, nil
}

// Clear elimina el archivo; no es error si no existe.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("tokenstore: borrar: %w", err)
	}
	return nil
}
