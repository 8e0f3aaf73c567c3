// Package storage maneja los archivos adjuntos en disco local.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodegapro/bodega-api/internal/application/orders"
)

var _ orders.FileStorage = (*LocalStorage)(nil)

// LocalStorage guarda y borra archivos bajo un directorio base.
// Las rutas persistidas en la base de datos son relativas al directorio base.
type LocalStorage struct {
	baseDir string
}

// NewLocalStorage construye el almacenamiento y asegura el directorio base.
func NewLocalStorage(baseDir string) (*LocalStorage, error) {
	if baseDir == "" {
		return nil, errors.New("storage: directorio base vacío")
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear directorio base: %w", err)
	}
	return &LocalStorage{baseDir: baseDir}, nil
}

// Remove borra el archivo indicado. Un archivo ya inexistente no es error.
func (s *LocalStorage) Remove(path string) error {
	full, err := s.resolve(path)
	if err != nil {
		return err
	}
	if err := os.Remove(full); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("storage: borrar %s: %w", path, err)
	}
	return nil
}

// resolve valida que la ruta relativa quede dentro del directorio base.
func (s *LocalStorage) resolve(path string) (string, error) {
	clean := filepath.Clean(path)
	if clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", fmt.Errorf("storage: ruta inválida: %s", path)
	}
	return filepath.Join(s.baseDir, clean), nil
}
