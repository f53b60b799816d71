// Package storage guarda los PDF subidos en el sistema de archivos local bajo
// nombres opacos, desacoplados del nombre original.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/Contabilidad-api/internal/application/usecase"
)

// Asegura que LocalStore implementa usecase.FileStore.
var _ usecase.FileStore = (*LocalStore)(nil)

// LocalStore almacenamiento de archivos en disco local.
type LocalStore struct {
	dir string
}

// NewLocalStore crea el directorio de uploads si no existe.
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("crear directorio de uploads: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save persiste el contenido bajo <uploadID>.pdf. El nombre almacenado es el id
// opaco del upload: nunca se usa el nombre original en el filesystem.
func (s *LocalStore) Save(uploadID, originalFilename string, content []byte) (string, string, error) {
	storedFilename := uploadID + ".pdf"
	storedPath := filepath.Join(s.dir, storedFilename)
	if err := os.WriteFile(storedPath, content, 0o644); err != nil {
		return "", "", fmt.Errorf("guardar %s: %w", originalFilename, err)
	}
	return storedFilename, storedPath, nil
}

// Open lee el contenido de un archivo almacenado.
func (s *LocalStore) Open(storedPath string) ([]byte, error) {
	content, err := os.ReadFile(storedPath)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	return content, nil
}

// Remove borra un archivo almacenado. Ignorar un archivo ya inexistente.
func (s *LocalStore) Remove(storedPath string) error {
	if err := os.Remove(storedPath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("borrar archivo: %w", err)
	}
	return nil
}
