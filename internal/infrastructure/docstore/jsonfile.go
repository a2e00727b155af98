package docstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
)

// FileStore persiste el documento como un archivo JSON. La escritura es
// atómica: se escribe un archivo temporal en el mismo directorio y se
// renombra sobre el definitivo, de modo que nunca hay ventana de escritura
// parcial visible.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore construye el almacén y crea el directorio si hace falta.
func NewFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("docstore: crear directorio: %w", err)
	}
	return &FileStore{path: path}, nil
}

// Load lee el documento completo. Si el archivo no existe todavía, siembra
// el documento inicial y lo persiste.
func (s *FileStore) Load(ctx context.Context) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *FileStore) loadLocked(ctx context.Context) (*entity.Document, error) {
	raw, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		doc := seedDocument()
		if err := s.saveLocked(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("docstore: leer %s: %w", s.path, err)
	}
	doc := entity.NewDocument()
	if err := json.Unmarshal(raw, doc); err != nil {
		return nil, fmt.Errorf("docstore: documento corrupto en %s: %w", s.path, err)
	}
	return doc, nil
}

// Save escribe el documento entero de forma atómica.
func (s *FileStore) Save(ctx context.Context, doc *entity.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, doc)
}

func (s *FileStore) saveLocked(_ context.Context, doc *entity.Document) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("docstore: serializar documento: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".inventario-*.json")
	if err != nil {
		return fmt.Errorf("docstore: archivo temporal: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("docstore: escribir temporal: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("docstore: cerrar temporal: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("docstore: renombrar sobre %s: %w", s.path, err)
	}
	return nil
}

// Run ejecuta fn como unidad de trabajo leer-modificar-escribir bajo el
// mutex del almacén. Si fn devuelve error no se persiste nada.
func (s *FileStore) Run(ctx context.Context, fn func(doc *entity.Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, err := s.loadLocked(ctx)
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.saveLocked(ctx, doc)
}
