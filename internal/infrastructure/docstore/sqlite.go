package docstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
)

// SQLiteStore guarda el documento serializado en una tabla de una sola fila.
// El contrato sigue siendo el de un key-value síncrono de un documento: no
// hay esquema relacional por entidad, solo persistencia durable del snapshot.
type SQLiteStore struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteStore abre (o crea) la base y asegura la tabla del documento.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("docstore: abrir sqlite %s: %w", path, err)
	}
	// Un solo escritor; una conexión evita SQLITE_BUSY
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS document (
		id   INTEGER PRIMARY KEY CHECK (id = 1),
		data TEXT NOT NULL
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("docstore: crear tabla document: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close libera la conexión.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Load lee el documento completo, sembrando el inicial si la fila no existe.
func (s *SQLiteStore) Load(ctx context.Context) (*entity.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *SQLiteStore) loadLocked(ctx context.Context) (*entity.Document, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM document WHERE id = 1`).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		doc := seedDocument()
		if err := s.saveLocked(ctx, doc); err != nil {
			return nil, err
		}
		return doc, nil
	}
	if err != nil {
		return nil, fmt.Errorf("docstore: leer documento: %w", err)
	}
	doc := entity.NewDocument()
	if err := json.Unmarshal([]byte(raw), doc); err != nil {
		return nil, fmt.Errorf("docstore: documento corrupto: %w", err)
	}
	return doc, nil
}

// Save reemplaza el documento entero (upsert de la única fila).
func (s *SQLiteStore) Save(ctx context.Context, doc *entity.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked(ctx, doc)
}

func (s *SQLiteStore) saveLocked(ctx context.Context, doc *entity.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("docstore: serializar documento: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO document (id, data) VALUES (1, ?)
		ON CONFLICT(id) DO UPDATE SET data = excluded.data`, string(raw))
	if err != nil {
		return fmt.Errorf("docstore: guardar documento: %w", err)
	}
	return nil
}

// Run ejecuta fn como unidad de trabajo leer-modificar-escribir.
func (s *SQLiteStore) Run(ctx context.Context, fn func(doc *entity.Document) error) error {
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
