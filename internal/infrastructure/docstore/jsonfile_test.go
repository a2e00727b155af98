package docstore_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/infrastructure/docstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests FileStore
// ──────────────────────────────────────────────────────────────────────────────

func TestFileStore_SiembraDocumentoInicial(t *testing.T) {
	store, err := docstore.NewFileStore(filepath.Join(t.TempDir(), "inventario.json"))
	require.NoError(t, err)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)

	assert.Empty(t, doc.Items)
	assert.Empty(t, doc.Categories)
	// Usuarios por defecto admin/usuario
	require.Len(t, doc.Users, 2)
	require.NotNil(t, doc.FindUser("admin"))
	assert.Equal(t, entity.RoleAdmin, doc.FindUser("admin").Role)
	require.NotNil(t, doc.FindUser("usuario"))
	assert.Equal(t, entity.RoleUser, doc.FindUser("usuario").Role)
}

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.json")
	store, err := docstore.NewFileStore(path)
	require.NoError(t, err)

	err = store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Categories = append(doc.Categories, entity.Category{ID: "cat-1", Name: "Notebooks"})
		doc.Items = append(doc.Items, entity.Item{
			ID: "item-1", CategoryID: "cat-1",
			Values: map[string]any{"patrimonio": "100", "ram": float64(16)},
		})
		return nil
	})
	require.NoError(t, err)

	// Un almacén nuevo sobre el mismo archivo ve exactamente lo escrito
	reopened, err := docstore.NewFileStore(path)
	require.NoError(t, err)
	doc, err := reopened.Load(context.Background())
	require.NoError(t, err)

	item := doc.FindItem("item-1")
	require.NotNil(t, item)
	assert.Equal(t, "100", item.Value("patrimonio"))
	assert.Equal(t, float64(16), item.Value("ram"))
}

// Si la unidad de trabajo falla, no se persiste nada.
func TestFileStore_RunConErrorNoPersiste(t *testing.T) {
	store, err := docstore.NewFileStore(filepath.Join(t.TempDir(), "inventario.json"))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Items = append(doc.Items, entity.Item{ID: "huerfano", CategoryID: "x"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
}

// La escritura deja un solo archivo definitivo, sin temporales residuales.
func TestFileStore_EscrituraAtomicaSinResiduos(t *testing.T) {
	dir := t.TempDir()
	store, err := docstore.NewFileStore(filepath.Join(dir, "inventario.json"))
	require.NoError(t, err)

	err = store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Categories = append(doc.Categories, entity.Category{ID: "cat-1", Name: "Monitores"})
		return nil
	})
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "inventario.json", entries[0].Name())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests SQLiteStore
// ──────────────────────────────────────────────────────────────────────────────

func TestSQLiteStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventario.db")
	store, err := docstore.NewSQLiteStore(path)
	require.NoError(t, err)
	defer store.Close()

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, doc.Users, 2, "el documento sembrado incluye los usuarios por defecto")

	err = store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Categories = append(doc.Categories, entity.Category{ID: "cat-1", Name: "Impresoras"})
		doc.DuplicateConfig.Fields = []string{"patrimonio"}
		return nil
	})
	require.NoError(t, err)

	doc, err = store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, doc.FindCategory("cat-1"))
	assert.Equal(t, []string{"patrimonio"}, doc.DuplicateConfig.Fields)
}

func TestSQLiteStore_RunConErrorNoPersiste(t *testing.T) {
	store, err := docstore.NewSQLiteStore(filepath.Join(t.TempDir(), "inventario.db"))
	require.NoError(t, err)
	defer store.Close()

	boom := errors.New("boom")
	err = store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Items = append(doc.Items, entity.Item{ID: "huerfano", CategoryID: "x"})
		return boom
	})
	assert.ErrorIs(t, err, boom)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Items)
}
