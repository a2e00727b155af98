package usecase_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/dto"
	"github.com/jhoicas/patrimonio-api/internal/application/usecase"
	"github.com/jhoicas/patrimonio-api/internal/domain"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/domain/repository"
	"github.com/jhoicas/patrimonio-api/internal/infrastructure/docstore"
	"github.com/jhoicas/patrimonio-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func newStore(t *testing.T) repository.DocumentStore {
	t.Helper()
	store, err := docstore.NewFileStore(filepath.Join(t.TempDir(), "inventario.json"))
	require.NoError(t, err)
	err = store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Categories = append(doc.Categories, entity.Category{ID: "cat-1", Name: "Notebooks"})
		return nil
	})
	require.NoError(t, err)
	return store
}

func newRecorder(t *testing.T, store repository.DocumentStore) *audit.Recorder {
	t.Helper()
	return audit.NewRecorder(store, logger.New(logger.Config{Env: "development", Level: "error"}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests DeriveKey
// ──────────────────────────────────────────────────────────────────────────────

func TestDeriveKey_CamelCaseSinAcentos(t *testing.T) {
	assert.Equal(t, "numeroDeSerie", usecase.DeriveKey("Número de Série"))
	assert.Equal(t, "patrimonio", usecase.DeriveKey("Patrimônio"))
	assert.Equal(t, "memoriaRam", usecase.DeriveKey("Memória RAM"))
	assert.Equal(t, "", usecase.DeriveKey("   "))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests FieldUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestFieldCreate_DerivaKeyDelNombre(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewFieldUseCase(store, newRecorder(t, store))

	field, err := uc.Create(context.Background(), "cat-1", dto.CreateFieldRequest{
		Name: "Número de Série",
		Type: entity.FieldTypeString,
	})
	require.NoError(t, err)
	assert.Equal(t, "numeroDeSerie", field.Key)
	assert.Equal(t, "Número de Série", field.Name)
}

func TestFieldCreate_KeyUnicaPorCategoria(t *testing.T) {
	store := newStore(t)
	err := store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Categories = append(doc.Categories, entity.Category{ID: "cat-2", Name: "Monitores"})
		return nil
	})
	require.NoError(t, err)
	uc := usecase.NewFieldUseCase(store, newRecorder(t, store))

	_, err = uc.Create(context.Background(), "cat-1", dto.CreateFieldRequest{Name: "Serie", Type: entity.FieldTypeString})
	require.NoError(t, err)

	// Misma key en la misma categoría: conflicto
	_, err = uc.Create(context.Background(), "cat-1", dto.CreateFieldRequest{Name: "Serie", Type: entity.FieldTypeString})
	assert.ErrorIs(t, err, domain.ErrDuplicateKey)

	// Misma key en otra categoría: permitido, la unicidad no es global
	_, err = uc.Create(context.Background(), "cat-2", dto.CreateFieldRequest{Name: "Serie", Type: entity.FieldTypeString})
	assert.NoError(t, err)
}

func TestFieldCreate_RechazaKeysReservadas(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewFieldUseCase(store, newRecorder(t, store))

	for _, key := range []string{"id", "categoryId", "status"} {
		_, err := uc.Create(context.Background(), "cat-1", dto.CreateFieldRequest{
			Name: "X", Key: key, Type: entity.FieldTypeString,
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, key)
	}
}

func TestFieldDelete_LimpiaValoresEnItems(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewFieldUseCase(store, newRecorder(t, store))

	field, err := uc.Create(context.Background(), "cat-1", dto.CreateFieldRequest{Name: "Serie", Type: entity.FieldTypeString})
	require.NoError(t, err)
	err = store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Items = append(doc.Items, entity.Item{
			ID: "item-1", CategoryID: "cat-1",
			Values: map[string]any{"serie": "ABC", "marca": "Dell"},
		})
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, uc.Delete(context.Background(), field.ID))

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, doc.Fields)
	assert.Nil(t, doc.FindItem("item-1").Value("serie"))
	assert.Equal(t, "Dell", doc.FindItem("item-1").Value("marca"), "los demás valores quedan intactos")
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CategoryUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestCategoryDelete_CascadaSobreCamposEItems(t *testing.T) {
	store := newStore(t)
	rec := newRecorder(t, store)
	catUC := usecase.NewCategoryUseCase(store, rec)
	fieldUC := usecase.NewFieldUseCase(store, rec)

	_, err := fieldUC.Create(context.Background(), "cat-1", dto.CreateFieldRequest{Name: "Serie", Type: entity.FieldTypeString})
	require.NoError(t, err)
	err = store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Items = append(doc.Items, entity.Item{ID: "item-1", CategoryID: "cat-1", Values: map[string]any{"serie": "A"}})
		return nil
	})
	require.NoError(t, err)

	require.NoError(t, catUC.Delete(context.Background(), "cat-1"))

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, doc.FindCategory("cat-1"))
	assert.Empty(t, doc.Fields)
	assert.Empty(t, doc.Items)
}

func TestCategoryDelete_ReservadaProtegida(t *testing.T) {
	store := newStore(t)
	catUC := usecase.NewCategoryUseCase(store, newRecorder(t, store))

	err := catUC.Delete(context.Background(), entity.StockCategoryID)
	assert.ErrorIs(t, err, domain.ErrReservedCategory)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests DuplicateUseCase — configuración
// ──────────────────────────────────────────────────────────────────────────────

func TestDuplicateConfig_AdvertenciaConMasDeTresCampos(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewDuplicateUseCase(store, newRecorder(t, store))

	resp, err := uc.SetConfig(context.Background(), dto.DuplicateConfigRequest{
		Fields: []string{"a", "b", "c"},
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Warning)

	resp, err = uc.SetConfig(context.Background(), dto.DuplicateConfigRequest{
		Fields: []string{"a", "b", "c", "d"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Warning, "más de 3 campos vigilados advierte falsos positivos")
}

// El barrido completo deja constancia en el feed con el conteo de grupos.
func TestDuplicateReport_RegistraActividadWarning(t *testing.T) {
	store := newStore(t)
	err := store.Run(context.Background(), func(doc *entity.Document) error {
		doc.DuplicateConfig.Fields = []string{"patrimonio"}
		doc.Items = append(doc.Items,
			entity.Item{ID: "item-1", CategoryID: "cat-1", Values: map[string]any{"patrimonio": "100"}},
			entity.Item{ID: "item-2", CategoryID: "cat-1", Values: map[string]any{"patrimonio": "100"}},
		)
		return nil
	})
	require.NoError(t, err)
	uc := usecase.NewDuplicateUseCase(store, newRecorder(t, store))

	groups, err := uc.Report(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 1)

	doc, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, doc.Activities, "el barrido debe registrar una actividad")
	act := doc.Activities[0]
	assert.Equal(t, entity.ActivityWarning, act.Type)
	assert.Equal(t, "Detecção de duplicados", act.Title)
	assert.Equal(t, "1 grupos suspeitos encontrados", act.Description)
}

func TestDuplicateConfig_DeduplicaYPermiteVacio(t *testing.T) {
	store := newStore(t)
	uc := usecase.NewDuplicateUseCase(store, newRecorder(t, store))

	resp, err := uc.SetConfig(context.Background(), dto.DuplicateConfigRequest{
		Fields: []string{"serie", "serie", ""},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"serie"}, resp.Fields)

	// El conjunto vacío apaga la detección sin error
	resp, err = uc.SetConfig(context.Background(), dto.DuplicateConfigRequest{Fields: nil})
	require.NoError(t, err)
	assert.Empty(t, resp.Fields)
}
