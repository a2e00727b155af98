package entity_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Tests del layout JSON aplanado del item
// ──────────────────────────────────────────────────────────────────────────────

func TestItem_MarshalJSON_AplanaValues(t *testing.T) {
	it := entity.Item{
		ID:         "item-1",
		CategoryID: "cat-1",
		Status:     entity.StatusStock,
		Values:     map[string]any{"patrimonio": "100", "marca": "Dell"},
	}

	raw, err := json.Marshal(it)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))

	// Los campos dinámicos viven al nivel superior, sin objeto values anidado
	assert.Equal(t, "item-1", flat["id"])
	assert.Equal(t, "cat-1", flat["categoryId"])
	assert.Equal(t, "stock", flat["status"])
	assert.Equal(t, "100", flat["patrimonio"])
	assert.Equal(t, "Dell", flat["marca"])
	assert.NotContains(t, flat, "values")
}

func TestItem_MarshalJSON_StatusVacioSeOmite(t *testing.T) {
	it := entity.Item{ID: "item-1", CategoryID: "cat-1", Values: map[string]any{}}

	raw, err := json.Marshal(it)
	require.NoError(t, err)

	var flat map[string]any
	require.NoError(t, json.Unmarshal(raw, &flat))
	assert.NotContains(t, flat, "status")
}

func TestItem_UnmarshalJSON_Reconstruye(t *testing.T) {
	raw := []byte(`{"id":"item-1","categoryId":"cat-1","status":"active","patrimonio":"100","ram":16}`)

	var it entity.Item
	require.NoError(t, json.Unmarshal(raw, &it))

	assert.Equal(t, "item-1", it.ID)
	assert.Equal(t, "cat-1", it.CategoryID)
	assert.Equal(t, "active", it.Status)
	assert.Equal(t, "100", it.Value("patrimonio"))
	assert.Equal(t, float64(16), it.Value("ram"))
	// Las claves reservadas no se filtran hacia Values
	assert.Nil(t, it.Value("id"))
}

func TestItem_RoundTrip(t *testing.T) {
	original := entity.Item{
		ID:         "item-1",
		CategoryID: "cat-1",
		Status:     entity.StatusMaintenance,
		Values:     map[string]any{"serie": "ABC"},
	}
	raw, err := json.Marshal(original)
	require.NoError(t, err)

	var decoded entity.Item
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.Equal(t, original, decoded)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la regla de valor vacío
// ──────────────────────────────────────────────────────────────────────────────

func TestEmptyValue_ReglaDeVeracidad(t *testing.T) {
	// Vacíos: nil, cadena vacía, false y cero
	assert.True(t, entity.EmptyValue(nil))
	assert.True(t, entity.EmptyValue(""))
	assert.True(t, entity.EmptyValue(false))
	assert.True(t, entity.EmptyValue(float64(0)))
	assert.True(t, entity.EmptyValue(0))

	// Poblados
	assert.False(t, entity.EmptyValue("x"))
	assert.False(t, entity.EmptyValue(true))
	assert.False(t, entity.EmptyValue(float64(1)))
}

func TestPopulatedKeys_IgnoraVacios(t *testing.T) {
	it := entity.Item{Values: map[string]any{
		"serie":   "ABC",
		"marca":   "",
		"usado":   false,
		"memoria": float64(0),
	}}
	assert.Equal(t, []string{"serie"}, it.PopulatedKeys())
}

// El orden es alfabético: los nombres presentables derivados del primer
// campo poblado no pueden variar entre ejecuciones.
func TestPopulatedKeys_OrdenDeterminista(t *testing.T) {
	it := entity.Item{Values: map[string]any{
		"serie":      "XYZ",
		"marca":      "Dell",
		"patrimonio": "100",
	}}
	for i := 0; i < 10; i++ {
		assert.Equal(t, []string{"marca", "patrimonio", "serie"}, it.PopulatedKeys())
	}
}

func TestEffectiveStatus_ActivePorDefecto(t *testing.T) {
	it := entity.Item{}
	assert.Equal(t, entity.StatusActive, it.EffectiveStatus())

	it.Status = entity.StatusCondemned
	assert.Equal(t, entity.StatusCondemned, it.EffectiveStatus())
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de la máquina de estados de la nota de devolución
// ──────────────────────────────────────────────────────────────────────────────

func TestReturnNote_TransicionesLegales(t *testing.T) {
	n := entity.ReturnNote{Status: entity.NoteStatusPendente}
	assert.True(t, n.CanTransition(entity.NoteStatusProcessada))
	assert.True(t, n.CanTransition(entity.NoteStatusCancelada))

	n.Status = entity.NoteStatusProcessada
	assert.True(t, n.CanTransition(entity.NoteStatusPendente), "reabrir siempre es legal")

	n.Status = entity.NoteStatusCancelada
	assert.True(t, n.CanTransition(entity.NoteStatusPendente))
}

func TestReturnNote_SinTransicionDirectaEntreFinales(t *testing.T) {
	n := entity.ReturnNote{Status: entity.NoteStatusProcessada}
	assert.False(t, n.CanTransition(entity.NoteStatusCancelada))

	n.Status = entity.NoteStatusCancelada
	assert.False(t, n.CanTransition(entity.NoteStatusProcessada))
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de los anillos de auditoría
// ──────────────────────────────────────────────────────────────────────────────

func TestPushActivity_RecortaElAnillo(t *testing.T) {
	doc := entity.NewDocument()
	for i := 0; i < entity.MaxActivities+10; i++ {
		doc.PushActivity(entity.Activity{Title: "a"})
	}
	assert.Len(t, doc.Activities, entity.MaxActivities)
}

func TestPushMovement_MasRecientePrimero(t *testing.T) {
	doc := entity.NewDocument()
	doc.PushMovement(entity.Movement{ID: "primero"})
	doc.PushMovement(entity.Movement{ID: "segundo"})

	require.Len(t, doc.MovementHistory, 2)
	assert.Equal(t, "segundo", doc.MovementHistory[0].ID)
}

func TestEnsureCategory_Idempotente(t *testing.T) {
	doc := entity.NewDocument()
	doc.EnsureCategory(entity.StockCategoryID, entity.StockCategoryName)
	doc.EnsureCategory(entity.StockCategoryID, entity.StockCategoryName)
	assert.Len(t, doc.Categories, 1)
}
