package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/patrimonio-api/internal/application/audit"
	"github.com/jhoicas/patrimonio-api/internal/application/auth"
	"github.com/jhoicas/patrimonio-api/internal/application/items"
	"github.com/jhoicas/patrimonio-api/internal/application/movement"
	"github.com/jhoicas/patrimonio-api/internal/application/returns"
	"github.com/jhoicas/patrimonio-api/internal/application/usecase"
	"github.com/jhoicas/patrimonio-api/internal/domain/entity"
	"github.com/jhoicas/patrimonio-api/internal/infrastructure/docstore"
	"github.com/jhoicas/patrimonio-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/patrimonio-api/internal/interfaces/http"
	"github.com/jhoicas/patrimonio-api/pkg/config"
	"github.com/jhoicas/patrimonio-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test — aplicación completa sobre un almacén temporal
// ──────────────────────────────────────────────────────────────────────────────

// newTestApp levanta la API entera con una categoría sembrada, el campo
// patrimonio vigilado y un token de admin listo para usar.
func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()
	store, err := docstore.NewFileStore(filepath.Join(t.TempDir(), "inventario.json"))
	require.NoError(t, err)
	err = store.Run(context.Background(), func(doc *entity.Document) error {
		doc.Categories = append(doc.Categories, entity.Category{ID: "cat-1", Name: "Notebooks"})
		doc.Fields = append(doc.Fields, entity.Field{
			ID: "f-1", CategoryID: "cat-1", Name: "Patrimônio", Key: "patrimonio", Type: entity.FieldTypeString,
		})
		doc.DuplicateConfig.Fields = []string{"patrimonio"}
		return nil
	})
	require.NoError(t, err)

	log := logger.New(logger.Config{Env: "development", Level: "error"})
	recorder := audit.NewRecorder(store, log)
	jwtCfg := config.JWTConfig{Secret: testJWTSecret, Expiration: 60, Issuer: testIssuer}

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CategoryUC:  usecase.NewCategoryUseCase(store, recorder),
		FieldUC:     usecase.NewFieldUseCase(store, recorder),
		DuplicateUC: usecase.NewDuplicateUseCase(store, recorder),
		ItemUC:      items.NewUseCase(store, recorder),
		Engine:      movement.NewEngine(store, recorder),
		ReturnsUC:   returns.NewUseCase(store, recorder, pdf.NewMarotoPDFGenerator()),
		AuthUC:      auth.NewUseCase(store, jwtCfg),
		Audit:       recorder,
		JWTSecret:   testJWTSecret,
	})
	return app, tokenForRole(t, "admin", entity.RoleAdmin)
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, payload any) *http.Response {
	t.Helper()
	var body *bytes.Buffer = bytes.NewBuffer(nil)
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests del protocolo de confirmación sobre HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestItems_AltaSinColisiones_201(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"categoryId": "cat-1",
		"values":     map[string]any{"patrimonio": "100"},
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decode(t, resp)
	assert.Equal(t, "100", body["patrimonio"], "la respuesta usa el layout aplanado")
	assert.NotEmpty(t, body["id"])
}

func TestItems_Colision_409ConPendingId(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"categoryId": "cat-1",
		"values":     map[string]any{"patrimonio": "100"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"categoryId": "cat-1",
		"values":     map[string]any{"patrimonio": "100"},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decode(t, resp)
	pendingID, _ := body["pendingId"].(string)
	require.NotEmpty(t, pendingID)
	require.NotEmpty(t, body["duplicates"])

	// Confirmar persiste el duplicado tal cual
	resp = doJSON(t, app, http.MethodPost, "/api/items/pending/"+pendingID+"/confirm", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// El mismo pendingId ya no existe
	resp = doJSON(t, app, http.MethodPost, "/api/items/pending/"+pendingID+"/confirm", token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestItems_Cancelar_204(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"categoryId": "cat-1",
		"values":     map[string]any{"patrimonio": "100"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"categoryId": "cat-1",
		"values":     map[string]any{"patrimonio": "100"},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	pendingID, _ := decode(t, resp)["pendingId"].(string)

	resp = doJSON(t, app, http.MethodPost, "/api/items/pending/"+pendingID+"/cancel", token, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	// Solo el primer item quedó persistido
	resp = doJSON(t, app, http.MethodGet, "/api/categories/cat-1/items", token, nil)
	defer resp.Body.Close()
	var list []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&list))
	assert.Len(t, list, 1)
}

func TestItems_EdicionExigeDisposicion_409(t *testing.T) {
	app, token := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/items", token, map[string]any{
		"categoryId": "cat-1",
		"values":     map[string]any{"patrimonio": "100"},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	itemID, _ := decode(t, resp)["id"].(string)

	// Cambiar un valor poblado sin disposition: 409 con los campos alterados
	resp = doJSON(t, app, http.MethodPut, "/api/items/"+itemID, token, map[string]any{
		"values": map[string]any{"patrimonio": "200"},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode(t, resp)
	require.NotEmpty(t, body["changedFields"])

	// Con disposition=discard la edición pasa
	resp = doJSON(t, app, http.MethodPut, "/api/items/"+itemID+"?disposition=discard", token, map[string]any{
		"values": map[string]any{"patrimonio": "200"},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "200", decode(t, resp)["patrimonio"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests de autorización de rutas de administración
// ──────────────────────────────────────────────────────────────────────────────

func TestCategorias_MutacionSoloAdmin(t *testing.T) {
	app, _ := newTestApp(t)
	userToken := tokenForRole(t, "usuario", entity.RoleUser)

	resp := doJSON(t, app, http.MethodPost, "/api/categories", userToken, map[string]any{"name": "Monitores"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode, "user no puede crear categorías")
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, "/api/categories", userToken, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode, "la lectura sí está permitida")
	resp.Body.Close()
}
