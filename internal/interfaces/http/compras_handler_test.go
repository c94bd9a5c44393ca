package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcompras "github.com/jhoicas/compras-api/internal/application/compras"
	"github.com/jhoicas/compras-api/internal/application/dto"
	"github.com/jhoicas/compras-api/internal/domain"
	"github.com/jhoicas/compras-api/internal/domain/entity"
	apphttp "github.com/jhoicas/compras-api/internal/interfaces/http"
)

// fakeReport reporte de texto plano para probar la descarga.
type fakeReport struct{}

func (fakeReport) Generate(p *entity.Purchase) ([]byte, error) {
	return []byte(fmt.Sprintf("compra %d", p.SequenceID)), nil
}
func (fakeReport) ContentType() string { return "text/plain" }
func (fakeReport) Extension() string   { return "txt" }

func newApp(t *testing.T, store *memCollection, secret string) *fiber.App {
	t.Helper()
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ComprasUC: appcompras.NewUseCase(store, zerolog.Nop(), 0),
		PDF:       fakeReport{},
		Collections: func(string) apphttp.DocumentCollection {
			return store
		},
		JWTSecret: secret,
	})
	return app
}

func send(t *testing.T, app *fiber.App, method, path string, body any, auth string) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, out
}

var compraDigitada = map[string]any{
	"proveedor":     "Acme",
	"envio":         "10",
	"bolsas":        "5",
	"facturaFisica": "120",
	"productos": []map[string]any{
		{"producto": "A", "cantidad": "2", "costoTotal": "20", "precioVenta": "15"},
		{"producto": "B", "cantidad": "3", "costoTotal": "60", "precioVenta": "30", "vendidos": "1"},
	},
}

func TestCompras_Calculate(t *testing.T) {
	app := newApp(t, newMemCollection(), "")
	resp, body := send(t, app, http.MethodPost, "/api/compras/calculate", compraDigitada, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var rec entity.Purchase
	require.NoError(t, json.Unmarshal(body, &rec))
	assert.Equal(t, 2, rec.TotalItems)
	assert.InDelta(t, 85.0, rec.Summary.TotalPurchaseCost, 1e-9)
	assert.InDelta(t, 3.0, rec.Summary.PerUnitSharedCost, 1e-9)
	assert.InDelta(t, 13.0, rec.Items[0].FinalUnitCost, 1e-9)
	assert.Equal(t, 2.0, rec.Items[0].MinimumUnitsToBreakEven)
}

func TestCompras_CalculateCuerpoInvalido(t *testing.T) {
	app := newApp(t, newMemCollection(), "")
	req := httptest.NewRequest(http.MethodPost, "/api/compras/calculate", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompras_CrearActualizarYDescargar(t *testing.T) {
	store := newMemCollection()
	app := newApp(t, store, "")

	resp, body := send(t, app, http.MethodGet, "/api/compras/next-id", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var next dto.NextSequenceResponse
	require.NoError(t, json.Unmarshal(body, &next))
	assert.Equal(t, 100, next.SequenceID)
	assert.Empty(t, next.Warning)

	resp, body = send(t, app, http.MethodPost, "/api/compras", compraDigitada, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	var saved dto.SavePurchaseResponse
	require.NoError(t, json.Unmarshal(body, &saved))
	assert.True(t, saved.Created)
	assert.Equal(t, 100, saved.SequenceID)
	require.NotEmpty(t, saved.ID)

	upd := map[string]any{"idCompra": 100, "proveedor": "Acme SAS", "productos": compraDigitada["productos"]}
	resp, body = send(t, app, http.MethodPut, "/api/compras/"+saved.ID, upd, "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Equal(t, "Acme SAS", store.docs[saved.ID].Supplier)

	resp, body = send(t, app, http.MethodGet, "/api/compras", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.PurchaseListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 1, list.Total)

	resp, body = send(t, app, http.MethodGet, "/api/compras/"+saved.ID+"/pdf", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "compra 100", string(body))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "compra-100.txt")

	resp, _ = send(t, app, http.MethodGet, "/api/compras/"+saved.ID+"/xlsx", nil, "")
	assert.Equal(t, http.StatusNotImplemented, resp.StatusCode)
}

func TestCompras_ListaPaginada(t *testing.T) {
	app := newApp(t, newMemCollection(), "")
	for seq := 101; seq <= 103; seq++ {
		resp, _ := send(t, app, http.MethodPost, "/api/compras", map[string]any{"idCompra": seq, "productos": compraDigitada["productos"]}, "")
		require.Equal(t, http.StatusCreated, resp.StatusCode)
	}

	resp, body := send(t, app, http.MethodGet, "/api/compras?limit=2&offset=1", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var list dto.PurchaseListResponse
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Equal(t, 3, list.Total)
	assert.Equal(t, 2, list.Limit)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 102, list.Items[0].SequenceID)
	assert.Equal(t, 101, list.Items[1].SequenceID)

	resp, body = send(t, app, http.MethodGet, "/api/compras?offset=10", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.Unmarshal(body, &list))
	assert.Empty(t, list.Items)

	resp, _ = send(t, app, http.MethodGet, "/api/compras?limit=muchas", nil, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCompras_ErroresDeDominio(t *testing.T) {
	store := newMemCollection()
	app := newApp(t, store, "")

	resp, _ := send(t, app, http.MethodGet, "/api/compras/nada", nil, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	dup := map[string]any{"idCompra": 150, "productos": compraDigitada["productos"]}
	resp, _ = send(t, app, http.MethodPost, "/api/compras", dup, "")
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp, body := send(t, app, http.MethodPost, "/api/compras", dup, "")
	assert.Equal(t, http.StatusConflict, resp.StatusCode, string(body))

	bad := map[string]any{"productos": []map[string]any{{"producto": "A", "competencia": map[string]string{"x": "1"}}}}
	resp, _ = send(t, app, http.MethodPost, "/api/compras", bad, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	store.fail = fmt.Errorf("%w: caído", domain.ErrBackend)
	resp, _ = send(t, app, http.MethodGet, "/api/compras", nil, "")
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)

	store.fail = errors.New("sin conexión")
	resp, body = send(t, app, http.MethodGet, "/api/compras/next-id", nil, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var next dto.NextSequenceResponse
	require.NoError(t, json.Unmarshal(body, &next))
	assert.Equal(t, 100, next.SequenceID)
	assert.NotEmpty(t, next.Warning)
}

func TestCompras_RutasProtegidas(t *testing.T) {
	app := newApp(t, newMemCollection(), testJWTSecret)

	resp, _ := send(t, app, http.MethodGet, "/api/compras", nil, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, _ = send(t, app, http.MethodGet, "/api/compras", nil, tokenForRole(t, "lectura"))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = send(t, app, http.MethodPost, "/api/compras", compraDigitada, tokenForRole(t, "lectura"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, _ = send(t, app, http.MethodPost, "/api/compras", compraDigitada, tokenForRole(t, "comprador"))
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = send(t, app, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
