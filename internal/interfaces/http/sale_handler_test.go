package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/heleta-pos/internal/application/analytics"
	"github.com/jhoicas/heleta-pos/internal/application/dto"
	"github.com/jhoicas/heleta-pos/internal/application/inventory"
	"github.com/jhoicas/heleta-pos/internal/application/sales"
	"github.com/jhoicas/heleta-pos/internal/application/usecase"
	"github.com/jhoicas/heleta-pos/internal/domain/entity"
	"github.com/jhoicas/heleta-pos/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/heleta-pos/internal/interfaces/http"
	"github.com/jhoicas/heleta-pos/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildAPI arma la API completa sobre el store en memoria.
func buildAPI(t *testing.T) (*fiber.App, *memory.Store) {
	t.Helper()
	store := memory.New(time.Second)
	store.Seed(
		entity.Product{ID: "p1", Name: "Helado de chocolate", Price: decimal.NewFromInt(10), Stock: 5, Category: "Helados"},
		entity.Product{ID: "p2", Name: "Cono simple", Price: decimal.RequireFromString("4.50"), Stock: 20, Category: "Conos"},
	)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:        usecase.NewProductUseCase(store.Products()),
		RegisterMovement: inventory.NewRegisterMovementUseCase(store),
		MovementQuery:    inventory.NewMovementQueryUseCase(store.Movements()),
		RecordSale:       sales.NewRecordSaleUseCase(store),
		SaleQuery:        sales.NewQueryUseCase(store.Sales()),
		DashboardUC:      appanalytics.NewDashboardUseCase(store.Analytics(), nil, appanalytics.DashboardOptions{}),
		SalesReport:      appanalytics.NewSalesReportUseCase(store.Analytics(), time.UTC),
		JWTSecret:        testJWTSecret,
		Logger:           logger.Nop(),
	})
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path, role string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, role))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

type errorBody struct {
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Details map[string]any `json:"details"`
}

func decodeError(t *testing.T, resp *http.Response) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func saleBody(lines ...dto.SaleLineRequest) dto.CreateSaleRequest {
	return dto.CreateSaleRequest{Lines: lines}
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/sales
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleHandler_VentaExitosaRetorna201(t *testing.T) {
	app, store := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", "vendedor", saleBody(
		dto.SaleLineRequest{ProductID: "p1", Quantity: 2},
		dto.SaleLineRequest{ProductID: "p2", Quantity: 1},
	))
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.SaleID)
	assert.True(t, decimal.RequireFromString("24.50").Equal(out.Total), "total = 2×10 + 1×4.50")
	assert.Equal(t, entity.PaymentCash, out.PaymentMethod)
	assert.Equal(t, testUserID, out.UserID, "la venta queda a nombre del usuario del token")
	assert.Len(t, out.Lines, 2)

	p, err := store.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 3, p.Stock)
}

func TestSaleHandler_StockInsuficienteRetorna409ConDetalles(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", "vendedor", saleBody(
		dto.SaleLineRequest{ProductID: "p1", Quantity: 6},
	))
	defer resp.Body.Close()
	require.Equal(t, http.StatusConflict, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)
	assert.Contains(t, body.Message, "Helado de chocolate")
	assert.Equal(t, "p1", body.Details["product_id"])
	assert.Equal(t, "Helado de chocolate", body.Details["product_name"])
	assert.EqualValues(t, 6, body.Details["requested"])
	assert.EqualValues(t, 5, body.Details["available"])
}

func TestSaleHandler_ProductoInexistenteRetorna404(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", "admin", saleBody(
		dto.SaleLineRequest{ProductID: "no-existe", Quantity: 1},
	))
	defer resp.Body.Close()
	require.Equal(t, http.StatusNotFound, resp.StatusCode)

	body := decodeError(t, resp)
	assert.Equal(t, "PRODUCT_NOT_FOUND", body.Code)
	assert.Equal(t, "no-existe", body.Details["product_id"])
}

func TestSaleHandler_CanastaVaciaRetorna400(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", "vendedor", saleBody())
	defer resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_REQUEST", decodeError(t, resp).Code)
}

func TestSaleHandler_CuerpoMalformadoRetorna400(t *testing.T) {
	app, _ := buildAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/api/sales", bytes.NewBufferString("{lines:"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", tokenForRole(t, "vendedor"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSaleHandler_BodegueroNoPuedeVender(t *testing.T) {
	app, _ := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/sales", "bodeguero", saleBody(
		dto.SaleLineRequest{ProductID: "p1", Quantity: 1},
	))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// GET /api/sales, /api/sales/:id
// ──────────────────────────────────────────────────────────────────────────────

func TestSaleHandler_ConsultaPorID(t *testing.T) {
	app, _ := buildAPI(t)

	created := doJSON(t, app, http.MethodPost, "/api/sales", "vendedor", saleBody(
		dto.SaleLineRequest{ProductID: "p2", Quantity: 3},
	))
	defer created.Body.Close()
	require.Equal(t, http.StatusCreated, created.StatusCode)
	var sale dto.SaleResponse
	require.NoError(t, json.NewDecoder(created.Body).Decode(&sale))

	resp := doJSON(t, app, http.MethodGet, "/api/sales/"+sale.SaleID, "bodeguero", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var got dto.SaleResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, sale.SaleID, got.SaleID)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Cono simple", got.Lines[0].ProductName)

	missing := doJSON(t, app, http.MethodGet, "/api/sales/no-existe", "admin", nil)
	defer missing.Body.Close()
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo e inventario
// ──────────────────────────────────────────────────────────────────────────────

func TestProductHandler_SoloAdminCrea(t *testing.T) {
	app, _ := buildAPI(t)
	in := dto.CreateProductRequest{Name: "Sundae", Price: decimal.NewFromInt(15), Category: "postres"}

	denied := doJSON(t, app, http.MethodPost, "/api/products", "vendedor", in)
	defer denied.Body.Close()
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)

	ok := doJSON(t, app, http.MethodPost, "/api/products", "admin", in)
	defer ok.Body.Close()
	require.Equal(t, http.StatusCreated, ok.StatusCode)
	var out dto.ProductResponse
	require.NoError(t, json.NewDecoder(ok.Body).Decode(&out))
	assert.Equal(t, "Postres", out.Category)
	assert.Equal(t, 0, out.Stock)
}

func TestProductHandler_EliminarConVentasRetorna409(t *testing.T) {
	app, _ := buildAPI(t)

	sale := doJSON(t, app, http.MethodPost, "/api/sales", "admin", saleBody(
		dto.SaleLineRequest{ProductID: "p1", Quantity: 1},
	))
	defer sale.Body.Close()
	require.Equal(t, http.StatusCreated, sale.StatusCode)

	resp := doJSON(t, app, http.MethodDelete, "/api/products/p1", "admin", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestInventoryHandler_EntradaBodeguero(t *testing.T) {
	app, store := buildAPI(t)

	resp := doJSON(t, app, http.MethodPost, "/api/inventory/movements", "bodeguero", dto.RegisterMovementRequest{
		ProductID: "p1",
		Direction: entity.MovementIn,
		Quantity:  7,
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.RegisterMovementResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 12, out.Stock)

	p, err := store.Products().GetByID(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, 12, p.Stock)

	denied := doJSON(t, app, http.MethodPost, "/api/inventory/movements", "vendedor", dto.RegisterMovementRequest{
		ProductID: "p1", Direction: entity.MovementIn, Quantity: 1,
	})
	defer denied.Body.Close()
	assert.Equal(t, http.StatusForbidden, denied.StatusCode)
}

func TestDashboardHandler_ResumenTrasVenta(t *testing.T) {
	app, _ := buildAPI(t)

	sale := doJSON(t, app, http.MethodPost, "/api/sales", "vendedor", saleBody(
		dto.SaleLineRequest{ProductID: "p2", Quantity: 2},
	))
	defer sale.Body.Close()
	require.Equal(t, http.StatusCreated, sale.StatusCode)

	resp := doJSON(t, app, http.MethodGet, "/api/dashboard", "admin", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out dto.DashboardSummaryDTO
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, 2, out.TotalProducts)
	assert.Equal(t, 1, out.SalesToday.Count)
	assert.True(t, decimal.RequireFromString("9").Equal(out.SalesToday.Total))
	assert.Equal(t, 1, out.MovementsToday)
}
