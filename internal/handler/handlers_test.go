package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hedgeshield/hedgeshield/internal/middleware"
	"github.com/hedgeshield/hedgeshield/internal/model"
	"github.com/hedgeshield/hedgeshield/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memLedgerRepo backs the router tests; InsertOrder applies the same
// ownership predicate the conditional insert does in Postgres.
type memLedgerRepo struct {
	contracts []*model.Contract
	orders    []*model.Order
}

func (m *memLedgerRepo) InsertContract(_ context.Context, c *model.Contract) error {
	cp := *c
	m.contracts = append(m.contracts, &cp)
	return nil
}

func (m *memLedgerRepo) InsertOrder(_ context.Context, o *model.Order) (bool, error) {
	for _, c := range m.contracts {
		if c.ID == o.ContractID && c.Tenant == o.Tenant {
			cp := *o
			cp.Pair = c.BaseCcy + "/" + c.QuoteCcy
			m.orders = append(m.orders, &cp)
			return true, nil
		}
	}
	return false, nil
}

func (m *memLedgerRepo) ContractsByTenant(_ context.Context, tenant string) ([]model.Contract, error) {
	var out []model.Contract
	for i := len(m.contracts) - 1; i >= 0; i-- {
		if m.contracts[i].Tenant == tenant {
			cp := *m.contracts[i]
			cp.DaysLeft = int(time.Until(cp.DueDate).Hours() / 24)
			out = append(out, cp)
		}
	}
	return out, nil
}

func (m *memLedgerRepo) PortfolioByTenant(_ context.Context, tenant string) ([]model.PortfolioSlice, error) {
	agg := map[string]*model.PortfolioSlice{}
	var order []string
	for _, c := range m.contracts {
		if c.Tenant != tenant {
			continue
		}
		pair := c.BaseCcy + "/" + c.QuoteCcy
		if _, ok := agg[pair]; !ok {
			agg[pair] = &model.PortfolioSlice{Pair: pair}
			order = append(order, pair)
		}
		agg[pair].Count++
		agg[pair].TotalNotional = agg[pair].TotalNotional.Add(c.Notional)
	}
	var out []model.PortfolioSlice
	for _, pair := range order {
		out = append(out, *agg[pair])
	}
	return out, nil
}

func (m *memLedgerRepo) OrdersByTenant(_ context.Context, tenant string, limit int) ([]model.Order, error) {
	var out []model.Order
	for i := len(m.orders) - 1; i >= 0 && len(out) < limit; i-- {
		if m.orders[i].Tenant == tenant {
			out = append(out, *m.orders[i])
		}
	}
	return out, nil
}

func newTestRouter(repo service.LedgerRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)

	svc := service.NewLedgerService(repo)
	contractHandler := NewContractHandler(svc)
	orderHandler := NewOrderHandler(svc)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.SecurityHeaders())

	api := r.Group("/")
	api.Use(middleware.TenantMiddleware())
	{
		api.GET("/contracts", contractHandler.List)
		api.POST("/contracts", contractHandler.Create)
		api.GET("/portfolio", contractHandler.Portfolio)
		api.GET("/orders", orderHandler.List)
		api.POST("/orders", orderHandler.Create)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, tenant string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if tenant != "" {
		req.Header.Set(middleware.HeaderCompany, tenant)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func contractPayload() map[string]any {
	return map[string]any{
		"base":     "eur",
		"quote":    "usd",
		"notional": 250000,
		"due_date": time.Now().AddDate(0, 2, 0).Format("2006-01-02"),
	}
}

func TestInvalidTenantHeaderRejected(t *testing.T) {
	r := newTestRouter(&memLedgerRepo{})

	for _, tenant := range []string{"acme corp", "acme/fx", strings.Repeat("x", 41)} {
		rec := doJSON(t, r, http.MethodGet, "/contracts", tenant, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "tenant %q", tenant)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "INVALID_TENANT", resp["code"])
	}
}

func TestContractRoundTripDefaultsTenant(t *testing.T) {
	r := newTestRouter(&memLedgerRepo{})

	rec := doJSON(t, r, http.MethodPost, "/contracts", "", contractPayload())
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())

	rec = doJSON(t, r, http.MethodGet, "/contracts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "EUR/USD", resp.Items[0]["pair"])
	assert.Equal(t, "HOLD", resp.Items[0]["suggestion"])
	assert.Equal(t, "active", resp.Items[0]["status"])
}

func TestContractValidationErrors(t *testing.T) {
	r := newTestRouter(&memLedgerRepo{})

	payload := contractPayload()
	payload["notional"] = -5
	rec := doJSON(t, r, http.MethodPost, "/contracts", "acme", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	payload = contractPayload()
	payload["base"] = "EU"
	rec = doJSON(t, r, http.MethodPost, "/contracts", "acme", payload)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderAgainstForeignContractIs404(t *testing.T) {
	repo := &memLedgerRepo{}
	r := newTestRouter(repo)

	rec := doJSON(t, r, http.MethodPost, "/contracts", "acme", contractPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	contractID := repo.contracts[0].ID

	// rival tenant cannot attach an order to acme's contract
	rec = doJSON(t, r, http.MethodPost, "/orders", "rival", map[string]any{
		"contract_id":    contractID,
		"side":           "BUY",
		"executed_price": 1.0842,
		"scenario_pct":   2.5,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "CONTRACT_NOT_FOUND", resp["code"])

	// the owner can
	rec = doJSON(t, r, http.MethodPost, "/orders", "acme", map[string]any{
		"contract_id":    contractID,
		"side":           "BUY",
		"executed_price": 1.0842,
		"scenario_pct":   2.5,
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOrderInvalidSideIs400(t *testing.T) {
	repo := &memLedgerRepo{}
	r := newTestRouter(repo)

	rec := doJSON(t, r, http.MethodPost, "/contracts", "acme", contractPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/orders", "acme", map[string]any{
		"contract_id":    repo.contracts[0].ID,
		"side":           "HOLD",
		"executed_price": 1.0842,
		"scenario_pct":   2.5,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_SIDE", resp["code"])
}

func TestOrderRequiresPriceAndScenario(t *testing.T) {
	repo := &memLedgerRepo{}
	r := newTestRouter(repo)

	rec := doJSON(t, r, http.MethodPost, "/contracts", "acme", contractPayload())
	require.Equal(t, http.StatusOK, rec.Code)
	contractID := repo.contracts[0].ID

	// absent executed_price and scenario_pct fail binding
	rec = doJSON(t, r, http.MethodPost, "/orders", "acme", map[string]any{
		"contract_id": contractID,
		"side":        "BUY",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_REQUEST", resp["code"])

	// an explicit zero scenario is present, not absent
	rec = doJSON(t, r, http.MethodPost, "/orders", "acme", map[string]any{
		"contract_id":    contractID,
		"side":           "BUY",
		"executed_price": 1.0842,
		"scenario_pct":   0,
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestEmptyListingsSerializeAsArrays(t *testing.T) {
	r := newTestRouter(&memLedgerRepo{})

	for _, path := range []string{"/contracts", "/portfolio", "/orders"} {
		rec := doJSON(t, r, http.MethodGet, path, "acme", nil)
		require.Equal(t, http.StatusOK, rec.Code, path)
		assert.JSONEq(t, `{"items":[]}`, rec.Body.String(), path)
	}
}

func TestOrdersListJoinsPair(t *testing.T) {
	repo := &memLedgerRepo{}
	r := newTestRouter(repo)

	rec := doJSON(t, r, http.MethodPost, "/contracts", "acme", contractPayload())
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodPost, "/orders", "acme", map[string]any{
		"contract_id":    repo.contracts[0].ID,
		"side":           "sell",
		"executed_price": 1.0901,
		"scenario_pct":   -1.5,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, r, http.MethodGet, "/orders", "acme", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Items []map[string]any `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "EUR/USD", resp.Items[0]["pair"])
	assert.Equal(t, "SELL", resp.Items[0]["side"])

	// another tenant sees nothing
	rec = doJSON(t, r, http.MethodGet, "/orders", "rival", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
}

func TestSecurityHeadersOnEveryResponse(t *testing.T) {
	r := newTestRouter(&memLedgerRepo{})

	rec := doJSON(t, r, http.MethodGet, "/contracts", "acme", nil)
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "no-referrer", rec.Header().Get("Referrer-Policy"))
}

type stubPinger struct {
	err error
}

func (s *stubPinger) Ping(context.Context) error { return s.err }

func TestHealthDegradedStays200(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", NewHealthHandler(&stubPinger{err: errors.New("dial tcp: refused")}).Check)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, false, resp["ok"])
	assert.Equal(t, false, resp["db"])
	assert.NotEmpty(t, resp["error"])
}

func TestHealthOK(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/health", NewHealthHandler(&stubPinger{}).Check)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"ok":true,"db":true}`, rec.Body.String())
}
