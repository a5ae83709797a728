package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DRSN-tech/stock-backend/internal/analytics"
	"github.com/DRSN-tech/stock-backend/internal/usecase"
	"github.com/DRSN-tech/stock-backend/pkg/e"
	"github.com/DRSN-tech/stock-backend/pkg/logger"
	"github.com/DRSN-tech/stock-backend/pkg/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- Mock use cases ---

type mockCategoryUC struct {
	view      *usecase.CategoriesView
	err       error
	lastReq   *usecase.CreateCategoryReq
	deletedID int64
	calls     int
}

func (m *mockCategoryUC) CategoriesView(context.Context) *usecase.CategoriesView { return m.view }

func (m *mockCategoryUC) CreateCategory(_ context.Context, req *usecase.CreateCategoryReq) (*usecase.CategoriesView, error) {
	m.calls++
	m.lastReq = req
	return m.view, m.err
}

func (m *mockCategoryUC) DeleteCategory(_ context.Context, id int64) (*usecase.CategoriesView, error) {
	m.deletedID = id
	return m.view, m.err
}

type mockProductUC struct {
	view       *usecase.ProductsView
	err        error
	lastCreate *usecase.CreateProductReq
	lastDelete *usecase.DeleteProductReq
}

func (m *mockProductUC) ProductsView(context.Context) *usecase.ProductsView { return m.view }

func (m *mockProductUC) ProductForm(context.Context) *usecase.ProductFormView {
	return &usecase.ProductFormView{Categories: []usecase.CategoryOption{{ID: 1, Name: "Tools"}}}
}

func (m *mockProductUC) DeleteOptions(context.Context) *usecase.DeleteOptionsView {
	return &usecase.DeleteOptionsView{Options: []usecase.DeleteOption{{ID: 3, Label: "Hammer (ID: 3)"}}}
}

func (m *mockProductUC) CreateProduct(_ context.Context, req *usecase.CreateProductReq) (*usecase.ProductsView, error) {
	m.lastCreate = req
	return m.view, m.err
}

func (m *mockProductUC) DeleteProduct(_ context.Context, req *usecase.DeleteProductReq) (*usecase.ProductsView, error) {
	m.lastDelete = req
	return m.view, m.err
}

type mockDashboardUC struct {
	report   *usecase.ReportRes
	err      error
	lastTopN int
}

func (m *mockDashboardUC) Dashboard(_ context.Context, topN int) *usecase.DashboardView {
	m.lastTopN = topN
	return &usecase.DashboardView{ProductCount: 2, NoneLabel: "none"}
}

func (m *mockDashboardUC) ExportReport(_ context.Context, topN int) (*usecase.ReportRes, error) {
	m.lastTopN = topN
	return m.report, m.err
}

type testServer struct {
	handler   http.Handler
	category  *mockCategoryUC
	product   *mockProductUC
	dashboard *mockDashboardUC
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		category: &mockCategoryUC{view: &usecase.CategoriesView{
			Categories: []usecase.CategoryInfo{{ID: 1, Name: "Tools"}},
		}},
		product: &mockProductUC{view: &usecase.ProductsView{
			Rows:          []analytics.Row{{ID: 3, Name: "Hammer", Quantity: 2, Category: "Tools"}},
			TotalQuantity: 2,
		}},
		dashboard: &mockDashboardUC{},
	}

	mux := chi.NewRouter()
	NewRouter(mux, logger.Nop{}).Init(Deps{
		CategoryUC:  ts.category,
		ProductUC:   ts.product,
		DashboardUC: ts.dashboard,
		Metrics:     metrics.New(),
	})
	ts.handler = mux

	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return resp
}

// --- Tests: categories ---

func TestCategoryRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/v1/categories", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var view usecase.CategoriesView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, "Tools", view.Categories[0].Name)

	rec = ts.do(http.MethodPost, "/api/v1/categories", `{"name":"Tools","description":"hand tools"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	require.NotNil(t, ts.category.lastReq)
	assert.Equal(t, "Tools", ts.category.lastReq.Name)
	assert.Equal(t, "hand tools", *ts.category.lastReq.Description)

	rec = ts.do(http.MethodDelete, "/api/v1/categories/7", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), ts.category.deletedID)
}

func TestCreateCategory_Errors(t *testing.T) {
	testCases := []struct {
		name            string
		body            string
		ucErr           error
		expectedCode    int
		expectedMessage string
	}{
		{name: "Malformed json", body: `{"name":`, expectedCode: http.StatusBadRequest, expectedMessage: e.ErrInvalidJSON.Error()},
		{name: "Unknown field", body: `{"title":"x"}`, expectedCode: http.StatusBadRequest, expectedMessage: e.ErrInvalidJSON.Error()},
		{name: "Trailing data", body: `{"name":"x"} {}`, expectedCode: http.StatusBadRequest, expectedMessage: e.ErrInvalidJSON.Error()},
		{name: "Empty name", body: `{"name":""}`, ucErr: e.ErrCategoryNameRequired, expectedCode: http.StatusBadRequest, expectedMessage: e.ErrCategoryNameRequired.Error()},
		{name: "Storage failure", body: `{"name":"x"}`, ucErr: errors.New("connection refused"), expectedCode: http.StatusInternalServerError, expectedMessage: e.ErrInternalServerError.Error()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.category.err = tc.ucErr

			rec := ts.do(http.MethodPost, "/api/v1/categories", tc.body)

			assert.Equal(t, tc.expectedCode, rec.Code)
			resp := decodeError(t, rec)
			assert.Equal(t, tc.expectedCode, resp.Code)
			assert.Equal(t, tc.expectedMessage, resp.Message)
		})
	}
}

func TestDeleteCategory_Errors(t *testing.T) {
	testCases := []struct {
		name         string
		target       string
		ucErr        error
		expectedCode int
	}{
		{name: "Non numeric id", target: "/api/v1/categories/abc", expectedCode: http.StatusBadRequest},
		{name: "Zero id", target: "/api/v1/categories/0", expectedCode: http.StatusBadRequest},
		{name: "Missing", target: "/api/v1/categories/9", ucErr: e.Wrap("repo", e.ErrCategoryNotFound), expectedCode: http.StatusNotFound},
		{name: "Referenced by products", target: "/api/v1/categories/1", ucErr: e.ErrCategoryInUse, expectedCode: http.StatusConflict},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.category.err = tc.ucErr

			rec := ts.do(http.MethodDelete, tc.target, "")

			assert.Equal(t, tc.expectedCode, rec.Code)
		})
	}
}

// --- Tests: products ---

func TestProductReadRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/v1/products", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var view usecase.ProductsView
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&view))
	assert.Equal(t, int64(2), view.TotalQuantity)

	rec = ts.do(http.MethodGet, "/api/v1/products/form", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"Tools"`)

	rec = ts.do(http.MethodGet, "/api/v1/products/delete-options", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Hammer (ID: 3)")
}

func TestCreateProduct(t *testing.T) {
	testCases := []struct {
		name          string
		body          string
		expectedPrice decimal.NullDecimal
	}{
		{name: "Price as string", body: `{"name":"Hammer","quantity":2,"unit_price":"10.50","category_id":1}`, expectedPrice: decimal.NewNullDecimal(decimal.RequireFromString("10.5"))},
		{name: "Price as number", body: `{"name":"Hammer","quantity":2,"unit_price":10.5,"category_id":1}`, expectedPrice: decimal.NewNullDecimal(decimal.RequireFromString("10.5"))},
		{name: "Null price", body: `{"name":"Hammer","quantity":2,"unit_price":null,"category_id":1}`},
		{name: "Missing price", body: `{"name":"Hammer","category_id":1}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)

			rec := ts.do(http.MethodPost, "/api/v1/products", tc.body)

			assert.Equal(t, http.StatusCreated, rec.Code)
			require.NotNil(t, ts.product.lastCreate)
			assert.Equal(t, "Hammer", ts.product.lastCreate.Name)
			assert.Equal(t, int64(1), *ts.product.lastCreate.CategoryID)
			assert.Equal(t, tc.expectedPrice.Valid, ts.product.lastCreate.UnitPrice.Valid)
			if tc.expectedPrice.Valid {
				assert.True(t, tc.expectedPrice.Decimal.Equal(ts.product.lastCreate.UnitPrice.Decimal))
			}
		})
	}
}

func TestCreateProduct_Errors(t *testing.T) {
	testCases := []struct {
		name            string
		body            string
		ucErr           error
		expectedCode    int
		expectedMessage string
	}{
		{name: "Too many decimals", body: `{"name":"Hammer","unit_price":"1.005","category_id":1}`, expectedCode: http.StatusBadRequest, expectedMessage: e.ErrPricePrecision.Error()},
		{name: "Absurd price", body: `{"name":"Hammer","unit_price":"10000000000","category_id":1}`, expectedCode: http.StatusBadRequest, expectedMessage: e.ErrInvalidPrice.Error()},
		{name: "Price is not a number", body: `{"name":"Hammer","unit_price":"ten","category_id":1}`, expectedCode: http.StatusBadRequest, expectedMessage: e.ErrInvalidJSON.Error()},
		{name: "Negative quantity", body: `{"name":"Hammer","quantity":-1,"category_id":1}`, ucErr: e.ErrNegativeQuantity, expectedCode: http.StatusBadRequest, expectedMessage: e.ErrNegativeQuantity.Error()},
		{name: "Unknown category", body: `{"name":"Hammer","category_id":42}`, ucErr: e.Wrap("repo", e.ErrCategoryNotFound), expectedCode: http.StatusNotFound, expectedMessage: e.ErrCategoryNotFound.Error()},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.product.err = tc.ucErr

			rec := ts.do(http.MethodPost, "/api/v1/products", tc.body)

			assert.Equal(t, tc.expectedCode, rec.Code)
			assert.Equal(t, tc.expectedMessage, decodeError(t, rec).Message)
		})
	}
}

func TestDeleteProduct(t *testing.T) {
	testCases := []struct {
		name              string
		target            string
		expectedCode      int
		expectedConfirmed bool
	}{
		{name: "Confirmed", target: "/api/v1/products/3?confirm=true", expectedCode: http.StatusOK, expectedConfirmed: true},
		{name: "Not confirmed", target: "/api/v1/products/3", expectedCode: http.StatusOK},
		{name: "Bad confirm flag", target: "/api/v1/products/3?confirm=sure", expectedCode: http.StatusBadRequest},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ts := newTestServer(t)

			rec := ts.do(http.MethodDelete, tc.target, "")

			assert.Equal(t, tc.expectedCode, rec.Code)
			if tc.expectedCode == http.StatusOK {
				require.NotNil(t, ts.product.lastDelete)
				assert.Equal(t, int64(3), ts.product.lastDelete.ID)
				assert.Equal(t, tc.expectedConfirmed, ts.product.lastDelete.Confirmed)
			}
		})
	}
}

func TestDeleteProduct_NotConfirmed(t *testing.T) {
	ts := newTestServer(t)
	ts.product.err = e.ErrDeleteNotConfirmed

	rec := ts.do(http.MethodDelete, "/api/v1/products/3", "")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, e.ErrDeleteNotConfirmed.Error(), decodeError(t, rec).Message)
}

// --- Tests: dashboard ---

func TestDashboardRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/api/v1/dashboard?top=3", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, ts.dashboard.lastTopN)

	rec = ts.do(http.MethodGet, "/api/v1/dashboard", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Zero(t, ts.dashboard.lastTopN)

	rec = ts.do(http.MethodGet, "/api/v1/dashboard?top=0", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	expires := time.Date(2026, 3, 1, 12, 45, 0, 0, time.UTC)
	ts.dashboard.report = &usecase.ReportRes{ObjectKey: "reports/a.csv", URL: "https://s3/a.csv", ExpiresAt: expires}
	rec = ts.do(http.MethodPost, "/api/v1/dashboard/reports?top=2", "")
	assert.Equal(t, http.StatusCreated, rec.Code)
	var res usecase.ReportRes
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&res))
	assert.Equal(t, "https://s3/a.csv", res.URL)
	assert.True(t, expires.Equal(res.ExpiresAt))
}

func TestExportReport_Disabled(t *testing.T) {
	ts := newTestServer(t)
	ts.dashboard.err = e.ErrReportsDisabled

	rec := ts.do(http.MethodPost, "/api/v1/dashboard/reports", "")

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, e.ErrReportsDisabled.Error(), decodeError(t, rec).Message)
}

// --- Tests: service routes ---

func TestServiceRoutes(t *testing.T) {
	ts := newTestServer(t)

	rec := ts.do(http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	ts.do(http.MethodGet, "/api/v1/categories", "")
	rec = ts.do(http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `route="/api/v1/categories`)
}

func TestHealthz_NotReady(t *testing.T) {
	mux := chi.NewRouter()
	NewRouter(mux, logger.Nop{}).Init(Deps{
		CategoryUC:  &mockCategoryUC{},
		ProductUC:   &mockProductUC{},
		DashboardUC: &mockDashboardUC{},
		Ready:       func() error { return errors.New("db down") },
	})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
