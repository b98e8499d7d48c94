package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/blogbox-store/go-backend/internal/cfg"
	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/blogbox-store/go-backend/internal/usecase"
	"github.com/blogbox-store/go-backend/pkg/e"
	"github.com/blogbox-store/go-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubOrderUC struct {
	orders map[int64]*domain.Order
	err    error
}

func (s *stubOrderUC) SubmitOrder(ctx context.Context, req *usecase.SubmitOrderReq) (*domain.Order, error) {
	if s.err != nil {
		return nil, s.err
	}

	items := make([]domain.OrderItem, 0, len(req.Items))
	for i, line := range req.Items {
		items = append(items, domain.OrderItem{
			ID:              int64(i + 1),
			OrderID:         42,
			ProductID:       line.ProductID,
			ProductName:     "Laptop",
			Quantity:        line.Quantity,
			PriceAtPurchase: 150000,
		})
	}

	order := domain.NewOrder(req.CustomerEmail, items)
	order.ID = 42
	return order, nil
}

func (s *stubOrderUC) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}
	return order, nil
}

func (s *stubOrderUC) DeleteOrder(ctx context.Context, id int64) error {
	if _, ok := s.orders[id]; !ok {
		return e.ErrOrderNotFound
	}
	return nil
}

func (s *stubOrderUC) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, e.ErrOrderNotFound
	}

	order.Status = status
	if status.IsTerminal() && order.CompletedDate == nil {
		now := time.Now().UTC()
		order.CompletedDate = &now
	}
	return order, nil
}

type stubProductUC struct{}

func (s *stubProductUC) RegisterNewProduct(ctx context.Context, req *usecase.AddNewProductReq) (*domain.Product, error) {
	return &domain.Product{ID: 1, Name: req.Name, Price: req.Price, SalePrice: req.SalePrice, IsOnSale: req.IsOnSale}, nil
}

func (s *stubProductUC) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return []domain.Product{{ID: 1, Name: "Laptop", Price: 150000}}, nil
}

func (s *stubProductUC) GetProductsInfo(ctx context.Context, req *usecase.GetProductsReq) (*usecase.GetProductsRes, error) {
	return usecase.NewGetProductsRes(nil, nil), nil
}

func newTestRouter(orderUC usecase.OrderUC) *chi.Mux {
	mux := chi.NewRouter()
	router := NewRouter(mux, &cfg.CORSCfg{AllowedOrigin: "http://localhost:5173"}, logger.NewSlogLogger())
	router.Init(orderUC, &stubProductUC{})
	return mux
}

func TestSubmitOrder_Created(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{})

	body := `{"customerEmail":"buyer@example.com","items":[{"productId":1,"quantity":2}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "buyer@example.com", resp.CustomerEmail)
	assert.Equal(t, wireStatusPending, resp.Status)
	assert.Equal(t, 3000.0, resp.TotalAmount)
	assert.Nil(t, resp.CompletedDate)
	require.Len(t, resp.OrderItems, 1)
	assert.Equal(t, 1500.0, resp.OrderItems[0].PriceAtPurchase)
}

func TestSubmitOrder_ValidationError(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{err: e.Validation("customerEmail", e.ErrEmailRequired)})

	body := `{"customerEmail":"","items":[]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/", strings.NewReader(body))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
	assert.Equal(t, "customerEmail", resp.Field)
	assert.Equal(t, e.ErrEmailRequired.Error(), resp.Message)
}

func TestSubmitOrder_MalformedBody(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetOrder_OK(t *testing.T) {
	completed := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	mux := newTestRouter(&stubOrderUC{orders: map[int64]*domain.Order{
		7: {
			ID:            7,
			CustomerEmail: "buyer@example.com",
			TotalAmount:   2300,
			Status:        domain.OrderStatusCompleted,
			CreatedDate:   completed.Add(-time.Hour),
			CompletedDate: &completed,
		},
	}})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/7", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Equal(t, wireStatusCompleted, resp.Status)
	assert.Equal(t, 23.0, resp.TotalAmount)
	require.NotNil(t, resp.CompletedDate)
	assert.Equal(t, completed, resp.CompletedDate.UTC())
}

func TestGetOrder_NotFound(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/404", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, e.ErrOrderNotFound.Error(), resp.Message)
}

func TestGetOrder_BadID(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/orders/abc", nil)
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteOrder(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{orders: map[int64]*domain.Order{7: {ID: 7}}})

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/orders/7", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	req = httptest.NewRequest(http.MethodDelete, "/api/v1/orders/8", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateOrderStatus(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{orders: map[int64]*domain.Order{
		7: {ID: 7, Status: domain.OrderStatusPending, CreatedDate: time.Now().UTC()},
	}})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/7/status", strings.NewReader(`{"status":1}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp orderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, wireStatusCompleted, resp.Status)
	assert.NotNil(t, resp.CompletedDate)
}

func TestUpdateOrderStatus_UnknownCode(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{orders: map[int64]*domain.Order{7: {ID: 7}}})

	req := httptest.NewRequest(http.MethodPatch, "/api/v1/orders/7/status", strings.NewReader(`{"status":9}`))
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "status", resp.Field)
}

func TestCORSHeaders(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsForeignOrigin(t *testing.T) {
	mux := newTestRouter(&stubOrderUC{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/", nil)
	req.Header.Set("Origin", "http://evil.example.com")
	rec := httptest.NewRecorder()

	mux.ServeHTTP(rec, req)

	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
