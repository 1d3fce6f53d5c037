package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"bmg-store/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubCartService struct {
	listItems  func(ctx context.Context, sessionID string) ([]*domain.CartLine, error)
	addItem    func(ctx context.Context, input domain.AddCartItemInput) (*domain.CartItem, error)
	removeItem func(ctx context.Context, id int64) error
	clearCart  func(ctx context.Context, sessionID string) error
}

func (s *stubCartService) ListItems(ctx context.Context, sessionID string) ([]*domain.CartLine, error) {
	return s.listItems(ctx, sessionID)
}

func (s *stubCartService) AddItem(ctx context.Context, input domain.AddCartItemInput) (*domain.CartItem, error) {
	return s.addItem(ctx, input)
}

func (s *stubCartService) RemoveItem(ctx context.Context, id int64) error {
	return s.removeItem(ctx, id)
}

func (s *stubCartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.clearCart(ctx, sessionID)
}

type stubOrderService struct {
	createOrder func(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error)
	listOrders  func(ctx context.Context, sessionID string) ([]*domain.Order, error)
}

func (s *stubOrderService) CreateOrder(ctx context.Context, input domain.CreateOrderInput) (*domain.Order, error) {
	return s.createOrder(ctx, input)
}

func (s *stubOrderService) ListOrders(ctx context.Context, sessionID string) ([]*domain.Order, error) {
	return s.listOrders(ctx, sessionID)
}

type stubCatalogService struct {
	getProduct    func(ctx context.Context, id int64) (*domain.Product, error)
	listProducts  func(ctx context.Context) ([]*domain.Product, error)
	createProduct func(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error)
}

func (s *stubCatalogService) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.getProduct(ctx, id)
}

func (s *stubCatalogService) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.listProducts(ctx)
}

func (s *stubCatalogService) CreateProduct(ctx context.Context, input domain.CreateProductInput) (*domain.Product, error) {
	return s.createProduct(ctx, input)
}

type routes interface {
	RegisterRoutes(r chi.Router)
}

func newTestRouter(handlers ...routes) http.Handler {
	r := chi.NewRouter()
	for _, h := range handlers {
		h.RegisterRoutes(r)
	}
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details struct {
			ValidationErrors []struct {
				Field   string `json:"field"`
				Message string `json:"message"`
			} `json:"validation_errors"`
		} `json:"details"`
	} `json:"error"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorEnvelope {
	t.Helper()
	var env errorEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

var testLogger = zap.NewNop()
