package transport

import (
	"net/http"

	"bmg-store/internal/domain"
	"bmg-store/internal/middleware"
	"bmg-store/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// OrderHandler handles checkout requests
type OrderHandler struct {
	orderService service.OrderService
	logger       *zap.Logger
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService service.OrderService, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
		logger:       logger,
	}
}

// RegisterRoutes registers all order routes
func (h *OrderHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/orders", func(r chi.Router) {
		r.Post("/", h.CreateOrder)
		r.Get("/session/{sessionId}", h.ListOrders)
	})
}

// CreateOrder turns the session's cart into a pending order. Any total sent
// by the client is ignored; the server prices the cart itself.
func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateOrderInput
	if err := middleware.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.Debug("Order validation failed", zap.Error(err))
		middleware.RespondWithDecodeError(w, err)
		return
	}

	order, err := h.orderService.CreateOrder(r.Context(), req)
	if err != nil {
		respondServiceError(w, r, h.logger, "create order", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusCreated, order)
}

// ListOrders returns the session's orders newest first
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionId")

	orders, err := h.orderService.ListOrders(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, r, h.logger, "list orders", err)
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, nonNil(orders))
}
